package profile

import "strings"

// UserProfile carries everything the recommendation engine needs about one
// user. It is supplied per request, either inline or from the profile store.
type UserProfile struct {
	ID              string            `json:"id,omitempty" db:"id"`
	HeightCm        float64           `json:"height_cm" db:"height_cm"`
	WeightKg        float64           `json:"weight_kg" db:"weight_kg"`
	AgeYears        int               `json:"age" db:"age"`
	Gender          string            `json:"gender" db:"gender"`
	Lifestyle       string            `json:"lifestyle" db:"lifestyle"`
	Motive          string            `json:"motive" db:"motive"`
	DietType        string            `json:"diet_type" db:"diet_type"`
	Diseases        []string          `json:"diseases"`
	Allergies       []string          `json:"allergies"`
	MealPreferences map[string]string `json:"meal_preferences"`
	Level           string            `json:"level" db:"level"`
	TargetArea      string            `json:"target_area" db:"target_area"`
	WaterLiters     float64           `json:"water_l" db:"water_l"`

	// AvoidFoods is extra avoid-list material merged in from an uploaded
	// health report. It biases scoring, it never hard-filters.
	AvoidFoods []string `json:"avoid_foods,omitempty"`
}

// ReportExtract is the output of the external report-text extractor: disease
// names and foods to avoid parsed out of an uploaded document.
type ReportExtract struct {
	Diseases []string `json:"diseases"`
	Avoid    []string `json:"avoid"`
}

// WithReportExtract returns a copy of the profile with the extract's
// diseases and avoid foods merged in, deduplicated case-insensitively.
func (p UserProfile) WithReportExtract(ext ReportExtract) UserProfile {
	p.Diseases = mergeLists(p.Diseases, ext.Diseases)
	p.AvoidFoods = mergeLists(p.AvoidFoods, ext.Avoid)
	return p
}

func mergeLists(base, extra []string) []string {
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, lst := range [][]string{base, extra} {
		for _, v := range lst {
			key := normalizeKey(v)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, v)
		}
	}
	return out
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
