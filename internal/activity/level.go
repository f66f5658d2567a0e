package activity

import "strings"

// Difficulty levels used by the exercise and yoga catalogs.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// NormalizeLevel maps lifestyle or difficulty strings onto the three
// catalog levels. Unknown input lands on advanced, matching the dataset's
// own skew.
func NormalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "sedentary", "beginner":
		return LevelBeginner
	case "moderate", "active":
		return LevelIntermediate
	default:
		return LevelAdvanced
	}
}
