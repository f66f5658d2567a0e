package activity

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/dataset"
)

// Pose is one entry of the yoga catalog.
type Pose struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Benefits    string `json:"benefits,omitempty"`
	YouTubeURL  string `json:"youtube_url"`
	Level       string `json:"level"`
}

var yogaTargetSynonyms = map[string][]string{
	"upper body": {"shoulder", "upper back", "chest", "arms"},
	"lower body": {"legs", "hamstring", "quadricep", "glute", "calves"},
	"legs":       {"legs", "hamstring", "quadricep", "glute", "calves"},
	"core":       {"core", "abs", "abdomen", "oblique"},
	"back":       {"back", "spine", "lower back"},
	"hips":       {"hip", "groin", "pelvic"},
	"neck":       {"neck", "cervical"},
	"shoulders":  {"shoulder", "deltoid"},
	"chest":      {"chest", "thoracic"},
}

// YogaCatalog is the immutable asana table.
type YogaCatalog struct {
	poses []Pose
}

// NewYogaCatalog builds a catalog from the given poses.
func NewYogaCatalog(poses []Pose) *YogaCatalog {
	out := make([]Pose, 0, len(poses))
	for _, p := range poses {
		p.Level = strings.ToLower(strings.TrimSpace(p.Level))
		if strings.TrimSpace(p.Name) == "" {
			continue
		}
		out = append(out, p)
	}
	return &YogaCatalog{poses: out}
}

// Len returns the number of poses.
func (c *YogaCatalog) Len() int {
	return len(c.poses)
}

// Plan returns up to count poses for the level: target-area matches first,
// then a deterministic name-sorted fill without duplicates.
func (c *YogaCatalog) Plan(level, targetArea string, count int) []Pose {
	if count <= 0 {
		count = 8
	}
	lvl := NormalizeLevel(level)

	source := make([]Pose, 0, len(c.poses))
	for _, p := range c.poses {
		if p.Level == lvl {
			source = append(source, p)
		}
	}
	if len(source) == 0 {
		source = c.poses
	}

	var out []Pose
	seen := make(map[string]bool)
	take := func(p Pose) {
		key := strings.ToLower(p.Name)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, p)
	}

	ta := strings.ToLower(strings.TrimSpace(targetArea))
	if ta != "" {
		synonyms, ok := yogaTargetSynonyms[ta]
		if !ok {
			synonyms = []string{ta}
		}
		for _, p := range source {
			if len(out) >= count {
				break
			}
			hay := strings.ToLower(p.Name + " " + p.Description + " " + p.Benefits)
			for _, s := range synonyms {
				if strings.Contains(hay, s) {
					take(p)
					break
				}
			}
		}
	}

	if len(out) < count {
		sorted := make([]Pose, len(source))
		copy(sorted, source)
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })
		for _, p := range sorted {
			if len(out) >= count {
				break
			}
			take(p)
		}
	}
	return out
}

// LoadYoga reads the asana CSV, degrading to a built-in fallback set on any
// load failure.
func LoadYoga(ctx context.Context, path string, logger *slog.Logger) *YogaCatalog {
	rows, err := dataset.ReadCSV(ctx, path)
	if err != nil || len(rows) == 0 {
		logger.Warn("Yoga dataset unavailable, using built-in fallback set", "path", path, "error", err)
		return fallbackYoga()
	}

	poses := make([]Pose, 0, len(rows))
	for _, row := range rows {
		poses = append(poses, Pose{
			Name:        dataset.String(row, "aname", "name"),
			Description: dataset.String(row, "description"),
			Benefits:    dataset.String(row, "benefits"),
			YouTubeURL:  dataset.String(row, "you tube vdo link", "youtube_url", "video"),
			Level:       dataset.String(row, "level"),
		})
	}

	cat := NewYogaCatalog(poses)
	logger.Info("Yoga catalog loaded", "path", path, "poses", cat.Len())
	return cat
}

func fallbackYoga() *YogaCatalog {
	return NewYogaCatalog([]Pose{
		{Name: "Tadasana", Description: "Mountain pose standing tall", Level: LevelBeginner},
		{Name: "Vajrasana", Description: "Kneeling pose aiding digestion", Level: LevelBeginner},
		{Name: "Balasana", Description: "Child's pose releasing the lower back and hips", Level: LevelBeginner},
		{Name: "Bhujangasana", Description: "Cobra pose opening the chest and spine", Level: LevelIntermediate},
		{Name: "Trikonasana", Description: "Triangle pose stretching legs and obliques", Level: LevelIntermediate},
		{Name: "Sirsasana", Description: "Headstand building shoulder and core strength", Level: LevelAdvanced},
	})
}
