package activity

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/dataset"
)

// Exercise is one entry of the workout catalog.
type Exercise struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	BodyPart         string   `json:"body_part"`
	Equipment        string   `json:"equipment"`
	Target           string   `json:"target"`
	Level            string   `json:"level"`
	SecondaryMuscles []string `json:"secondary_muscles"`
	Steps            []string `json:"steps"`
	Repetitions      string   `json:"repetitions"`
	Link             string   `json:"link"`
	GifURL           string   `json:"gif_url"`
}

// exerciseTargetSynonyms maps high-level target areas onto the muscle names
// the dataset uses.
var exerciseTargetSynonyms = map[string][]string{
	"upper body": {"chest", "back", "shoulders", "biceps", "triceps"},
	"lower body": {"quads", "hamstrings", "glutes", "calves", "quadriceps"},
	"legs":       {"quads", "hamstrings", "glutes", "calves", "quadriceps"},
	"core":       {"abs", "obliques", "lower back", "core"},
	"full body":  {"full body", "cardio", "whole body"},
}

// ExerciseCatalog is the immutable workout table.
type ExerciseCatalog struct {
	exercises []Exercise
}

// NewExerciseCatalog builds a catalog, sorted by name for deterministic
// selection.
func NewExerciseCatalog(exercises []Exercise) *ExerciseCatalog {
	sorted := make([]Exercise, len(exercises))
	copy(sorted, exercises)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})
	return &ExerciseCatalog{exercises: sorted}
}

// Len returns the number of exercises.
func (c *ExerciseCatalog) Len() int {
	return len(c.exercises)
}

// All returns every exercise in name order.
func (c *ExerciseCatalog) All() []Exercise {
	return c.exercises
}

// Plan picks a diverse workout for the given level: level filter, bodyweight
// preference, target-area picks first (up to a quarter of the count), then
// one exercise per body part, then a deterministic name-ordered fill.
// Repetitions are filled in per the user's level when the dataset has none.
func (c *ExerciseCatalog) Plan(level, targetArea string, count int) []Exercise {
	if count <= 0 {
		count = 12
	}
	lvl := NormalizeLevel(level)

	source := c.filterLevel(lvl)
	if bw := preferBodyweight(source); len(bw) > 0 {
		source = bw
	}

	var out []Exercise
	used := make(map[string]bool)
	take := func(ex Exercise) {
		key := strings.ToLower(strings.TrimSpace(ex.Name))
		if key == "" || used[key] {
			return
		}
		used[key] = true
		out = append(out, finishExercise(ex, lvl))
	}

	ta := strings.ToLower(strings.TrimSpace(targetArea))
	if ta != "" {
		synonyms, ok := exerciseTargetSynonyms[ta]
		if !ok {
			synonyms = []string{ta}
		}
		maxPreferred := count / 4
		if maxPreferred < 1 {
			maxPreferred = 1
		}
		for _, ex := range source {
			if len(out) >= maxPreferred {
				break
			}
			hay := strings.ToLower(ex.Target + " " + ex.BodyPart + " " + ex.Name)
			for _, s := range synonyms {
				if strings.Contains(hay, s) {
					take(ex)
					break
				}
			}
		}
	}

	// One per body part for coverage.
	seenParts := make(map[string]bool)
	for _, ex := range source {
		if len(out) >= count {
			break
		}
		part := strings.ToLower(ex.BodyPart)
		if part == "" || seenParts[part] {
			continue
		}
		seenParts[part] = true
		take(ex)
	}

	for _, ex := range source {
		if len(out) >= count {
			break
		}
		take(ex)
	}
	if len(out) > count {
		out = out[:count]
	}
	return out
}

func (c *ExerciseCatalog) filterLevel(lvl string) []Exercise {
	var out []Exercise
	for _, ex := range c.exercises {
		if strings.ToLower(ex.Level) == lvl {
			out = append(out, ex)
		}
	}
	if len(out) == 0 {
		return c.exercises
	}
	return out
}

func preferBodyweight(exercises []Exercise) []Exercise {
	var out []Exercise
	for _, ex := range exercises {
		eq := strings.ToLower(ex.Equipment)
		if strings.Contains(eq, "body weight") || strings.Contains(eq, "bodyweight") ||
			strings.Contains(eq, "none") || strings.Contains(eq, "no equipment") {
			out = append(out, ex)
		}
	}
	return out
}

var cardioNameKeywords = []string{"run", "jog", "jump", "burpee", "sprint", "step"}

// finishExercise fills in the link and a level-appropriate repetition scheme
// when the dataset row has none.
func finishExercise(ex Exercise, lvl string) Exercise {
	if ex.Link == "" && ex.Name != "" {
		ex.Link = "https://workoutguru.fit/exercises/" + slugify(ex.Name) + "/"
	}
	if ex.Repetitions != "" {
		return ex
	}

	nameLower := strings.ToLower(ex.Name)
	isHold := strings.Contains(nameLower, "plank") || strings.Contains(nameLower, "hold") || strings.Contains(nameLower, "isometric")
	isCardio := strings.Contains(strings.ToLower(ex.BodyPart), "cardio") || strings.Contains(strings.ToLower(ex.Target), "cardio")
	for _, kw := range cardioNameKeywords {
		if strings.Contains(nameLower, kw) {
			isCardio = true
		}
	}

	switch {
	case isHold:
		switch lvl {
		case LevelBeginner:
			ex.Repetitions = "3x30s"
		case LevelIntermediate:
			ex.Repetitions = "3x45s"
		default:
			ex.Repetitions = "4x60s"
		}
	case isCardio:
		ex.Repetitions = "3x30s"
	default:
		switch lvl {
		case LevelBeginner:
			ex.Repetitions = "3x10"
		case LevelIntermediate:
			ex.Repetitions = "4x10"
		default:
			ex.Repetitions = "4x12"
		}
	}
	return ex
}

var slugRe = regexp.MustCompile(`[^a-z0-9\s-]`)

var spaceRe = regexp.MustCompile(`\s+`)

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugRe.ReplaceAllString(s, "")
	s = spaceRe.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "-")
}

// LoadExercises reads the exercise CSV. Indexed columns like instructions/0
// and secondarymuscles/1 collapse into ordered lists. Load failures degrade
// to a built-in fallback set.
func LoadExercises(ctx context.Context, path string, logger *slog.Logger) *ExerciseCatalog {
	rows, err := dataset.ReadCSV(ctx, path)
	if err != nil || len(rows) == 0 {
		logger.Warn("Exercise dataset unavailable, using built-in fallback set", "path", path, "error", err)
		return fallbackExercises()
	}

	exercises := make([]Exercise, 0, len(rows))
	for _, row := range rows {
		name := dataset.String(row, "name", "exercise")
		if name == "" {
			continue
		}
		exercises = append(exercises, Exercise{
			ID:               dataset.String(row, "id", "exercise"),
			Name:             name,
			BodyPart:         dataset.String(row, "bodypart", "body_part"),
			Equipment:        dataset.String(row, "equipment", "equip", "type"),
			Target:           dataset.String(row, "target"),
			Level:            strings.ToLower(dataset.String(row, "level", "difficulty")),
			SecondaryMuscles: indexedValues(row, "secondarymuscles"),
			Steps:            indexedValues(row, "instructions"),
			Repetitions:      dataset.String(row, "repetitions", "reps"),
			GifURL:           dataset.String(row, "gifurl", "gif_url"),
		})
	}

	cat := NewExerciseCatalog(exercises)
	logger.Info("Exercise catalog loaded", "path", path, "exercises", cat.Len())
	return cat
}

// indexedValues collects prefix/0, prefix/1, ... columns in index order.
func indexedValues(row dataset.Row, prefix string) []string {
	var out []string
	for i := 0; ; i++ {
		v := dataset.String(row, fmt.Sprintf("%s/%d", prefix, i))
		if v == "" {
			break
		}
		out = append(out, v)
	}
	return out
}

func fallbackExercises() *ExerciseCatalog {
	return NewExerciseCatalog([]Exercise{
		{ID: "0001", Name: "Push-up", BodyPart: "chest", Equipment: "body weight", Target: "pectorals", Level: LevelBeginner},
		{ID: "0002", Name: "Bodyweight Squat", BodyPart: "upper legs", Equipment: "body weight", Target: "quads", Level: LevelBeginner},
		{ID: "0003", Name: "Plank", BodyPart: "waist", Equipment: "body weight", Target: "abs", Level: LevelBeginner},
		{ID: "0004", Name: "Jumping Jacks", BodyPart: "cardio", Equipment: "body weight", Target: "cardiovascular system", Level: LevelBeginner},
		{ID: "0005", Name: "Lunge", BodyPart: "upper legs", Equipment: "body weight", Target: "glutes", Level: LevelIntermediate},
		{ID: "0006", Name: "Pull-up", BodyPart: "back", Equipment: "body weight", Target: "lats", Level: LevelIntermediate},
		{ID: "0007", Name: "Burpee", BodyPart: "cardio", Equipment: "body weight", Target: "cardiovascular system", Level: LevelAdvanced},
		{ID: "0008", Name: "Pistol Squat", BodyPart: "upper legs", Equipment: "body weight", Target: "quads", Level: LevelAdvanced},
	})
}
