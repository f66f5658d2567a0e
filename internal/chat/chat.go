// Package chat answers free-text questions by keyword dispatch over the
// loaded datasets. It is not a language model; an empty answer means nothing
// matched and the caller decides what to say.
package chat

import (
	"fmt"
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/activity"
	"github.com/fitplate-app/mealplan-server/internal/catalog"
)

var (
	foodKeywords     = []string{"calories", "nutrition", "protein", "carbs", "fat", "kcal", "food", "eat", "meal"}
	diseaseKeywords  = []string{"diabetes", "cholesterol", "heart", "hypertension", "disease", "condition", "health"}
	knownDiseases    = []string{"diabetes", "cholesterol", "heart"}
	exerciseKeywords = []string{"exercise", "workout", "fitness", "training", "gym"}
)

// Responder dispatches chat questions against the datasets.
type Responder struct {
	foods     *catalog.Catalog
	diseases  *catalog.DiseaseTable
	exercises *activity.ExerciseCatalog
	yoga      *activity.YogaCatalog
}

// NewResponder builds a responder over the loaded catalogs.
func NewResponder(foods *catalog.Catalog, diseases *catalog.DiseaseTable, exercises *activity.ExerciseCatalog, yoga *activity.YogaCatalog) *Responder {
	return &Responder{foods: foods, diseases: diseases, exercises: exercises, yoga: yoga}
}

// Answer returns a dataset-backed reply, or "" when no topic matches.
// Dispatch order: food nutrition, disease lists, exercises, yoga.
func (r *Responder) Answer(message string) string {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return ""
	}

	if containsAny(msg, foodKeywords) {
		if answer := r.foodAnswer(msg); answer != "" {
			return answer
		}
	}

	if containsAny(msg, diseaseKeywords) {
		if answer := r.diseaseAnswer(msg); answer != "" {
			return answer
		}
	}

	if containsAny(msg, exerciseKeywords) {
		if answer := r.exerciseAnswer(msg); answer != "" {
			return answer
		}
	}

	if strings.Contains(msg, "yoga") || strings.Contains(msg, "asan") {
		if answer := r.yogaAnswer(); answer != "" {
			return answer
		}
	}

	return ""
}

func (r *Responder) foodAnswer(msg string) string {
	var match *catalog.FoodItem
	for _, f := range r.foods.Foods() {
		if strings.Contains(msg, f.NameLower()) {
			match = &f
			break
		}
	}
	if match == nil {
		return ""
	}
	return fmt.Sprintf("%s: %.1f kcal, %.1fg protein, %.1fg carbs, %.1fg fat per 100g.",
		match.Name, match.Calories, match.Protein, match.Carbs, match.Fat)
}

func (r *Responder) diseaseAnswer(msg string) string {
	var mentioned []string
	for _, d := range knownDiseases {
		if strings.Contains(msg, d) {
			mentioned = append(mentioned, d)
		}
	}
	if len(mentioned) == 0 {
		return ""
	}

	recs := r.diseases.Lookup(mentioned)
	if len(recs.Consume) == 0 && len(recs.Avoid) == 0 {
		return ""
	}

	answer := fmt.Sprintf("For %s: ", strings.Join(mentioned, ", "))
	if len(recs.Consume) > 0 {
		answer += fmt.Sprintf("Recommended foods: %s. ", strings.Join(recs.Consume, ", "))
	}
	if len(recs.Avoid) > 0 {
		answer += fmt.Sprintf("Avoid: %s.", strings.Join(recs.Avoid, ", "))
	}
	return strings.TrimSpace(answer)
}

func (r *Responder) exerciseAnswer(msg string) string {
	level := activity.LevelBeginner
	if strings.Contains(msg, "advanced") {
		level = activity.LevelAdvanced
	} else if strings.Contains(msg, "intermediate") {
		level = activity.LevelIntermediate
	}

	plan := r.exercises.Plan(level, "", 3)
	if len(plan) == 0 {
		return ""
	}
	names := make([]string, 0, len(plan))
	for _, ex := range plan {
		names = append(names, ex.Name)
	}
	return fmt.Sprintf("Recommended exercises for %s level: %s.", level, strings.Join(names, ", "))
}

func (r *Responder) yogaAnswer() string {
	plan := r.yoga.Plan(activity.LevelBeginner, "", 3)
	if len(plan) == 0 {
		return ""
	}
	names := make([]string, 0, len(plan))
	for _, p := range plan {
		names = append(names, p.Name)
	}
	return fmt.Sprintf("Recommended yoga poses: %s.", strings.Join(names, ", "))
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
