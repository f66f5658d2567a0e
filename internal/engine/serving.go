package engine

import "github.com/fitplate-app/mealplan-server/internal/catalog"

// Serving-size bounds in grams. Candidates outside the range are rejected
// during scoring; final output is clamped into it instead.
const (
	MinServingGrams = 40.0
	MaxServingGrams = 800.0
)

// ServingForTarget returns the grams of a food needed to hit the calorie
// target, given its per-100g density. Zero or missing density falls back to
// 200 kcal/100g, so this never divides by zero.
func ServingForTarget(caloriesPer100g, targetCalories float64) float64 {
	density := caloriesPer100g
	if density <= 0 {
		density = catalog.FallbackDensity
	}
	return (targetCalories / density) * 100
}

// FinalServing is the output-time serving: clamped into [40, 800] and
// rounded to one decimal for display.
func FinalServing(caloriesPer100g, targetCalories float64) float64 {
	return round1(clamp(ServingForTarget(caloriesPer100g, targetCalories), MinServingGrams, MaxServingGrams))
}
