package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
)

func scoreSingle(t *testing.T, item catalog.FoodItem, ctx ScoreContext) Candidate {
	t.Helper()
	cands := ScoreCandidates(catalog.New([]catalog.FoodItem{item}).Foods(), ctx)
	require.Len(t, cands, 1)
	return cands[0]
}

func termValue(c Candidate, name string) (float64, bool) {
	for _, term := range c.Terms {
		if term.Name == name {
			return term.Value, true
		}
	}
	return 0, false
}

func TestScoreCandidatesServingBounds(t *testing.T) {
	foods := catalog.New([]catalog.FoodItem{
		{Name: "dense bar", Calories: 900},  // 400/900·100 = 44.4g, in bounds
		{Name: "too dense", Calories: 1100}, // 36.4g, rejected
		{Name: "too light", Calories: 40},   // 1000g, rejected
	}).Foods()

	cands := ScoreCandidates(foods, ScoreContext{MealTarget: 400})
	require.Len(t, cands, 1)
	assert.Equal(t, "dense bar", cands[0].Food.Name)
}

func TestScoreMainMealPrefersProtein(t *testing.T) {
	foods := catalog.New([]catalog.FoodItem{
		{Name: "plain bowl", Calories: 150, Protein: 2, Carbs: 30},
		{Name: "paneer bowl", Calories: 150, Protein: 14, Carbs: 8},
	}).Foods()

	cands := ScoreCandidates(foods, ScoreContext{MealTarget: 400, IsMainMeal: true})
	require.Len(t, cands, 2)
	assert.Equal(t, "paneer bowl", cands[0].Food.Name)

	v, ok := termValue(cands[0], "high_protein")
	require.True(t, ok)
	assert.Equal(t, -1000.0, v)
}

func TestScoreMainMealNonMealPenalty(t *testing.T) {
	c := scoreSingle(t, catalog.FoodItem{Name: "coconut chutney", Calories: 200, Protein: 2},
		ScoreContext{MealTarget: 400, IsMainMeal: true})

	v, ok := termValue(c, "non_meal")
	require.True(t, ok)
	assert.Equal(t, 5000.0, v)
	assert.Greater(t, c.Cost, 1000.0)
}

func TestScoreSnackMode(t *testing.T) {
	foods := catalog.New([]catalog.FoodItem{
		{Name: "plain crackers", Calories: 150, Protein: 1},
		{Name: "poha", Calories: 150, Protein: 3},
	}).Foods()

	cands := ScoreCandidates(foods, ScoreContext{MealTarget: 225, IsSnack: true})
	require.Len(t, cands, 2)
	assert.Equal(t, "poha", cands[0].Food.Name)

	v, ok := termValue(cands[0], "snack_staple")
	require.True(t, ok)
	assert.Equal(t, -100.0, v)
}

func TestScorePreferenceBoost(t *testing.T) {
	base := ScoreContext{MealTarget: 400, IsMainMeal: true, PreferenceTokens: []string{"oats"}}

	t.Run("matching token subtracts 1000", func(t *testing.T) {
		c := scoreSingle(t, catalog.FoodItem{Name: "oats porridge", Calories: 150, Protein: 6}, base)
		assert.True(t, c.MatchedPreference)
		v, ok := termValue(c, "preference")
		require.True(t, ok)
		assert.Equal(t, -1000.0, v)
	})

	t.Run("no match no boost", func(t *testing.T) {
		c := scoreSingle(t, catalog.FoodItem{Name: "veg pulao", Calories: 150, Protein: 6}, base)
		assert.False(t, c.MatchedPreference)
		_, ok := termValue(c, "preference")
		assert.False(t, ok)
	})

	t.Run("low-protein preference counteracted under a protein goal", func(t *testing.T) {
		ctx := base
		ctx.Motive = "weight loss"
		c := scoreSingle(t, catalog.FoodItem{Name: "oats water", Calories: 150, Protein: 2}, ctx)
		v, ok := termValue(c, "low_protein_preference")
		require.True(t, ok)
		assert.Equal(t, 500.0, v)
	})

	t.Run("high-protein preference kept under a protein goal", func(t *testing.T) {
		ctx := base
		ctx.Motive = "muscle gain"
		c := scoreSingle(t, catalog.FoodItem{Name: "oats porridge", Calories: 150, Protein: 6}, ctx)
		_, ok := termValue(c, "low_protein_preference")
		assert.False(t, ok)
	})
}

func TestScoreConsumeAvoidLists(t *testing.T) {
	item := catalog.FoodItem{Name: "veg pulao", Calories: 150, Protein: 4}

	boosted := scoreSingle(t, item, ScoreContext{MealTarget: 400, BoostFoods: []string{"Pulao"}})
	penalized := scoreSingle(t, item, ScoreContext{MealTarget: 400, PenaltyFoods: []string{"Pulao"}})
	neutral := scoreSingle(t, item, ScoreContext{MealTarget: 400})

	assert.InDelta(t, neutral.Cost-500, boosted.Cost, 0.001)
	assert.InDelta(t, neutral.Cost+500, penalized.Cost, 0.001)
}

func TestScoreGoalModifier(t *testing.T) {
	item := catalog.FoodItem{Name: "veg pulao", Calories: 300, Protein: 4}

	neutral := scoreSingle(t, item, ScoreContext{MealTarget: 400})
	loss := scoreSingle(t, item, ScoreContext{MealTarget: 400, Motive: "weight loss"})
	gain := scoreSingle(t, item, ScoreContext{MealTarget: 400, Motive: "weight gain"})

	assert.InDelta(t, neutral.Cost-15, loss.Cost, 0.001) // 0.05·300
	assert.InDelta(t, neutral.Cost+15, gain.Cost, 0.001)
}

// The step-6 disease terms subtract proportionally to the flagged nutrient,
// so a HIGHER-carb food ranks BETTER for diabetics and a higher-fat food
// ranks better for heart conditions. That looks inverted from intent but it
// is the shipped behavior; this test pins it so any sign flip is deliberate.
func TestScoreDiseaseModifierSigns(t *testing.T) {
	t.Run("diabetes favors higher carbs", func(t *testing.T) {
		lowCarb := scoreSingle(t, catalog.FoodItem{Name: "bowl one", Calories: 150, Carbs: 10},
			ScoreContext{MealTarget: 400, Diseases: []string{"diabetes"}})
		highCarb := scoreSingle(t, catalog.FoodItem{Name: "bowl one", Calories: 150, Carbs: 50},
			ScoreContext{MealTarget: 400, Diseases: []string{"diabetes"}})

		assert.Less(t, highCarb.Cost, lowCarb.Cost)
		v, ok := termValue(highCarb, "diabetes")
		require.True(t, ok)
		assert.Equal(t, -5.0, v) // −0.1·50
	})

	t.Run("heart condition favors higher fat", func(t *testing.T) {
		lowFat := scoreSingle(t, catalog.FoodItem{Name: "bowl one", Calories: 150, Fat: 5},
			ScoreContext{MealTarget: 400, Diseases: []string{"heart disease"}})
		highFat := scoreSingle(t, catalog.FoodItem{Name: "bowl one", Calories: 150, Fat: 20},
			ScoreContext{MealTarget: 400, Diseases: []string{"heart disease"}})

		assert.Less(t, highFat.Cost, lowFat.Cost)
	})

	t.Run("main meals still add the separate diabetic carb penalty", func(t *testing.T) {
		c := scoreSingle(t, catalog.FoodItem{Name: "bowl one", Calories: 150, Carbs: 40},
			ScoreContext{MealTarget: 400, IsMainMeal: true, Diseases: []string{"diabetes"}})

		carbPenalty, ok := termValue(c, "diabetic_carbs")
		require.True(t, ok)
		assert.Equal(t, 20.0, carbPenalty) // +0.5·40
		modifier, ok := termValue(c, "diabetes")
		require.True(t, ok)
		assert.Equal(t, -4.0, modifier) // −0.1·40
	})
}

func TestScoreProfileModifiers(t *testing.T) {
	item := catalog.FoodItem{Name: "veg pulao", Calories: 200, Protein: 10, Fat: 6}
	neutral := scoreSingle(t, item, ScoreContext{MealTarget: 400})

	t.Run("bmi over 25", func(t *testing.T) {
		c := scoreSingle(t, item, ScoreContext{MealTarget: 400, BMI: 27})
		assert.InDelta(t, neutral.Cost-6, c.Cost, 0.001) // −0.03·200
	})

	t.Run("age over 60", func(t *testing.T) {
		c := scoreSingle(t, item, ScoreContext{MealTarget: 400, Age: 65})
		assert.InDelta(t, neutral.Cost+10*0.2-6*0.1, c.Cost, 0.001)
	})

	t.Run("vegetarian diet", func(t *testing.T) {
		c := scoreSingle(t, item, ScoreContext{MealTarget: 400, DietType: "vegetarian"})
		assert.InDelta(t, neutral.Cost+1, c.Cost, 0.001) // +0.1·10
	})
}

func TestScoreCostEqualsTermSum(t *testing.T) {
	c := scoreSingle(t, catalog.FoodItem{Name: "paneer tikka", Calories: 250, Protein: 14, Carbs: 5, Fat: 18},
		ScoreContext{MealTarget: 500, IsMainMeal: true, Motive: "muscle gain", BMI: 26, DietType: "vegetarian"})

	var sum float64
	for _, term := range c.Terms {
		sum += term.Value
	}
	assert.InDelta(t, sum, c.Cost, 1e-9)
}

func TestScoreZeroCalorieFoodUsesFallbackDensity(t *testing.T) {
	c := scoreSingle(t, catalog.FoodItem{Name: "mystery broth", Calories: 0, Protein: 2},
		ScoreContext{MealTarget: 400, IsMainMeal: true})

	// 400 kcal at the 200 fallback density → 200g serving.
	assert.Equal(t, 200.0, c.ServingGrams)
}
