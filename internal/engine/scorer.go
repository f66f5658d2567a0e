package engine

import (
	"sort"
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
)

// ScoreContext carries everything one scoring pass needs besides the
// candidate foods themselves. Boost and penalty food names come from the
// disease consume/avoid lookup and the report extract.
type ScoreContext struct {
	MealTarget       float64
	IsMainMeal       bool
	IsSnack          bool
	PreferenceTokens []string
	BoostFoods       []string
	PenaltyFoods     []string
	Motive           string
	Diseases         []string
	BMI              float64
	Age              int
	DietType         string
}

func (c *ScoreContext) hasDisease(subs ...string) bool {
	for _, d := range c.Diseases {
		dl := strings.ToLower(d)
		for _, sub := range subs {
			if strings.Contains(dl, sub) {
				return true
			}
		}
	}
	return false
}

// highProteinMotive reports whether the goal overrides a low-protein food
// preference.
func (c *ScoreContext) highProteinMotive() bool {
	return containsAny(strings.ToLower(c.Motive), "gain", "loss", "muscle", "fat")
}

// ScoreTerm is one named contribution to a candidate's cost. Keeping the
// terms as an explicit list makes every ranking decision auditable in tests
// and logs.
type ScoreTerm struct {
	Name  string
	Value float64
}

// Candidate is one scored food for one meal slot. Cost is the sum of Terms;
// lower is better.
type Candidate struct {
	Food              catalog.FoodItem
	ServingGrams      float64
	Cost              float64
	MatchedPreference bool
	Terms             []ScoreTerm
}

// ScoreCandidates computes the composite cost for every food whose serving
// size lands in bounds, then sorts ascending by cost, descending by protein
// and ascending by serving grams. An empty result is legal; the planner
// relaxes to staples.
func ScoreCandidates(foods []catalog.FoodItem, ctx ScoreContext) []Candidate {
	ctx.BoostFoods = lowerAll(ctx.BoostFoods)
	ctx.PenaltyFoods = lowerAll(ctx.PenaltyFoods)

	out := make([]Candidate, 0, len(foods))
	for i := range foods {
		serving := ServingForTarget(foods[i].Calories, ctx.MealTarget)
		if serving < MinServingGrams || serving > MaxServingGrams {
			continue
		}
		out = append(out, scoreOne(foods[i], serving, &ctx))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Cost != out[j].Cost {
			return out[i].Cost < out[j].Cost
		}
		if out[i].Food.Protein != out[j].Food.Protein {
			return out[i].Food.Protein > out[j].Food.Protein
		}
		return out[i].ServingGrams < out[j].ServingGrams
	})
	return out
}

func scoreOne(f catalog.FoodItem, serving float64, ctx *ScoreContext) Candidate {
	c := Candidate{Food: f, ServingGrams: serving}
	density := f.EnergyDensity()
	add := func(name string, value float64) {
		if value != 0 {
			c.Terms = append(c.Terms, ScoreTerm{Name: name, Value: value})
		}
	}

	c.MatchedPreference = len(ctx.PreferenceTokens) > 0 && nameMatchesAny(&f, ctx.PreferenceTokens)

	switch {
	case ctx.IsMainMeal:
		add("density", -density*0.05)
		add("protein", -f.Protein*15)
		if f.Tags.Has(catalog.TagHighProtein) {
			add("high_protein", -1000)
		}
		add("protein_ratio", -f.Protein/(density+1)*5000)
		if f.Tags.Has(catalog.TagSalad) {
			add("salad", -200)
		}
		add("serving_fit", abs(serving-250)*0.1)
		if f.Tags.Has(catalog.TagNonMealItem) {
			add("non_meal", 5000)
		}
		if f.Tags.Has(catalog.TagFruit) {
			add("fruit", 100)
		}
		if f.Tags.Has(catalog.TagSweet) {
			add("sweet", 100)
		}
		if ctx.hasDisease("diabetes") {
			add("diabetic_carbs", f.Carbs*0.5)
		}
	case ctx.IsSnack:
		add("serving_fit", abs(serving-150)*0.01)
		if f.Tags.Has(catalog.TagNonMealItem) {
			add("non_meal", 5000)
		}
		if f.Tags.Has(catalog.TagSnackStaple) {
			add("snack_staple", -100)
		}
		if f.Tags.Has(catalog.TagFruit) {
			add("fruit", -150)
		}
		if f.Tags.Has(catalog.TagSalad) {
			add("salad", -150)
		}
		add("protein", -f.Protein*5)
		if f.Tags.Has(catalog.TagHighProtein) {
			add("high_protein", -500)
		}
		if f.Tags.Has(catalog.TagSweet) {
			add("sweet", 100)
		}
	default:
		add("serving_fit", abs(serving-220))
		add("density_fit", abs(density-200)*0.02)
		add("protein", -f.Protein*1.5)
		if f.Tags.Has(catalog.TagNonMealItem) {
			add("non_meal", 5000)
		}
	}

	if c.MatchedPreference {
		add("preference", -1000)
		if ctx.highProteinMotive() && f.Protein < 5 {
			add("low_protein_preference", 500)
		}
	}

	if nameMatchesAny(&f, ctx.BoostFoods) {
		add("consume_list", -500)
	}
	if nameMatchesAny(&f, ctx.PenaltyFoods) {
		add("avoid_list", 500)
	}

	motive := strings.ToLower(ctx.Motive)
	if containsAny(motive, "loss", "lose") {
		add("goal", -density*0.05)
	} else if strings.Contains(motive, "gain") {
		add("goal", density*0.05)
	}

	// The disease terms subtract regardless of magnitude, so a higher-carb
	// food ranks better for diabetics, not worse. Wrong-looking but shipped;
	// pinned by TestScoreDiseaseModifierSigns.
	if ctx.hasDisease("diabetes") {
		add("diabetes", -f.Carbs*0.1)
	}
	if ctx.hasDisease("cholesterol", "heart") {
		add("cholesterol", -f.Fat*0.1)
	}

	if ctx.BMI > 25 {
		add("bmi", -density*0.03)
	}
	if ctx.Age > 60 {
		add("age", f.Protein*0.2-f.Fat*0.1)
	}
	switch strings.ToLower(strings.TrimSpace(ctx.DietType)) {
	case "vegetarian", "veg":
		add("vegetarian", f.Protein*0.1)
	}

	for _, t := range c.Terms {
		c.Cost += t.Value
	}
	return c
}

func lowerAll(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
