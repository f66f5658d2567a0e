package engine

import (
	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/profile"
)

// Meal slot names, in plan order.
const (
	SlotBreakfast = "breakfast"
	SlotLunch     = "lunch"
	SlotSnacks    = "snacks"
	SlotDinner    = "dinner"
)

// mealSlots fixes the slot order and each slot's share of the daily calorie
// target.
var mealSlots = []struct {
	Name  string
	Share float64
}{
	{SlotBreakfast, 0.25},
	{SlotLunch, 0.35},
	{SlotSnacks, 0.15},
	{SlotDinner, 0.25},
}

// slotSeeds offsets the candidate rank per slot when building alternative
// plans, so alternates vary across slots yet stay reproducible across
// processes.
var slotSeeds = map[string]int{
	SlotBreakfast: 0,
	SlotLunch:     2,
	SlotSnacks:    4,
	SlotDinner:    1,
}

// Estimated protein added by side components, in grams.
const (
	saladSideProtein   = 3.0
	ricePairingProtein = 8.0
	riceCurryProtein   = 5.0
)

var saladSides = map[string]string{
	SlotBreakfast: "Green Salad with Cucumber & Tomato (100g)",
	SlotLunch:     "Mixed Green Salad with Carrots & Beetroot (100g)",
	SlotDinner:    "Fresh Vegetable Salad with Greens (100g)",
}

var proteinMainKeywords = []string{"chicken", "fish", "egg", "meat"}

// PlannedMeal is one slot of a daily plan: the chosen food, its serving and
// its nutrient contribution, plus optional side-component suggestions.
type PlannedMeal struct {
	MealType           string  `json:"meal_type"`
	FoodName           string  `json:"food_name"`
	CaloriesPer100g    float64 `json:"calories_per_100g"`
	ServingGrams       float64 `json:"serving_g"`
	CaloriesInServing  float64 `json:"calories_serving"`
	ProteinGrams       float64 `json:"protein_g"`
	CarbsGrams         float64 `json:"carbs_g"`
	FatGrams           float64 `json:"fat_g"`
	MealTargetCalories float64 `json:"meal_target_calories"`
	SaladSide          string  `json:"salad_side,omitempty"`
	PairingTip         string  `json:"pairing_tip,omitempty"`

	sideProtein float64
}

// PlanTotals sums one day's four meals, including the side-component protein
// estimates.
type PlanTotals struct {
	Calories   float64 `json:"daily_calories"`
	Protein    float64 `json:"daily_protein_g"`
	Carbs      float64 `json:"daily_carbs_g"`
	Fat        float64 `json:"daily_fat_g"`
	ProteinMet bool    `json:"protein_met"`
}

// DailyPlan is one full day: exactly one meal per slot plus totals.
type DailyPlan struct {
	Meals  []PlannedMeal `json:"meals"`
	Totals PlanTotals    `json:"totals"`
}

// planner assembles daily plans for one request. It is built fresh per call
// and never shared.
type planner struct {
	dietFiltered []catalog.FoodItem
	allergens    []string
	tokens       map[string][]string
	ctxBase      ScoreContext
	dailyCal     float64
	dailyProtein float64
}

func newPlanner(cat *catalog.Catalog, p profile.UserProfile, boost, penalty []string, bmi, dailyCal, dailyProtein float64) *planner {
	tokens := make(map[string][]string, len(mealSlots))
	for _, slot := range mealSlots {
		tokens[slot.Name] = ParseMealPreference(p.MealPreferences[slot.Name])
	}
	return &planner{
		dietFiltered: FilterDietType(cat.Foods(), p.DietType),
		allergens:    ExpandAllergies(p.Allergies),
		tokens:       tokens,
		ctxBase: ScoreContext{
			BoostFoods:   boost,
			PenaltyFoods: penalty,
			Motive:       p.Motive,
			Diseases:     p.Diseases,
			BMI:          bmi,
			Age:          p.AgeYears,
			DietType:     p.DietType,
		},
		dailyCal:     dailyCal,
		dailyProtein: dailyProtein,
	}
}

// buildDay assembles one full day. rank 0 always picks the top candidate
// (the main plan); alternative plan n passes rank n and each slot picks
// index (n−1+slotSeed) mod len(candidates). usedFoods threads through the
// four slots so one day never repeats a dish.
func (pl *planner) buildDay(rank int) DailyPlan {
	return pl.buildDayFor(rank, pl.dailyCal, pl.dailyProtein)
}

// buildDayFor assembles one day against explicit calorie and protein
// targets. Weekly plans pass per-day targets that swing around the daily
// baseline.
func (pl *planner) buildDayFor(rank int, calTarget, proteinTarget float64) DailyPlan {
	var meals []PlannedMeal
	var usedFoods []string
	for _, slot := range mealSlots {
		target := round1(calTarget * slot.Share)
		candidates := pl.rankSlot(slot.Name, target, usedFoods)
		if len(candidates) == 0 {
			continue
		}

		idx := 0
		if rank > 0 {
			idx = (rank - 1 + slotSeeds[slot.Name]) % len(candidates)
		}
		meal := pl.buildMeal(slot.Name, target, candidates[idx])
		meals = append(meals, meal)
		usedFoods = append(usedFoods, meal.FoodName)
	}
	return DailyPlan{Meals: meals, Totals: totalsFor(meals, proteinTarget)}
}

// rankSlot runs the filter pipeline and scoring for one slot. When filtering
// leaves nothing, it relaxes to slot staples from the diet-filtered catalog,
// then to the whole diet-filtered catalog, so a slot never comes back empty.
func (pl *planner) rankSlot(slotName string, target float64, usedFoods []string) []Candidate {
	isSnack := slotName == SlotSnacks

	foods := FilterAllergens(pl.dietFiltered, pl.allergens)
	foods = FilterUsed(foods, usedFoods)
	foods = FilterMealCategories(foods)

	ctx := pl.ctxBase
	ctx.MealTarget = target
	ctx.IsMainMeal = !isSnack
	ctx.IsSnack = isSnack
	ctx.PreferenceTokens = pl.tokens[slotName]

	if candidates := ScoreCandidates(foods, ctx); len(candidates) > 0 {
		return candidates
	}

	stapleTag := catalog.TagStapleMeal
	if isSnack {
		stapleTag = catalog.TagStapleSnack
	}
	var staples []catalog.FoodItem
	for _, f := range pl.dietFiltered {
		if f.Tags.Has(stapleTag) {
			staples = append(staples, f)
		}
	}
	if len(staples) == 0 {
		staples = pl.dietFiltered
	}
	if len(staples) == 0 {
		// Diet filtering emptied the whole catalog. Serve the built-in
		// staples instead of an empty slot.
		staples = FilterDietType(catalog.Fallback().Foods(), pl.ctxBase.DietType)
	}

	candidates := make([]Candidate, 0, len(staples))
	for _, f := range staples {
		candidates = append(candidates, Candidate{
			Food:         f,
			ServingGrams: ServingForTarget(f.Calories, target),
		})
	}
	return candidates
}

func (pl *planner) buildMeal(slotName string, target float64, c Candidate) PlannedMeal {
	serving := FinalServing(c.Food.Calories, target)
	density := c.Food.EnergyDensity()
	meal := PlannedMeal{
		MealType:           slotName,
		FoodName:           c.Food.Name,
		CaloriesPer100g:    round1(density),
		ServingGrams:       serving,
		CaloriesInServing:  round1(density * serving / 100),
		ProteinGrams:       round1(c.Food.Protein * serving / 100),
		CarbsGrams:         round1(c.Food.Carbs * serving / 100),
		FatGrams:           round1(c.Food.Fat * serving / 100),
		MealTargetCalories: target,
	}

	if slotName != SlotSnacks && !c.Food.Tags.Has(catalog.TagSaladDish) {
		meal.SaladSide = saladSides[slotName]
		meal.sideProtein += saladSideProtein
	}
	if slotName == SlotLunch || slotName == SlotDinner {
		switch {
		case c.Food.Tags.Has(catalog.TagRiceOrCurry):
			meal.PairingTip = "Pair with moderate rice (150g) and curry or dal for balanced carbs and protein"
			meal.sideProtein += ricePairingProtein
		case nameMatchesAny(&c.Food, proteinMainKeywords):
			meal.PairingTip = "Add a fresh salad side and moderate rice or curry to reach the target calories"
			meal.sideProtein += riceCurryProtein
		}
	}
	return meal
}

func totalsFor(meals []PlannedMeal, proteinTarget float64) PlanTotals {
	var t PlanTotals
	for _, m := range meals {
		t.Calories += m.CaloriesInServing
		t.Protein += m.ProteinGrams + m.sideProtein
		t.Carbs += m.CarbsGrams
		t.Fat += m.FatGrams
	}
	t.ProteinMet = t.Protein >= proteinTarget*0.95
	t.Calories = round1(t.Calories)
	t.Protein = round1(t.Protein)
	t.Carbs = round1(t.Carbs)
	t.Fat = round1(t.Fat)
	return t
}
