package engine

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/profile"
)

// Defaults substituted for malformed profile numerics. The engine answers
// something reasonable instead of failing the request.
const (
	defaultWeightKg = 70.0
	defaultHeightCm = 170.0
	defaultAgeYears = 30
)

// PlanSet is one complete recommendation: derived targets, the main daily
// plan and the alternatives.
type PlanSet struct {
	ID                string      `json:"id"`
	BMI               float64     `json:"bmi"`
	BMICategory       string      `json:"bmi_category"`
	DailyCalories     float64     `json:"daily_calories"`
	DailyProteinGrams float64     `json:"daily_protein_g"`
	WaterLiters       float64     `json:"water_l"`
	Main              DailyPlan   `json:"main_plan"`
	Alternatives      []DailyPlan `json:"alternative_plans"`
}

// Engine is the meal-recommendation engine. It holds only immutable data
// loaded at startup, so any number of Recommend calls can run concurrently.
type Engine struct {
	catalog      *catalog.Catalog
	diseases     *catalog.DiseaseTable
	alternatives int
	log          *slog.Logger
}

// New builds an engine over the loaded catalog and disease table.
// alternatives is the number of alternative daily plans per request.
func New(cat *catalog.Catalog, diseases *catalog.DiseaseTable, alternatives int, logger *slog.Logger) *Engine {
	if alternatives < 0 {
		alternatives = 0
	}
	return &Engine{
		catalog:      cat,
		diseases:     diseases,
		alternatives: alternatives,
		log:          logger,
	}
}

// Recommend produces a full plan set for the given profile. Malformed
// numerics are replaced with defaults and every filtering dead-end degrades
// to staples, so this never returns an error.
func (e *Engine) Recommend(p profile.UserProfile) PlanSet {
	p = sanitize(p)

	bmi := ComputeBMI(p.HeightCm, p.WeightKg)
	dailyCal := DailyCalorieTarget(p.WeightKg, p.HeightCm, p.Lifestyle, p.Motive, p.AgeYears, p.Gender)
	dailyProtein := DailyProteinTarget(p.WeightKg, p.Motive, p.Lifestyle, p.AgeYears)

	recs := e.diseases.Lookup(p.Diseases)
	penalty := append(append([]string{}, recs.Avoid...), p.AvoidFoods...)

	pl := newPlanner(e.catalog, p, recs.Consume, penalty, bmi, dailyCal, dailyProtein)

	set := PlanSet{
		ID:                uuid.NewString(),
		BMI:               bmi,
		BMICategory:       BMICategory(bmi),
		DailyCalories:     dailyCal,
		DailyProteinGrams: dailyProtein,
		WaterLiters:       p.WaterLiters,
		Main:              pl.buildDay(0),
	}
	set.Alternatives = make([]DailyPlan, 0, e.alternatives)
	for n := 1; n <= e.alternatives; n++ {
		set.Alternatives = append(set.Alternatives, pl.buildDay(n))
	}

	e.log.Debug("Plan set assembled",
		"plan_id", set.ID,
		"bmi", bmi,
		"daily_calories", dailyCal,
		"daily_protein_g", dailyProtein,
		"alternatives", len(set.Alternatives))
	return set
}

// Weekday names in plan order.
var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayPlan is one day of a weekly plan, with the day's scaled targets.
type WeekdayPlan struct {
	Day           string  `json:"day"`
	CalorieTarget float64 `json:"calorie_target"`
	ProteinTarget float64 `json:"protein_target_g"`
	DailyPlan
}

// WeeklyTotals sums the seven days.
type WeeklyTotals struct {
	Calories float64 `json:"weekly_calories"`
	Protein  float64 `json:"weekly_protein_g"`
	Carbs    float64 `json:"weekly_carbs_g"`
	Fat      float64 `json:"weekly_fat_g"`
}

// WeeklyPlan maps one profile onto seven daily plans, Monday through Sunday.
type WeeklyPlan struct {
	ID                string        `json:"id"`
	BMI               float64       `json:"bmi"`
	BMICategory       string        `json:"bmi_category"`
	DailyCalories     float64       `json:"daily_calories"`
	DailyProteinGrams float64       `json:"daily_protein_g"`
	Days              []WeekdayPlan `json:"days"`
	Totals            WeeklyTotals  `json:"weekly_totals"`
}

// RecommendWeek produces a seven-day plan. Each weekday runs the daily
// planner at its own candidate rank so dishes rotate through the week the
// same way the alternative plans rotate, and day targets swing -10%/0/+10%
// on a three-day cycle for variety.
func (e *Engine) RecommendWeek(p profile.UserProfile) WeeklyPlan {
	p = sanitize(p)

	bmi := ComputeBMI(p.HeightCm, p.WeightKg)
	dailyCal := DailyCalorieTarget(p.WeightKg, p.HeightCm, p.Lifestyle, p.Motive, p.AgeYears, p.Gender)
	dailyProtein := DailyProteinTarget(p.WeightKg, p.Motive, p.Lifestyle, p.AgeYears)

	recs := e.diseases.Lookup(p.Diseases)
	penalty := append(append([]string{}, recs.Avoid...), p.AvoidFoods...)
	pl := newPlanner(e.catalog, p, recs.Consume, penalty, bmi, dailyCal, dailyProtein)

	week := WeeklyPlan{
		ID:                uuid.NewString(),
		BMI:               bmi,
		BMICategory:       BMICategory(bmi),
		DailyCalories:     dailyCal,
		DailyProteinGrams: dailyProtein,
		Days:              make([]WeekdayPlan, 0, len(weekdays)),
	}
	for i, day := range weekdays {
		mult := 1.0 + 0.1*float64(i%3-1)
		calTarget := round2(dailyCal * mult)
		proteinTarget := round1(dailyProtein * mult)

		plan := pl.buildDayFor(i, calTarget, proteinTarget)
		week.Days = append(week.Days, WeekdayPlan{
			Day:           day,
			CalorieTarget: calTarget,
			ProteinTarget: proteinTarget,
			DailyPlan:     plan,
		})
		week.Totals.Calories += plan.Totals.Calories
		week.Totals.Protein += plan.Totals.Protein
		week.Totals.Carbs += plan.Totals.Carbs
		week.Totals.Fat += plan.Totals.Fat
	}
	week.Totals.Calories = round1(week.Totals.Calories)
	week.Totals.Protein = round1(week.Totals.Protein)
	week.Totals.Carbs = round1(week.Totals.Carbs)
	week.Totals.Fat = round1(week.Totals.Fat)

	e.log.Debug("Weekly plan assembled",
		"plan_id", week.ID,
		"daily_calories", dailyCal,
		"weekly_calories", week.Totals.Calories)
	return week
}

func sanitize(p profile.UserProfile) profile.UserProfile {
	if p.WeightKg <= 0 {
		p.WeightKg = defaultWeightKg
	}
	if p.HeightCm <= 0 {
		p.HeightCm = defaultHeightCm
	}
	if p.AgeYears <= 0 {
		p.AgeYears = defaultAgeYears
	}
	if p.WaterLiters <= 0 {
		p.WaterLiters = 2.5
	}
	return p
}
