package engine

import (
	"math"
	"strings"
)

// BMI category names, by ascending index.
const (
	CategoryUnderweight = "underweight"
	CategoryHealthy     = "healthy"
	CategoryOverweight  = "overweight"
	CategoryObese       = "obese"
)

// ComputeBMI returns weight/height² rounded to two decimals. Callers pass
// sanitized inputs; height is in centimeters.
func ComputeBMI(heightCm, weightKg float64) float64 {
	h := heightCm / 100
	return round2(weightKg / (h * h))
}

// BMICategory maps a BMI value to its WHO band name.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryHealthy
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// DailyCalorieTarget estimates the daily calorie goal. BMR comes from the
// Harris-Benedict formula when age and gender are known, with a 20·weight
// floor; otherwise maintenance falls back to 24·weight. The result is scaled
// by the activity multiplier, shifted by the goal offset and clamped to
// [1200, 4000], rounded to two decimals.
func DailyCalorieTarget(weightKg, heightCm float64, lifestyle, motive string, age int, gender string) float64 {
	var maintenance float64
	switch {
	case weightKg <= 0:
		maintenance = 1700
	case age > 0 && gender != "":
		a := float64(age)
		var bmr float64
		switch strings.ToLower(gender) {
		case "male", "m":
			bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*a
		default:
			bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*a
		}
		maintenance = math.Max(bmr, weightKg*20)
	default:
		maintenance = weightKg * 24
	}

	daily := maintenance*activityMultiplier(lifestyle) + goalOffset(motive)
	return round2(clamp(daily, 1200, 4000))
}

// DailyProteinTarget returns the daily protein goal in grams: weight times a
// g/kg factor chosen by goal first, then lifestyle. Ages 60 and up get a
// 1.0 g/kg floor. Clamped to [50, 200], rounded to one decimal.
func DailyProteinTarget(weightKg float64, motive, lifestyle string, age int) float64 {
	if weightKg <= 0 {
		weightKg = 70
	}

	m := strings.ToLower(motive)
	l := strings.ToLower(lifestyle)
	var factor float64
	switch {
	case containsAny(m, "loss", "lose", "fat"):
		factor = 2.0
	case containsAny(m, "gain", "build", "muscle"):
		factor = 1.8
	case l == "very active" || l == "highly active" || l == "very" || l == "veryactive":
		factor = 1.9
	case l == "moderate" || l == "active":
		factor = 1.35
	case l == "lightly active" || l == "light":
		factor = 1.1
	default:
		factor = 0.8
	}
	if age >= 60 {
		factor = math.Max(factor, 1.0)
	}

	return round1(clamp(weightKg*factor, 50, 200))
}

func activityMultiplier(lifestyle string) float64 {
	switch strings.ToLower(lifestyle) {
	case "sedentary", "low":
		return 1.2
	case "lightly active", "light", "moderate", "active":
		return 1.45
	case "very active", "highly active", "very", "veryactive":
		return 1.6
	default:
		return 1.45
	}
}

func goalOffset(motive string) float64 {
	m := strings.ToLower(motive)
	switch {
	case containsAny(m, "loss", "lose", "fat"):
		return -500
	case containsAny(m, "gain", "build", "muscle"):
		return 300
	default:
		return 0
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
