package activity

import "strings"

// dayFocus pairs a weekday with its training emphasis. area keys into
// exerciseTargetSynonyms for selection; Focus is the display name.
type dayFocus struct {
	Day   string
	Focus string
	area  string
	Rest  bool
}

// weekFocus returns the seven-day training split, shifted toward cardio,
// strength or endurance work when the stated target area calls for it.
// Sunday always rests.
func weekFocus(targetArea string) []dayFocus {
	week := []dayFocus{
		{Day: "Monday", Focus: "Upper Body", area: "upper body"},
		{Day: "Tuesday", Focus: "Lower Body", area: "lower body"},
		{Day: "Wednesday", Focus: "Cardio", area: "full body"},
		{Day: "Thursday", Focus: "Upper Body", area: "upper body"},
		{Day: "Friday", Focus: "Full Body", area: "full body"},
		{Day: "Saturday", Focus: "Core & Flexibility", area: "core"},
		{Day: "Sunday", Focus: "Rest", Rest: true},
	}

	ta := strings.ToLower(strings.TrimSpace(targetArea))
	switch {
	case containsAnyOf(ta, "weight loss", "fat loss", "cardio"):
		week[1].Focus = "Cardio + Lower Body"
		week[2].Focus = "HIIT Cardio"
		week[4].Focus = "Full Body + Cardio"
	case containsAnyOf(ta, "muscle gain", "strength", "bulking"):
		week[0].Focus = "Upper Body Strength"
		week[1].Focus = "Lower Body Strength"
		week[4].Focus = "Full Body Strength"
	case containsAnyOf(ta, "endurance", "stamina"):
		week[2].Focus = "Endurance Cardio"
		week[4].Focus = "Circuit Training"
	}
	return week
}

func containsAnyOf(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// DailyWorkout is one day of the weekly split.
type DailyWorkout struct {
	Day       string     `json:"day"`
	Focus     string     `json:"focus"`
	Rest      bool       `json:"rest,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// WeeklyWorkout is a seven-day training split with its rest days listed.
type WeeklyWorkout struct {
	Level    string         `json:"level"`
	Days     []DailyWorkout `json:"days"`
	RestDays []string       `json:"rest_days"`
}

// WeeklyPlan builds a seven-day split: every training day draws from the
// level-filtered catalog with that day's focus as the target area, so upper,
// lower, cardio and core days pull different exercises.
func (c *ExerciseCatalog) WeeklyPlan(level, targetArea string, perDay int) WeeklyWorkout {
	if perDay <= 0 {
		perDay = 6
	}

	week := WeeklyWorkout{Level: NormalizeLevel(level)}
	for _, f := range weekFocus(targetArea) {
		day := DailyWorkout{Day: f.Day, Focus: f.Focus, Rest: f.Rest}
		if f.Rest {
			week.RestDays = append(week.RestDays, f.Day)
		} else {
			day.Exercises = c.Plan(level, f.area, perDay)
		}
		week.Days = append(week.Days, day)
	}
	return week
}
