package engine

import (
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
)

// allergySynonyms expands a declared allergen into the catalog name terms it
// should exclude. Unknown allergens pass through verbatim.
var allergySynonyms = map[string][]string{
	"milk":    {"milk", "paneer", "curd", "yogurt", "kheer", "payasam", "malai", "cheese", "butter", "ghee", "lassi"},
	"fish":    {"fish", "machli", "seafood", "prawn", "shrimp", "tuna", "salmon"},
	"banana":  {"banana", "plantain"},
	"egg":     {"egg", "anda", "omelette", "omelet", "scrambled", "fried egg", "boiled egg", "poached"},
	"eggs":    {"egg", "anda", "omelette", "omelet", "scrambled", "fried egg", "boiled egg", "poached"},
	"chicken": {"chicken", "murgh"},
	"meat":    {"meat", "mutton", "lamb", "beef"},
	"mutton":  {"meat", "mutton", "lamb", "beef"},
}

// ExpandAllergies maps the declared allergens to the full lowercase term
// list used for name exclusion.
func ExpandAllergies(allergies []string) []string {
	var out []string
	for _, a := range allergies {
		key := strings.ToLower(strings.TrimSpace(a))
		if key == "" {
			continue
		}
		if syns, ok := allergySynonyms[key]; ok {
			out = append(out, syns...)
			continue
		}
		out = append(out, key)
	}
	return out
}

// FilterDietType drops foods a vegetarian or vegan cannot eat. Non-vegetarian
// profiles get the full catalog back.
func FilterDietType(foods []catalog.FoodItem, dietType string) []catalog.FoodItem {
	var exclude catalog.Tag
	switch strings.ToLower(strings.TrimSpace(dietType)) {
	case "vegetarian", "veg":
		exclude = catalog.TagNonVeg
	case "vegan":
		exclude = catalog.TagNonVeg | catalog.TagDairy
	default:
		return foods
	}

	out := make([]catalog.FoodItem, 0, len(foods))
	for _, f := range foods {
		if f.Tags.HasAny(exclude) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterAllergens drops foods whose name contains any expanded allergen term.
func FilterAllergens(foods []catalog.FoodItem, terms []string) []catalog.FoodItem {
	if len(terms) == 0 {
		return foods
	}
	out := make([]catalog.FoodItem, 0, len(foods))
	for _, f := range foods {
		if nameMatchesAny(&f, terms) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterUsed drops foods already picked for the current plan, by exact
// case-insensitive name match.
func FilterUsed(foods []catalog.FoodItem, used []string) []catalog.FoodItem {
	if len(used) == 0 {
		return foods
	}
	usedSet := make(map[string]bool, len(used))
	for _, u := range used {
		usedSet[strings.ToLower(u)] = true
	}
	out := make([]catalog.FoodItem, 0, len(foods))
	for _, f := range foods {
		if usedSet[f.NameLower()] {
			continue
		}
		out = append(out, f)
	}
	return out
}

// FilterMealCategories drops desserts, processed foods and legume dishes.
// Applied for main meals and snacks, never for raw catalog scans.
func FilterMealCategories(foods []catalog.FoodItem) []catalog.FoodItem {
	const exclude = catalog.TagDessert | catalog.TagProcessed | catalog.TagLegume
	out := make([]catalog.FoodItem, 0, len(foods))
	for _, f := range foods {
		if f.Tags.HasAny(exclude) {
			continue
		}
		out = append(out, f)
	}
	return out
}

func nameMatchesAny(f *catalog.FoodItem, terms []string) bool {
	for _, t := range terms {
		if t != "" && strings.Contains(f.NameLower(), t) {
			return true
		}
	}
	return false
}
