package catalog

import "strings"

// Tag is a bitmask of food categories. All tags are derived from the food
// name (and protein content, for TagHighProtein) once at catalog load time.
type Tag uint32

const (
	// TagNonVeg marks meat, fish and egg dishes excluded for vegetarians.
	TagNonVeg Tag = 1 << iota
	// TagDairy marks milk-based dishes, additionally excluded for vegans.
	TagDairy
	// TagHighProtein marks recognized protein sources, by keyword or by
	// protein content above 8g/100g.
	TagHighProtein
	// TagFruit marks fruit dishes.
	TagFruit
	// TagSweet marks sweets for scoring penalties.
	TagSweet
	// TagDessert marks the wider dessert list hard-excluded from main meals
	// and snacks.
	TagDessert
	// TagProcessed marks processed foods excluded from main meals and snacks.
	TagProcessed
	// TagLegume marks the bean dishes excluded from staple-meal contexts.
	TagLegume
	// TagNonMealItem marks condiments and ingredients (chutneys, spices,
	// oils) that should never headline a meal.
	TagNonMealItem
	// TagSalad marks salad and raw vegetable dishes for scoring boosts.
	TagSalad
	// TagSaladDish marks dishes that already are a salad, so the planner
	// does not attach a side salad to them.
	TagSaladDish
	// TagSnackStaple marks light staples boosted in snack slots.
	TagSnackStaple
	// TagStapleMeal marks the fallback staples for main-meal slots.
	TagStapleMeal
	// TagStapleSnack marks the fallback staples for snack slots.
	TagStapleSnack
	// TagRiceOrCurry marks rice, curry and dal dishes for pairing notes.
	TagRiceOrCurry
)

// Has reports whether all bits of t2 are set on t.
func (t Tag) Has(t2 Tag) bool {
	return t&t2 == t2
}

// HasAny reports whether any bit of t2 is set on t.
func (t Tag) HasAny(t2 Tag) bool {
	return t&t2 != 0
}

// highProteinThreshold flags foods as protein sources by content alone.
const highProteinThreshold = 8.0

var (
	nonVegKeywords = []string{"chicken", "fish", "egg", "meat", "mutton", "prawn", "shrimp"}

	dairyKeywords = []string{"milk", "paneer", "curd", "yogurt", "kheer", "payasam", "malai", "cheese", "butter", "ghee", "lassi"}

	highProteinKeywords = []string{
		"egg", "chicken", "fish", "mutton", "meat", "prawn", "shrimp", "paneer",
		"tofu", "soy", "dal", "lentil", "chana", "moong", "sprouts", "greek yogurt",
		"whey", "milk", "curd", "yogurt", "cheese", "besan", "gram flour", "rajma", "lobiya",
	}

	fruitKeywords = []string{"apple", "banana", "orange", "grape", "mango", "pineapple", "strawberry", "kiwi", "peach", "pear"}

	sweetKeywords = []string{
		"cake", "pie", "jam", "pudding", "sweet", "murabba", "pastry", "tart",
		"souffle", "squash", "crumb", "upside down", "cold", "sandwich", "payasam",
		"kheer", "mousse", "sorbet",
	}

	dessertKeywords = []string{
		"cake", "pie", "jam", "pudding", "sweet", "murabba", "pastry", "tart",
		"souffle", "squash", "crumb", "upside down", "cold", "payasam", "kheer",
		"mousse", "sorbet", "cream", "custard", "jelly", "snowball", "ice cream",
		"falooda", "kulfi", "rabri", "halwa",
	}

	processedKeywords = []string{"sandwich", "pasta", "macaroni", "noodles", "burger", "pizza", "puffs", "samosa"}

	legumeKeywords = []string{"beans", "bean", "sem", "phali", "foogath", "thoran", "green beans", "rajmah", "rajma", "lobia"}

	nonMealKeywords = []string{
		"chutney", "spice", "powder", "blend", "masala", "sauce", "pickle",
		"jam", "jelly", "butter", "oil", "ghee", "murabba",
	}

	saladKeywords = []string{"salad", "raw", "fresh", "greens", "lettuce", "cucumber", "tomato", "carrot", "beetroot", "sprouts"}

	saladDishKeywords = []string{"salad", "raw", "fresh", "greens"}

	snackStapleKeywords = []string{"sprouted moong", "poha", "upma", "chana", "idli", "dosa"}

	stapleMealKeywords = []string{
		"idli", "dosa", "chapati", "roti", "rice", "dal", "sambar", "curry",
		"poha", "upma", "chicken", "egg", "paneer", "fish", "tofu", "sprouts",
	}

	stapleSnackKeywords = []string{"poha", "sprouted moong", "upma", "chana", "idli", "dosa", "eggs", "nuts", "yogurt"}

	riceOrCurryKeywords = []string{"rice", "curry", "dal"}
)

func matchesAny(nameLower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(nameLower, kw) {
			return true
		}
	}
	return false
}

// computeTags derives the full tag bitmask for a food from its lowercase
// name and protein content.
func computeTags(nameLower string, protein float64) Tag {
	var tags Tag
	if matchesAny(nameLower, nonVegKeywords) {
		tags |= TagNonVeg
	}
	if matchesAny(nameLower, dairyKeywords) {
		tags |= TagDairy
	}
	if protein > highProteinThreshold || matchesAny(nameLower, highProteinKeywords) {
		tags |= TagHighProtein
	}
	if matchesAny(nameLower, fruitKeywords) {
		tags |= TagFruit
	}
	if matchesAny(nameLower, sweetKeywords) {
		tags |= TagSweet
	}
	if matchesAny(nameLower, dessertKeywords) {
		tags |= TagDessert
	}
	if matchesAny(nameLower, processedKeywords) {
		tags |= TagProcessed
	}
	if matchesAny(nameLower, legumeKeywords) {
		tags |= TagLegume
	}
	if matchesAny(nameLower, nonMealKeywords) {
		tags |= TagNonMealItem
	}
	if matchesAny(nameLower, saladKeywords) {
		tags |= TagSalad
	}
	if matchesAny(nameLower, saladDishKeywords) {
		tags |= TagSaladDish
	}
	if matchesAny(nameLower, snackStapleKeywords) {
		tags |= TagSnackStaple
	}
	if matchesAny(nameLower, stapleMealKeywords) {
		tags |= TagStapleMeal
	}
	if matchesAny(nameLower, stapleSnackKeywords) {
		tags |= TagStapleSnack
	}
	if matchesAny(nameLower, riceOrCurryKeywords) {
		tags |= TagRiceOrCurry
	}
	return tags
}
