package catalog

import "strings"

// FallbackDensity is the energy density (kcal per 100g) substituted whenever
// a food's calorie value is zero or missing. Serving-size math never divides
// by a true zero.
const FallbackDensity = 200.0

// FoodItem is one row of the food catalog. Macro values are per 100g.
// Tags are computed once at load time so scoring never re-scans names.
type FoodItem struct {
	Name     string  `json:"name"`
	Calories float64 `json:"calories_per_100g"`
	Protein  float64 `json:"protein_per_100g"`
	Carbs    float64 `json:"carbs_per_100g"`
	Fat      float64 `json:"fat_per_100g"`
	Tags     Tag     `json:"-"`

	nameLower string
}

// EnergyDensity returns the calories per 100g, substituting the fallback
// density when the value is zero or missing.
func (f *FoodItem) EnergyDensity() float64 {
	if f.Calories <= 0 {
		return FallbackDensity
	}
	return f.Calories
}

// NameLower returns the cached lowercase name used for substring matching.
func (f *FoodItem) NameLower() string {
	return f.nameLower
}

// NameContains reports whether the food name contains the given term,
// case-insensitively.
func (f *FoodItem) NameContains(term string) bool {
	return strings.Contains(f.nameLower, strings.ToLower(term))
}

// Catalog is an immutable in-memory food table. It is built once at startup
// and safe for unlimited concurrent readers.
type Catalog struct {
	foods  []FoodItem
	byName map[string]int
}

// New builds a catalog from the given items, computing tags and the
// case-insensitive name index. Later duplicates of a name replace earlier
// ones.
func New(items []FoodItem) *Catalog {
	foods := make([]FoodItem, 0, len(items))
	byName := make(map[string]int, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		item.Name = name
		item.nameLower = strings.ToLower(name)
		item.Tags = computeTags(item.nameLower, item.Protein)
		if idx, ok := byName[item.nameLower]; ok {
			foods[idx] = item
			continue
		}
		byName[item.nameLower] = len(foods)
		foods = append(foods, item)
	}
	return &Catalog{foods: foods, byName: byName}
}

// Foods returns the full catalog contents. Callers must not mutate the
// returned slice.
func (c *Catalog) Foods() []FoodItem {
	return c.foods
}

// Len returns the number of foods in the catalog.
func (c *Catalog) Len() int {
	return len(c.foods)
}

// Lookup finds a food by exact name, case-insensitively.
func (c *Catalog) Lookup(name string) (*FoodItem, bool) {
	idx, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, false
	}
	return &c.foods[idx], true
}

// Search returns all foods whose name contains the query, case-insensitively.
func (c *Catalog) Search(query string, limit int) []FoodItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []FoodItem
	for _, f := range c.foods {
		if strings.Contains(f.nameLower, q) {
			out = append(out, f)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
	}
	return out
}

// Fallback returns the built-in catalog used when the dataset file is
// missing, empty, or unreadable. Small but representative enough for the
// engine to always answer something.
func Fallback() *Catalog {
	return New([]FoodItem{
		{Name: "Idli", Calories: 130, Protein: 5, Carbs: 28, Fat: 1},
		{Name: "Dosa", Calories: 168, Protein: 4, Carbs: 25, Fat: 6},
		{Name: "Chapati", Calories: 120, Protein: 4, Carbs: 20, Fat: 2},
		{Name: "Rice", Calories: 130, Protein: 2, Carbs: 28, Fat: 0},
		{Name: "Dal", Calories: 116, Protein: 9, Carbs: 20, Fat: 1},
		{Name: "Poha", Calories: 158, Protein: 3, Carbs: 31, Fat: 2},
		{Name: "Upma", Calories: 155, Protein: 4, Carbs: 26, Fat: 4},
		{Name: "Paneer Bhurji", Calories: 260, Protein: 14, Carbs: 6, Fat: 20},
		{Name: "Sprouted Moong Salad", Calories: 105, Protein: 7, Carbs: 18, Fat: 1},
		{Name: "Curd", Calories: 98, Protein: 4, Carbs: 5, Fat: 6},
	})
}
