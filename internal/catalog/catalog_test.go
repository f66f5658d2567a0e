package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("trims names and indexes case-insensitively", func(t *testing.T) {
		c := New([]FoodItem{
			{Name: "  Masala Dosa  ", Calories: 168},
			{Name: "", Calories: 100},
		})

		require.Equal(t, 1, c.Len())
		item, ok := c.Lookup("masala dosa")
		require.True(t, ok)
		assert.Equal(t, "Masala Dosa", item.Name)
		assert.Equal(t, "masala dosa", item.NameLower())
	})

	t.Run("later duplicate replaces earlier entry", func(t *testing.T) {
		c := New([]FoodItem{
			{Name: "Idli", Calories: 100},
			{Name: "idli", Calories: 130},
		})

		require.Equal(t, 1, c.Len())
		item, ok := c.Lookup("Idli")
		require.True(t, ok)
		assert.Equal(t, 130.0, item.Calories)
	})

	t.Run("computes tags at build time", func(t *testing.T) {
		c := New([]FoodItem{{Name: "Chicken Curry", Calories: 180, Protein: 15}})

		item, ok := c.Lookup("chicken curry")
		require.True(t, ok)
		assert.True(t, item.Tags.Has(TagNonVeg))
		assert.True(t, item.Tags.Has(TagHighProtein))
		assert.True(t, item.Tags.Has(TagRiceOrCurry))
	})
}

func TestLookup(t *testing.T) {
	c := Fallback()

	t.Run("found", func(t *testing.T) {
		item, ok := c.Lookup("  DAL ")
		require.True(t, ok)
		assert.Equal(t, "Dal", item.Name)
	})

	t.Run("not found", func(t *testing.T) {
		_, ok := c.Lookup("quinoa bowl")
		assert.False(t, ok)
	})
}

func TestSearch(t *testing.T) {
	c := Fallback()

	t.Run("substring match is case-insensitive", func(t *testing.T) {
		results := c.Search("MOONG", 0)
		require.Len(t, results, 1)
		assert.Equal(t, "Sprouted Moong Salad", results[0].Name)
	})

	t.Run("limit caps results", func(t *testing.T) {
		all := c.Search("a", 0)
		require.Greater(t, len(all), 2)
		assert.Len(t, c.Search("a", 2), 2)
	})

	t.Run("blank query returns nothing", func(t *testing.T) {
		assert.Nil(t, c.Search("   ", 0))
	})
}

func TestEnergyDensity(t *testing.T) {
	tests := []struct {
		name     string
		calories float64
		want     float64
	}{
		{name: "normal value", calories: 130, want: 130},
		{name: "zero falls back", calories: 0, want: FallbackDensity},
		{name: "negative falls back", calories: -5, want: FallbackDensity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FoodItem{Name: "x", Calories: tt.calories}
			assert.Equal(t, tt.want, f.EnergyDensity())
		})
	}
}

func TestFallback(t *testing.T) {
	c := Fallback()

	require.Equal(t, 10, c.Len())

	// The fallback must cover every slot the planner fills: staples for
	// main meals, snack staples, a salad and a protein source.
	var hasStapleMeal, hasStapleSnack, hasSalad, hasHighProtein bool
	for _, f := range c.Foods() {
		hasStapleMeal = hasStapleMeal || f.Tags.Has(TagStapleMeal)
		hasStapleSnack = hasStapleSnack || f.Tags.Has(TagStapleSnack)
		hasSalad = hasSalad || f.Tags.Has(TagSaladDish)
		hasHighProtein = hasHighProtein || f.Tags.Has(TagHighProtein)
	}
	assert.True(t, hasStapleMeal)
	assert.True(t, hasStapleSnack)
	assert.True(t, hasSalad)
	assert.True(t, hasHighProtein)
}
