package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTags(t *testing.T) {
	tests := []struct {
		name     string
		food     string
		protein  float64
		want     Tag
		wantNot  Tag
	}{
		{
			name:    "plain rice",
			food:    "steamed rice",
			want:    TagStapleMeal | TagRiceOrCurry,
			wantNot: TagNonVeg | TagHighProtein,
		},
		{
			name: "chicken curry is non-veg and high protein by keyword",
			food: "chicken curry",
			want: TagNonVeg | TagHighProtein | TagRiceOrCurry | TagStapleMeal,
		},
		{
			name:    "paneer is dairy not non-veg",
			food:    "paneer bhurji",
			want:    TagDairy | TagHighProtein,
			wantNot: TagNonVeg,
		},
		{
			name:    "protein content alone crosses the high-protein threshold",
			food:    "mystery bowl",
			protein: 8.5,
			want:    TagHighProtein,
		},
		{
			name:    "protein at the threshold does not qualify",
			food:    "mystery bowl",
			protein: 8.0,
			wantNot: TagHighProtein,
		},
		{
			name: "kheer is sweet, dessert and dairy",
			food: "rice kheer",
			want: TagSweet | TagDessert | TagDairy,
		},
		{
			name:    "ice cream is dessert but not in the sweet scoring list",
			food:    "vanilla ice cream",
			want:    TagDessert,
			wantNot: TagSweet,
		},
		{
			name:    "sandwich is sweet-listed and processed but not dessert",
			food:    "veg sandwich",
			want:    TagSweet | TagProcessed,
			wantNot: TagDessert,
		},
		{
			name: "chutney is a non-meal item",
			food: "coconut chutney",
			want: TagNonMealItem,
		},
		{
			name:    "carrot counts as salad but not a salad dish",
			food:    "carrot sabzi",
			want:    TagSalad,
			wantNot: TagSaladDish,
		},
		{
			name: "sprouts salad is both salad flavors",
			food: "sprouts salad",
			want: TagSalad | TagSaladDish | TagHighProtein,
		},
		{
			name: "poha is a snack staple on both staple lists",
			food: "poha",
			want: TagSnackStaple | TagStapleMeal | TagStapleSnack,
		},
		{
			name: "rajma is legume and high protein",
			food: "rajma masala",
			want: TagLegume | TagHighProtein | TagNonMealItem,
		},
		{
			name: "banana is fruit",
			food: "banana",
			want: TagFruit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeTags(tt.food, tt.protein)
			assert.True(t, got.Has(tt.want), "expected tags %b set in %b", tt.want, got)
			if tt.wantNot != 0 {
				assert.False(t, got.HasAny(tt.wantNot), "expected tags %b clear in %b", tt.wantNot, got)
			}
		})
	}
}

func TestTagHasAny(t *testing.T) {
	tags := TagNonVeg | TagHighProtein

	assert.True(t, tags.HasAny(TagNonVeg|TagDairy))
	assert.False(t, tags.HasAny(TagDairy|TagFruit))
	assert.True(t, tags.Has(TagNonVeg|TagHighProtein))
	assert.False(t, tags.Has(TagNonVeg|TagDairy))
}
