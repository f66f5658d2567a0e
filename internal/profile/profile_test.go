package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithReportExtract(t *testing.T) {
	p := UserProfile{
		Diseases:   []string{"Diabetes"},
		AvoidFoods: []string{"sugar"},
	}

	merged := p.WithReportExtract(ReportExtract{
		Diseases: []string{"diabetes", "Hypertension"},
		Avoid:    []string{"Sugar", "pickle"},
	})

	assert.Equal(t, []string{"Diabetes", "Hypertension"}, merged.Diseases)
	assert.Equal(t, []string{"sugar", "pickle"}, merged.AvoidFoods)

	// Original untouched.
	assert.Equal(t, []string{"Diabetes"}, p.Diseases)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	t.Cleanup(func() { _ = store.Close() })

	t.Run("get missing returns nil", func(t *testing.T) {
		p, err := store.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("save assigns an id and roundtrips", func(t *testing.T) {
		p := &UserProfile{
			HeightCm:        170,
			WeightKg:        70,
			AgeYears:        30,
			DietType:        "vegetarian",
			Diseases:        []string{"diabetes"},
			MealPreferences: map[string]string{"breakfast": "idli"},
		}
		require.NoError(t, store.Save(ctx, p))
		require.NotEmpty(t, p.ID)

		got, err := store.Get(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, *p, *got)
	})

	t.Run("save with id updates in place", func(t *testing.T) {
		p := &UserProfile{ID: "fixed", WeightKg: 70}
		require.NoError(t, store.Save(ctx, p))
		p.WeightKg = 72
		require.NoError(t, store.Save(ctx, p))

		got, err := store.Get(ctx, "fixed")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, 72.0, got.WeightKg)
	})

	t.Run("stored copy is isolated from the caller", func(t *testing.T) {
		p := &UserProfile{ID: "iso", Motive: "weight loss"}
		require.NoError(t, store.Save(ctx, p))
		p.Motive = "mutated"

		got, err := store.Get(ctx, "iso")
		require.NoError(t, err)
		assert.Equal(t, "weight loss", got.Motive)
	})
}
