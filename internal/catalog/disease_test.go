package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDiseaseTable() *DiseaseTable {
	return NewDiseaseTable([]DiseaseRule{
		{Disease: "Diabetes", Food: "Bitter Gourd", Recommendation: "Consume"},
		{Disease: "Diabetes", Food: "Oats", Recommendation: "consume"},
		{Disease: "Diabetes", Food: "Sugar", Recommendation: "Avoid"},
		{Disease: "High Cholesterol", Food: "Oats", Recommendation: "consume"},
		{Disease: "High Cholesterol", Food: "Fried Snacks", Recommendation: "avoid"},
		{Disease: "Hypertension", Food: "Banana", Recommendation: "consume"},
	})
}

func TestDiseaseTableLookup(t *testing.T) {
	table := testDiseaseTable()

	t.Run("exact disease match", func(t *testing.T) {
		recs := table.Lookup([]string{"diabetes"})
		assert.Equal(t, []string{"Bitter Gourd", "Oats"}, recs.Consume)
		assert.Equal(t, []string{"Sugar"}, recs.Avoid)
	})

	t.Run("partial match in either direction", func(t *testing.T) {
		// Query broader than the stored name.
		recs := table.Lookup([]string{"type 2 diabetes"})
		assert.Contains(t, recs.Avoid, "Sugar")

		// Query narrower than the stored name.
		recs = table.Lookup([]string{"cholesterol"})
		assert.Equal(t, []string{"Oats"}, recs.Consume)
		assert.Equal(t, []string{"Fried Snacks"}, recs.Avoid)
	})

	t.Run("multiple diseases dedupe shared foods", func(t *testing.T) {
		recs := table.Lookup([]string{"diabetes", "cholesterol"})
		assert.Equal(t, []string{"Bitter Gourd", "Oats"}, recs.Consume)
		assert.Equal(t, []string{"Sugar", "Fried Snacks"}, recs.Avoid)
	})

	t.Run("unknown disease returns empty lists", func(t *testing.T) {
		recs := table.Lookup([]string{"gout"})
		assert.Empty(t, recs.Consume)
		assert.Empty(t, recs.Avoid)
	})

	t.Run("blank entries are skipped", func(t *testing.T) {
		recs := table.Lookup([]string{"", "  ", "hypertension"})
		assert.Equal(t, []string{"Banana"}, recs.Consume)
	})
}

func TestNewDiseaseTable(t *testing.T) {
	table := NewDiseaseTable([]DiseaseRule{
		{Disease: "  Diabetes ", Food: " Oats ", Recommendation: " CONSUME "},
		{Disease: "", Food: "Sugar", Recommendation: "avoid"},
		{Disease: "diabetes", Food: "", Recommendation: "avoid"},
	})

	require.Equal(t, 1, table.Len())
	recs := table.Lookup([]string{"diabetes"})
	assert.Equal(t, []string{"Oats"}, recs.Consume)
}
