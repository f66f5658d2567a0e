package catalog

import (
	"context"
	"log/slog"
	"strings"

	"github.com/fitplate-app/mealplan-server/internal/dataset"
)

// DiseaseRule is one row of the disease-food reference table: a food that
// people with the given condition should consume or avoid.
type DiseaseRule struct {
	Disease        string
	Food           string
	Recommendation string // "consume" or "avoid"
}

// Recommendations holds the consume/avoid food lists for a set of diseases.
// The engine applies them as scoring boosts and penalties, never as hard
// filters.
type Recommendations struct {
	Consume []string `json:"consume"`
	Avoid   []string `json:"avoid"`
}

// DiseaseTable is the immutable disease-food reference table.
type DiseaseTable struct {
	rules []DiseaseRule
}

// NewDiseaseTable builds a table from the given rules.
func NewDiseaseTable(rules []DiseaseRule) *DiseaseTable {
	normalized := make([]DiseaseRule, 0, len(rules))
	for _, r := range rules {
		r.Disease = strings.ToLower(strings.TrimSpace(r.Disease))
		r.Food = strings.TrimSpace(r.Food)
		r.Recommendation = strings.ToLower(strings.TrimSpace(r.Recommendation))
		if r.Disease == "" || r.Food == "" {
			continue
		}
		normalized = append(normalized, r)
	}
	return &DiseaseTable{rules: normalized}
}

// Len returns the number of rules in the table.
func (t *DiseaseTable) Len() int {
	return len(t.rules)
}

// Lookup returns the merged consume/avoid lists for the given diseases.
// Disease names match case-insensitively on substrings, so "type 2 diabetes"
// matches a "diabetes" row and vice versa.
func (t *DiseaseTable) Lookup(diseases []string) Recommendations {
	recs := Recommendations{}
	seenConsume := map[string]bool{}
	seenAvoid := map[string]bool{}
	for _, disease := range diseases {
		d := strings.ToLower(strings.TrimSpace(disease))
		if d == "" {
			continue
		}
		for _, rule := range t.rules {
			if !strings.Contains(rule.Disease, d) && !strings.Contains(d, rule.Disease) {
				continue
			}
			key := strings.ToLower(rule.Food)
			switch rule.Recommendation {
			case "consume":
				if !seenConsume[key] {
					seenConsume[key] = true
					recs.Consume = append(recs.Consume, rule.Food)
				}
			case "avoid":
				if !seenAvoid[key] {
					seenAvoid[key] = true
					recs.Avoid = append(recs.Avoid, rule.Food)
				}
			}
		}
	}
	return recs
}

// LoadDiseaseTable reads the disease-food reference CSV. Load failures
// degrade to a small built-in table.
func LoadDiseaseTable(ctx context.Context, path string, logger *slog.Logger) *DiseaseTable {
	rows, err := dataset.ReadCSV(ctx, path)
	if err != nil || len(rows) == 0 {
		logger.Warn("Disease dataset unavailable, using built-in fallback table", "path", path, "error", err)
		return fallbackDiseaseTable()
	}

	rules := make([]DiseaseRule, 0, len(rows))
	for _, row := range rows {
		rules = append(rules, DiseaseRule{
			Disease:        dataset.String(row, "disease"),
			Food:           dataset.String(row, "food item", "food"),
			Recommendation: dataset.String(row, "recommendation type", "recommendation"),
		})
	}

	table := NewDiseaseTable(rules)
	logger.Info("Disease reference table loaded", "path", path, "rules", table.Len())
	return table
}

func fallbackDiseaseTable() *DiseaseTable {
	return NewDiseaseTable([]DiseaseRule{
		{Disease: "diabetes", Food: "bitter gourd", Recommendation: "consume"},
		{Disease: "diabetes", Food: "oats", Recommendation: "consume"},
		{Disease: "diabetes", Food: "sugar", Recommendation: "avoid"},
		{Disease: "cholesterol", Food: "oats", Recommendation: "consume"},
		{Disease: "cholesterol", Food: "fried", Recommendation: "avoid"},
		{Disease: "hypertension", Food: "banana", Recommendation: "consume"},
		{Disease: "hypertension", Food: "pickle", Recommendation: "avoid"},
	})
}
