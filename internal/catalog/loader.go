package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fitplate-app/mealplan-server/internal/dataset"
)

// Load reads the food nutrition CSV and builds the catalog. Any load failure
// or an empty file degrades to the built-in fallback table with a warning
// rather than failing startup. The one hard error is a file that parses but
// has no recognizable food-name column.
func Load(ctx context.Context, path string, logger *slog.Logger) (*Catalog, error) {
	rows, err := dataset.ReadCSV(ctx, path)
	if err != nil {
		logger.Warn("Food dataset unavailable, using built-in fallback table", "path", path, "error", err)
		return Fallback(), nil
	}
	if len(rows) == 0 {
		logger.Warn("Food dataset is empty, using built-in fallback table", "path", path)
		return Fallback(), nil
	}

	items := make([]FoodItem, 0, len(rows))
	for _, row := range rows {
		name := dataset.String(row, "dish name", "food", "food item", "name")
		if name == "" {
			continue
		}
		items = append(items, FoodItem{
			Name:     name,
			Calories: dataset.Float(row, "calories (kcal)", "calories", "cal", "kcal"),
			Protein:  dataset.Float(row, "protein (g)", "protein"),
			Carbs:    dataset.Float(row, "carbohydrates (g)", "carbs (g)", "carbs"),
			Fat:      dataset.Float(row, "fats (g)", "fat (g)", "fat"),
		})
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("food dataset %s has no recognizable food-name column", path)
	}

	cat := New(items)
	logger.Info("Food catalog loaded", "path", path, "foods", cat.Len())
	return cat, nil
}
