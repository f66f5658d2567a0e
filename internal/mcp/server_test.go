package mcp

import (
	"context"
	"io"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/config"
	"github.com/fitplate-app/mealplan-server/internal/engine"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := config.NewTestLogger(io.Discard, "debug")
	foods := catalog.Fallback()
	diseases := catalog.NewDiseaseTable([]catalog.DiseaseRule{
		{Disease: "diabetes", Food: "oats", Recommendation: "consume"},
		{Disease: "diabetes", Food: "sugar", Recommendation: "avoid"},
	})
	eng := engine.New(foods, diseases, 2, logger)
	return NewServer(eng, foods, diseases, logger)
}

func callToolRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func TestHandleFoodNutrition(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	t.Run("exact name lookup", func(t *testing.T) {
		result, err := server.handleFoodNutrition(ctx, callToolRequest("food_nutrition", map[string]any{
			"name": "Idli",
		}))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.False(t, result.IsError)

		response, ok := result.StructuredContent.(FoodNutritionResponse)
		require.True(t, ok)
		assert.True(t, response.Found)
		require.NotNil(t, response.Food)
		assert.Equal(t, "Idli", response.Food.Name)
		assert.InDelta(t, 130, response.Food.Calories, 0.001)
	})

	t.Run("falls back to substring search", func(t *testing.T) {
		result, err := server.handleFoodNutrition(ctx, callToolRequest("food_nutrition", map[string]any{
			"name": "moong",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		response, ok := result.StructuredContent.(FoodNutritionResponse)
		require.True(t, ok)
		assert.True(t, response.Found)
		require.NotNil(t, response.Food)
		assert.Equal(t, "Sprouted Moong Salad", response.Food.Name)
	})

	t.Run("unknown food reports not found", func(t *testing.T) {
		result, err := server.handleFoodNutrition(ctx, callToolRequest("food_nutrition", map[string]any{
			"name": "zzz-no-such-food",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		response, ok := result.StructuredContent.(FoodNutritionResponse)
		require.True(t, ok)
		assert.False(t, response.Found)
		assert.Nil(t, response.Food)
	})

	t.Run("missing name parameter is a tool error", func(t *testing.T) {
		result, err := server.handleFoodNutrition(ctx, callToolRequest("food_nutrition", map[string]any{}))
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.True(t, result.IsError)
	})
}

func TestHandleDiseaseRecommendations(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	t.Run("known disease returns both lists", func(t *testing.T) {
		result, err := server.handleDiseaseRecommendations(ctx, callToolRequest("disease_recommendations", map[string]any{
			"diseases": "diabetes",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		response, ok := result.StructuredContent.(DiseaseRecommendationsResponse)
		require.True(t, ok)
		assert.Equal(t, []string{"oats"}, response.Consume)
		assert.Equal(t, []string{"sugar"}, response.Avoid)
	})

	t.Run("unknown disease returns empty slices not nil", func(t *testing.T) {
		result, err := server.handleDiseaseRecommendations(ctx, callToolRequest("disease_recommendations", map[string]any{
			"diseases": "gout",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError)

		response, ok := result.StructuredContent.(DiseaseRecommendationsResponse)
		require.True(t, ok)
		assert.NotNil(t, response.Consume)
		assert.NotNil(t, response.Avoid)
		assert.Empty(t, response.Consume)
		assert.Empty(t, response.Avoid)
	})

	t.Run("missing diseases parameter is a tool error", func(t *testing.T) {
		result, err := server.handleDiseaseRecommendations(ctx, callToolRequest("disease_recommendations", map[string]any{}))
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}

func TestHandleRecommendMealPlan(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	result, err := server.handleRecommendMealPlan(ctx, callToolRequest("recommend_meal_plan", map[string]any{
		"height_cm": 170.0,
		"weight_kg": 70.0,
		"age":       30.0,
		"gender":    "male",
		"lifestyle": "moderate",
		"motive":    "weight loss",
		"diet_type": "vegetarian",
		"diseases":  "diabetes",
		"allergies": "milk",
		"breakfast": "idli or dosa",
	}))
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)

	set, ok := result.StructuredContent.(engine.PlanSet)
	require.True(t, ok)

	assert.NotEmpty(t, set.ID)
	assert.Greater(t, set.DailyCalories, 0.0)
	assert.Greater(t, set.DailyProteinGrams, 0.0)
	assert.Len(t, set.Main.Meals, 4)
	assert.Len(t, set.Alternatives, 2)
	for _, alt := range set.Alternatives {
		assert.Len(t, alt.Meals, 4)
	}

	// Milk allergy plus vegetarian diet must hold in every plan.
	for _, meal := range set.Main.Meals {
		assert.NotContains(t, meal.FoodName, "Curd")
		assert.NotContains(t, meal.FoodName, "Paneer")
	}
}
