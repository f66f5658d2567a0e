package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/engine"
	"github.com/fitplate-app/mealplan-server/internal/profile"
)

// FoodNutritionResponse is the structured response of the food_nutrition tool.
type FoodNutritionResponse struct {
	Found bool              `json:"found"`
	Food  *catalog.FoodItem `json:"food,omitempty"`
}

// DiseaseRecommendationsResponse is the structured response of the
// disease_recommendations tool.
type DiseaseRecommendationsResponse struct {
	Consume []string `json:"consume"`
	Avoid   []string `json:"avoid"`
}

func (s *Server) addTools() {
	recommendTool := mcp.NewTool("recommend_meal_plan",
		mcp.WithDescription("Generate a personalized daily meal plan with alternatives from body metrics, goal, diet type, diseases and allergies."),
		mcp.WithNumber("height_cm", mcp.Description("Height in centimeters")),
		mcp.WithNumber("weight_kg", mcp.Description("Weight in kilograms")),
		mcp.WithNumber("age", mcp.Description("Age in years")),
		mcp.WithString("gender", mcp.Description("Gender: male, female or other")),
		mcp.WithString("lifestyle", mcp.Description("Activity level: sedentary, light, moderate, active or very active")),
		mcp.WithString("motive", mcp.Description("Goal, matched by substring: weight loss, muscle gain, fitness")),
		mcp.WithString("diet_type", mcp.Description("Diet type: vegetarian, vegan or non-vegetarian")),
		mcp.WithString("diseases", mcp.Description("Comma-separated disease names")),
		mcp.WithString("allergies", mcp.Description("Comma-separated allergens")),
		mcp.WithString("breakfast", mcp.Description("Free-text breakfast preference")),
		mcp.WithString("lunch", mcp.Description("Free-text lunch preference")),
		mcp.WithString("snacks", mcp.Description("Free-text snack preference")),
		mcp.WithString("dinner", mcp.Description("Free-text dinner preference")),
		mcp.WithOutputSchema[engine.PlanSet](),
		mcp.WithIdempotentHintAnnotation(true),
	)
	s.mcpServer.AddTool(recommendTool, s.handleRecommendMealPlan)

	nutritionTool := mcp.NewTool("food_nutrition",
		mcp.WithDescription("Look up per-100g calories and macros for a food by name."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Food name to look up. Required and must be a non-empty string."),
		),
		mcp.WithOutputSchema[FoodNutritionResponse](),
		mcp.WithIdempotentHintAnnotation(true),
	)
	s.mcpServer.AddTool(nutritionTool, s.handleFoodNutrition)

	diseaseTool := mcp.NewTool("disease_recommendations",
		mcp.WithDescription("Get consume and avoid food lists for the given diseases."),
		mcp.WithString("diseases",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Comma-separated disease names. Required and must be a non-empty string."),
		),
		mcp.WithOutputSchema[DiseaseRecommendationsResponse](),
		mcp.WithIdempotentHintAnnotation(true),
	)
	s.mcpServer.AddTool(diseaseTool, s.handleDiseaseRecommendations)
}

func (s *Server) handleRecommendMealPlan(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.log.Debug("handleRecommendMealPlan: Starting tool call", "arguments", request.GetArguments())

	p := profile.UserProfile{
		HeightCm:  request.GetFloat("height_cm", 0),
		WeightKg:  request.GetFloat("weight_kg", 0),
		AgeYears:  int(request.GetFloat("age", 0)),
		Gender:    request.GetString("gender", ""),
		Lifestyle: request.GetString("lifestyle", ""),
		Motive:    request.GetString("motive", ""),
		DietType:  request.GetString("diet_type", ""),
		Diseases:  splitList(request.GetString("diseases", "")),
		Allergies: splitList(request.GetString("allergies", "")),
		MealPreferences: map[string]string{
			engine.SlotBreakfast: request.GetString("breakfast", ""),
			engine.SlotLunch:     request.GetString("lunch", ""),
			engine.SlotSnacks:    request.GetString("snacks", ""),
			engine.SlotDinner:    request.GetString("dinner", ""),
		},
	}

	set := s.engine.Recommend(p)
	return structuredResult(s, set)
}

func (s *Server) handleFoodNutrition(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		s.log.Warn("handleFoodNutrition: Missing 'name' parameter", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Missing required parameter 'name': %v", err)), nil
	}

	response := FoodNutritionResponse{}
	if item, ok := s.foods.Lookup(name); ok {
		response.Found = true
		response.Food = item
	} else if matches := s.foods.Search(name, 1); len(matches) > 0 {
		response.Found = true
		response.Food = &matches[0]
	}

	return structuredResult(s, response)
}

func (s *Server) handleDiseaseRecommendations(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	diseases, err := request.RequireString("diseases")
	if err != nil {
		s.log.Warn("handleDiseaseRecommendations: Missing 'diseases' parameter", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Missing required parameter 'diseases': %v", err)), nil
	}

	recs := s.diseases.Lookup(splitList(diseases))
	response := DiseaseRecommendationsResponse{
		Consume: emptyIfNil(recs.Consume),
		Avoid:   emptyIfNil(recs.Avoid),
	}
	return structuredResult(s, response)
}

// structuredResult returns both structured content and a JSON text fallback
// for maximum client compatibility.
func structuredResult(s *Server, response any) (*mcp.CallToolResult, error) {
	responseJSON, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		s.log.Error("Failed to marshal tool response", "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultStructured(response, string(responseJSON)), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
