package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fitplate-app/mealplan-server/internal/profile"
)

const (
	defaultSearchLimit = 20
	defaultPlanCount   = 8
)

func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"foods":     s.foods.Len(),
		"diseases":  s.diseases.Len(),
		"exercises": s.exercises.Len(),
		"yoga":      s.yoga.Len(),
	})
}

// recommendationRequest is either an inline profile or a reference to a
// stored one. Inline fields win over the stored profile's.
type recommendationRequest struct {
	ProfileID string `json:"profile_id"`
	profile.UserProfile
	Report *profile.ReportExtract `json:"report,omitempty"`
}

// resolveProfile binds the request body and resolves it against the stored
// profile and the optional report extract. On failure the error response is
// already written and ok is false.
func (s *Server) resolveProfile(c *gin.Context) (p profile.UserProfile, ok bool) {
	var req recommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return p, false
	}

	p = req.UserProfile
	if req.ProfileID != "" {
		stored, err := s.profiles.Get(c.Request.Context(), req.ProfileID)
		if err != nil {
			s.log.Error("Profile lookup failed", "id", req.ProfileID, "error", err)
			apiError(c, http.StatusInternalServerError, "failed to load profile")
			return p, false
		}
		if stored == nil {
			apiError(c, http.StatusNotFound, "profile not found")
			return p, false
		}
		p = mergeProfiles(*stored, req.UserProfile)
	}

	if req.Report != nil {
		p = p.WithReportExtract(*req.Report)
	}
	return p, true
}

func (s *Server) handleRecommendations(c *gin.Context) {
	p, ok := s.resolveProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.engine.Recommend(p))
}

func (s *Server) handleWeeklyMealPlan(c *gin.Context) {
	p, ok := s.resolveProfile(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.engine.RecommendWeek(p))
}

// mergeProfiles overlays the non-zero fields of override on base.
func mergeProfiles(base, override profile.UserProfile) profile.UserProfile {
	if override.HeightCm > 0 {
		base.HeightCm = override.HeightCm
	}
	if override.WeightKg > 0 {
		base.WeightKg = override.WeightKg
	}
	if override.AgeYears > 0 {
		base.AgeYears = override.AgeYears
	}
	if override.Gender != "" {
		base.Gender = override.Gender
	}
	if override.Lifestyle != "" {
		base.Lifestyle = override.Lifestyle
	}
	if override.Motive != "" {
		base.Motive = override.Motive
	}
	if override.DietType != "" {
		base.DietType = override.DietType
	}
	if len(override.Diseases) > 0 {
		base.Diseases = override.Diseases
	}
	if len(override.Allergies) > 0 {
		base.Allergies = override.Allergies
	}
	if len(override.MealPreferences) > 0 {
		base.MealPreferences = override.MealPreferences
	}
	if len(override.AvoidFoods) > 0 {
		base.AvoidFoods = override.AvoidFoods
	}
	if override.Level != "" {
		base.Level = override.Level
	}
	if override.TargetArea != "" {
		base.TargetArea = override.TargetArea
	}
	if override.WaterLiters > 0 {
		base.WaterLiters = override.WaterLiters
	}
	return base
}

func (s *Server) handleNutrition(c *gin.Context) {
	name := c.Param("food")
	if item, ok := s.foods.Lookup(name); ok {
		c.JSON(http.StatusOK, item)
		return
	}
	if matches := s.foods.Search(name, 1); len(matches) > 0 {
		c.JSON(http.StatusOK, matches[0])
		return
	}
	apiError(c, http.StatusNotFound, "food not found")
}

func (s *Server) handleFoodSearch(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		apiError(c, http.StatusBadRequest, "query parameter 'q' is required")
		return
	}

	limit := defaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	c.JSON(http.StatusOK, gin.H{"foods": s.foods.Search(q, limit)})
}

func (s *Server) handleDiseaseRecommendations(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("d"))
	if raw == "" {
		apiError(c, http.StatusBadRequest, "query parameter 'd' is required")
		return
	}

	var diseases []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			diseases = append(diseases, t)
		}
	}

	c.JSON(http.StatusOK, s.diseases.Lookup(diseases))
}

func (s *Server) handleExercises(c *gin.Context) {
	count := defaultPlanCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiError(c, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}

	plan := s.exercises.Plan(c.Query("level"), c.Query("target_area"), count)
	c.JSON(http.StatusOK, gin.H{"exercises": plan})
}

func (s *Server) handleWeeklyWorkoutPlan(c *gin.Context) {
	perDay := 0
	if raw := c.Query("per_day"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiError(c, http.StatusBadRequest, "invalid per_day")
			return
		}
		perDay = parsed
	}

	week := s.exercises.WeeklyPlan(c.Query("level"), c.Query("target_area"), perDay)
	c.JSON(http.StatusOK, week)
}

func (s *Server) handleYoga(c *gin.Context) {
	count := defaultPlanCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			apiError(c, http.StatusBadRequest, "invalid count")
			return
		}
		count = parsed
	}

	plan := s.yoga.Plan(c.Query("level"), c.Query("target_area"), count)
	c.JSON(http.StatusOK, gin.H{"poses": plan})
}

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	answer := s.chat.Answer(req.Message)
	c.JSON(http.StatusOK, gin.H{
		"answer":  answer,
		"matched": answer != "",
	})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	id := c.Param("id")
	p, err := s.profiles.Get(c.Request.Context(), id)
	if err != nil {
		s.log.Error("Profile lookup failed", "id", id, "error", err)
		apiError(c, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if p == nil {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handlePutProfile(c *gin.Context) {
	var p profile.UserProfile
	if err := c.ShouldBindJSON(&p); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	p.ID = c.Param("id")
	if err := s.profiles.Save(c.Request.Context(), &p); err != nil {
		s.log.Error("Profile save failed", "id", p.ID, "error", err)
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}
	c.JSON(http.StatusOK, p)
}
