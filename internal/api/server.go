// Package api serves the REST surface of the meal plan server and mounts
// the MCP streamable handler on the same router.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/fitplate-app/mealplan-server/internal/activity"
	"github.com/fitplate-app/mealplan-server/internal/auth"
	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/chat"
	"github.com/fitplate-app/mealplan-server/internal/config"
	"github.com/fitplate-app/mealplan-server/internal/engine"
	"github.com/fitplate-app/mealplan-server/internal/profile"
)

// Server wires the engine, datasets and stores into a gin router.
type Server struct {
	config    *config.Config
	engine    *engine.Engine
	foods     *catalog.Catalog
	diseases  *catalog.DiseaseTable
	exercises *activity.ExerciseCatalog
	yoga      *activity.YogaCatalog
	chat      *chat.Responder
	profiles  profile.Store
	auth      *auth.Guard
	mcp       http.Handler
	log       *slog.Logger
}

// Deps carries everything a Server needs. All fields are required except
// MCPHandler, which may be nil to skip mounting /mcp.
type Deps struct {
	Config     *config.Config
	Engine     *engine.Engine
	Foods      *catalog.Catalog
	Diseases   *catalog.DiseaseTable
	Exercises  *activity.ExerciseCatalog
	Yoga       *activity.YogaCatalog
	Profiles   profile.Store
	MCPHandler http.Handler
	Logger     *slog.Logger
}

// New creates a server from its dependencies.
func New(d Deps) *Server {
	return &Server{
		config:    d.Config,
		engine:    d.Engine,
		foods:     d.Foods,
		diseases:  d.Diseases,
		exercises: d.Exercises,
		yoga:      d.Yoga,
		chat:      chat.NewResponder(d.Foods, d.Diseases, d.Exercises, d.Yoga),
		profiles:  d.Profiles,
		auth:      auth.NewGuard(d.Config.AuthToken),
		mcp:       d.MCPHandler,
		log:       d.Logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.handleHealth)

	authed := r.Group("/", s.auth.Middleware())
	{
		authed.POST("/api/recommendations", s.handleRecommendations)
		authed.POST("/api/weekly-meal-plan", s.handleWeeklyMealPlan)
		authed.GET("/api/weekly-workout-plan", s.handleWeeklyWorkoutPlan)
		authed.GET("/api/nutrition/:food", s.handleNutrition)
		authed.GET("/api/foods/search", s.handleFoodSearch)
		authed.GET("/api/diseases/recommendations", s.handleDiseaseRecommendations)
		authed.GET("/api/exercises", s.handleExercises)
		authed.GET("/api/yoga", s.handleYoga)
		authed.POST("/api/chat", s.handleChat)
		authed.GET("/api/profile/:id", s.handleGetProfile)
		authed.PUT("/api/profile/:id", s.handlePutProfile)

		if s.mcp != nil {
			authed.Any("/mcp", gin.WrapH(s.mcp))
		}
	}

	return r
}

// Start runs the HTTP server until SIGINT/SIGTERM or context cancellation,
// then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    ":" + s.config.Port,
		Handler: s.Router(),
	}

	go func() {
		s.log.Info("HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			s.log.Error("HTTP server error", "error", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.log.Error("Server shutdown error", "error", err)
	}

	if s.profiles != nil {
		if err := s.profiles.Close(); err != nil {
			s.log.Error("Profile store close error", "error", err)
		}
	}

	s.log.Info("Server stopped")
	return nil
}
