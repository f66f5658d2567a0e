package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the meal plan server
type Config struct {
	// Auth
	AuthToken string

	// Dataset config
	DataDir         string
	FoodCSVPath     string
	DiseaseCSVPath  string
	ExerciseCSVPath string
	YogaCSVPath     string

	// Optional remote source for the food dataset. When set and the local
	// CSV is missing, the server downloads it before startup.
	FoodDatasetURL string
	LockFile       string

	// Profile storage. Empty means the in-memory store is used.
	DatabaseURL string

	// Plan generation
	PlanAlternatives int

	// Server
	Port        string
	Environment string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is merged in first when present (never overriding
// variables already set in the environment).
func Load() *Config {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	alternatives := 7
	if n := os.Getenv("PLAN_ALTERNATIVES"); n != "" {
		if parsed, err := strconv.Atoi(n); err == nil && parsed >= 0 {
			alternatives = parsed
		}
	}

	return &Config{
		AuthToken:        getEnv("AUTH_TOKEN", "super-secret-token"),
		DataDir:          dataDir,
		FoodCSVPath:      getEnv("FOOD_CSV_PATH", filepath.Join(dataDir, "food_nutrition.csv")),
		DiseaseCSVPath:   getEnv("DISEASE_CSV_PATH", filepath.Join(dataDir, "disease_food_recommendations.csv")),
		ExerciseCSVPath:  getEnv("EXERCISE_CSV_PATH", filepath.Join(dataDir, "exercises.csv")),
		YogaCSVPath:      getEnv("YOGA_CSV_PATH", filepath.Join(dataDir, "yoga_asanas.csv")),
		FoodDatasetURL:   os.Getenv("FOOD_DATASET_URL"),
		LockFile:         getEnv("LOCK_FILE", filepath.Join(dataDir, "fetch.lock")),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PlanAlternatives: alternatives,
		Port:             getEnv("PORT", "8080"),
		Environment:      getEnv("ENVIRONMENT", "production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
