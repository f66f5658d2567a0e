package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fitplate-app/mealplan-server/internal/activity"
	"github.com/fitplate-app/mealplan-server/internal/api"
	"github.com/fitplate-app/mealplan-server/internal/catalog"
	"github.com/fitplate-app/mealplan-server/internal/config"
	"github.com/fitplate-app/mealplan-server/internal/dataset"
	"github.com/fitplate-app/mealplan-server/internal/engine"
	"github.com/fitplate-app/mealplan-server/internal/mcp"
	"github.com/fitplate-app/mealplan-server/internal/profile"
	"github.com/fitplate-app/mealplan-server/internal/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mealplan-server",
	Short: "Personalized meal plan server with REST and MCP surfaces",
	Long: `Meal plan server generates personalized daily meal plans with
alternatives from body metrics, goals, diet type, diseases and allergies,
plus exercise and yoga recommendations.

The server operates in three modes:

1. STDIO Mode (--stdio): For local Claude Desktop integration
   - Uses stdio pipes for MCP communication
   - No authentication required

2. HTTP Mode (default): REST API plus the MCP streamable handler at /mcp
   - Bearer token authentication on everything except /health
   - User profiles persist to Postgres when DATABASE_URL is set,
     otherwise an in-memory store is used

3. Check Data Mode (--check-data): Load all datasets, report row counts
   and exit. Works offline and without Postgres; missing CSVs fall back
   to the built-in tables.

Datasets are plain CSV files under DATA_DIR. The food dataset can be
downloaded on startup by setting FOOD_DATASET_URL.`,
}

func init() {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		checkData, _ := cmd.Flags().GetBool("check-data")
		if checkData {
			return runCheckDataMode()
		}

		stdio, _ := cmd.Flags().GetBool("stdio")
		if stdio {
			return runStdioMode()
		}
		return runHTTPMode()
	}
	rootCmd.Version = version.String()
	rootCmd.Flags().Bool("stdio", false, "Run in stdio mode for local Claude Desktop integration (default: HTTP mode)")
	rootCmd.Flags().Bool("check-data", false, "Load all datasets, report row counts and exit (does not start a server)")
}

// datasets bundles everything loaded from the CSV files.
type datasets struct {
	foods     *catalog.Catalog
	diseases  *catalog.DiseaseTable
	exercises *activity.ExerciseCatalog
	yoga      *activity.YogaCatalog
}

// loadDatasets fetches the food CSV if configured and loads every dataset.
// Missing or unreadable files degrade to built-in fallback tables; only a
// structurally broken food CSV is a hard error.
func loadDatasets(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*datasets, error) {
	if cfg.FoodDatasetURL != "" {
		fetcher := dataset.NewFetcher(cfg.FoodDatasetURL, cfg.FoodCSVPath, cfg.LockFile, logger)
		if err := fetcher.EnsureLocal(ctx); err != nil {
			logger.Warn("Food dataset fetch failed, continuing with local data", "error", err)
		}
	}

	foods, err := catalog.Load(ctx, cfg.FoodCSVPath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load food catalog: %w", err)
	}

	return &datasets{
		foods:     foods,
		diseases:  catalog.LoadDiseaseTable(ctx, cfg.DiseaseCSVPath, logger),
		exercises: activity.LoadExercises(ctx, cfg.ExerciseCSVPath, logger),
		yoga:      activity.LoadYoga(ctx, cfg.YogaCSVPath, logger),
	}, nil
}

// runCheckDataMode loads the datasets, reports row counts and exits.
func runCheckDataMode() error {
	logger := config.NewTextLogger(rootCmd.OutOrStdout())
	cfg := config.Load()

	logger.Info("Checking datasets", "data_dir", cfg.DataDir)

	ds, err := loadDatasets(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Dataset check failed", "error", err)
		return err
	}

	logger.Info("Dataset check completed",
		"foods", ds.foods.Len(),
		"disease_rules", ds.diseases.Len(),
		"exercises", ds.exercises.Len(),
		"yoga_poses", ds.yoga.Len())
	return nil
}

// runStdioMode runs the MCP server over stdio for Claude Desktop.
func runStdioMode() error {
	// Logger writes to stderr to keep stdout clean for MCP framing.
	logger := config.NewLogger(true)
	cfg := config.Load()

	logger.Info("Starting meal plan server in STDIO mode",
		"mode", "stdio",
		"auth", "not required for stdio mode",
		"transport", "stdio pipes")

	ctx := context.Background()
	ds, err := loadDatasets(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load datasets", "error", err)
		return err
	}

	eng := engine.New(ds.foods, ds.diseases, cfg.PlanAlternatives, logger)
	mcpSrv := mcp.NewServer(eng, ds.foods, ds.diseases, logger)
	return mcpSrv.ServeStdio()
}

// runHTTPMode runs the REST API with the MCP streamable handler mounted.
func runHTTPMode() error {
	logger := config.NewLogger(false)
	cfg := config.Load()

	logger.Info("Starting meal plan server in HTTP mode",
		"mode", "http",
		"auth", "Bearer token required (except /health endpoint)",
		"port", cfg.Port)

	ctx := context.Background()
	ds, err := loadDatasets(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to load datasets", "error", err)
		return err
	}

	var profiles profile.Store
	if cfg.DatabaseURL != "" {
		store, err := profile.NewPostgresStore(cfg.DatabaseURL)
		if err != nil {
			logger.Error("Failed to connect to Postgres", "error", err)
			return err
		}
		logger.Info("Profile store: Postgres")
		profiles = store
	} else {
		logger.Info("Profile store: in-memory (set DATABASE_URL for persistence)")
		profiles = profile.NewMemoryStore()
	}

	eng := engine.New(ds.foods, ds.diseases, cfg.PlanAlternatives, logger)
	mcpSrv := mcp.NewServer(eng, ds.foods, ds.diseases, logger)

	srv := api.New(api.Deps{
		Config:     cfg,
		Engine:     eng,
		Foods:      ds.foods,
		Diseases:   ds.diseases,
		Exercises:  ds.exercises,
		Yoga:       ds.yoga,
		Profiles:   profiles,
		MCPHandler: mcpSrv.StreamableHandler(),
		Logger:     logger,
	})
	return srv.Start(ctx)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// Run is the main entry point for the CLI application
func Run() error {
	return Execute()
}
