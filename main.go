// ABOUTME: Entry point for the vegan menu optimizer service
// ABOUTME: Wires catalog, plan store, recipe enrichment and the HTTP API

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/markalston/vegan-menu-optimizer/cache"
	"github.com/markalston/vegan-menu-optimizer/catalog"
	"github.com/markalston/vegan-menu-optimizer/config"
	"github.com/markalston/vegan-menu-optimizer/handlers"
	"github.com/markalston/vegan-menu-optimizer/logger"
	"github.com/markalston/vegan-menu-optimizer/middleware"
	"github.com/markalston/vegan-menu-optimizer/models"
	"github.com/markalston/vegan-menu-optimizer/services"
	"github.com/markalston/vegan-menu-optimizer/store"
)

func main() {
	// .env is optional; real environment variables take precedence
	_ = godotenv.Load()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Vegan Menu Optimizer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Default(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog loaded", "items", cat.Len(), "categories", cat.Categories(), "path", cfg.CatalogPath)

	var plans store.PlanStore
	if cfg.MongoConfigured() {
		mongoStore, err := store.NewMongoStore(store.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
			Timeout:  10 * time.Second,
		})
		if err != nil {
			slog.Error("Failed to connect to MongoDB", "error", err)
			os.Exit(1)
		}
		defer mongoStore.Close(context.Background())
		syncCatalog(ctx, mongoStore, cat)
		plans = mongoStore
		slog.Info("MongoDB configured", "database", cfg.MongoDatabase)
	} else {
		plans = store.NewMemoryStore(500)
		slog.Info("MongoDB not configured, keeping plans in memory")
	}

	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	defer c.Close()
	slog.Info("Cache initialized", "ttl", cacheTTL)

	planner := services.NewMenuPlanner(cat, services.NewRequirementsCalculator(cfg.LoseWeightFactor), plannerConfig(cfg))
	if cfg.RecipeAPIConfigured() {
		recipeCache := cache.New(time.Duration(cfg.RecipeCacheTTL) * time.Second)
		defer recipeCache.Close()
		planner.WithEnricher(services.NewRecipeClient(cfg.RecipeAPIURL, cfg.RecipeAPIKey, nil, recipeCache))
		slog.Info("Recipe API configured", "url", cfg.RecipeAPIURL)
	} else {
		slog.Info("Recipe API not configured, menus use placeholder instructions")
	}

	h := handlers.NewHandler(cfg, c, cat, planner, plans)
	limits := middleware.NewLimits(cfg.RateLimitEnabled, cfg.RateLimitOptimize, cfg.RateLimitDefault)
	if !cfg.RateLimitEnabled {
		slog.Warn("Rate limiting disabled")
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handlers.NewServeMux(h, cfg.CORSAllowedOrigins, limits),
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.OptimizeTimeout() + 30*time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Server listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

// plannerConfig applies environment overrides to the optimizer presets
func plannerConfig(cfg *config.Config) services.PlannerConfig {
	pc := services.DefaultPlannerConfig()
	pc.Timeout = cfg.OptimizeTimeout()
	pc.BudgetCeilings = services.BudgetCeilings{
		models.BudgetLow:    cfg.BudgetLow,
		models.BudgetMedium: cfg.BudgetMedium,
		models.BudgetHigh:   cfg.BudgetHigh,
	}

	overrides := services.OptimizerOverrides{
		PopulationSize: cfg.OptimizerPopulation,
		Generations:    cfg.OptimizerGenerations,
		MutationRate:   cfg.OptimizerMutationRate,
		EliteFraction:  cfg.OptimizerEliteFraction,
	}
	// Overrides target the server's default preset
	pc.DefaultPreset = models.OptimizerPreset(cfg.OptimizerPreset)
	if pc.DefaultPreset == models.PresetEnhanced {
		pc.Enhanced = pc.Enhanced.Apply(overrides)
	} else {
		pc.Standard = pc.Standard.Apply(overrides)
	}
	pc.Standard.Workers = cfg.OptimizerWorkers
	pc.Enhanced.Workers = cfg.OptimizerWorkers
	return pc
}

// syncCatalog seeds an empty catalog collection or loads a populated one
func syncCatalog(ctx context.Context, s *store.MongoStore, cat *catalog.Catalog) {
	items, err := s.CatalogItems(ctx)
	if err != nil {
		slog.Warn("Failed to read catalog from MongoDB, using loaded catalog", "error", err)
		return
	}
	if len(items) == 0 {
		if err := s.SeedCatalog(ctx, cat.All()); err != nil {
			slog.Warn("Failed to seed catalog collection", "error", err)
			return
		}
		slog.Info("Seeded catalog collection", "items", cat.Len())
		return
	}
	cat.Replace(items)
	slog.Info("Catalog loaded from MongoDB", "items", len(items))
}
