// ABOUTME: Configuration loader for the menu optimizer service
// ABOUTME: Loads settings from environment variables with defaults and validation

package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port               string
	CacheTTL           int      // seconds, catalog listing cache
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)

	// Catalog
	CatalogPath string // YAML catalog file; empty uses the embedded seed

	// Recipe API (optional)
	RecipeAPIURL   string
	RecipeAPIKey   string
	RecipeCacheTTL int // seconds, default 3600

	// MongoDB (optional; plans are kept in memory without it)
	MongoURI      string
	MongoDatabase string

	// Optimizer overrides; zero values keep the preset
	OptimizerPreset        string
	OptimizerPopulation    int
	OptimizerGenerations   int
	OptimizerMutationRate  *float64 // nil keeps the preset; 0 is a valid override
	OptimizerEliteFraction *float64
	OptimizerWorkers       int
	OptimizeTimeoutSeconds int

	// Nutrition
	LoseWeightFactor float64

	// Weekly per-person budget ceilings
	BudgetLow    float64
	BudgetMedium float64
	BudgetHigh   float64

	// Rate Limiting
	RateLimitEnabled  bool // Enable rate limiting (default: true)
	RateLimitOptimize int  // Requests per minute for the optimize endpoint (default: 10)
	RateLimitDefault  int  // Requests per minute for all other endpoints (default: 100)
}

// RecipeAPIConfigured returns true if a recipe API URL is set
func (c *Config) RecipeAPIConfigured() bool {
	return c.RecipeAPIURL != ""
}

// MongoConfigured returns true if a MongoDB URI is set
func (c *Config) MongoConfigured() bool {
	return c.MongoURI != ""
}

// OptimizeTimeout returns the optimization deadline
func (c *Config) OptimizeTimeout() time.Duration {
	return time.Duration(c.OptimizeTimeoutSeconds) * time.Second
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		CacheTTL:           getEnvInt("CACHE_TTL", 300),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),

		CatalogPath: os.Getenv("CATALOG_PATH"),

		RecipeAPIURL:   ensureScheme(os.Getenv("RECIPE_API_URL")),
		RecipeAPIKey:   os.Getenv("RECIPE_API_KEY"),
		RecipeCacheTTL: getEnvInt("RECIPE_CACHE_TTL", 3600),

		MongoURI:      os.Getenv("MONGO_URI"),
		MongoDatabase: getEnv("MONGO_DATABASE", "vegan_menu"),

		OptimizerPreset:        strings.ToLower(getEnv("OPTIMIZER_PRESET", "standard")),
		OptimizerPopulation:    getEnvInt("OPTIMIZER_POPULATION", 0),
		OptimizerGenerations:   getEnvInt("OPTIMIZER_GENERATIONS", 0),
		OptimizerMutationRate:  getEnvOptionalFloat("OPTIMIZER_MUTATION_RATE"),
		OptimizerEliteFraction: getEnvOptionalFloat("OPTIMIZER_ELITE_FRACTION"),
		OptimizerWorkers:       getEnvInt("OPTIMIZER_WORKERS", 0),
		OptimizeTimeoutSeconds: getEnvInt("OPTIMIZE_TIMEOUT_SECONDS", 30),

		LoseWeightFactor: getEnvFloat("LOSE_WEIGHT_FACTOR", 0.8),

		BudgetLow:    getEnvFloat("BUDGET_LOW", 50),
		BudgetMedium: getEnvFloat("BUDGET_MEDIUM", 80),
		BudgetHigh:   getEnvFloat("BUDGET_HIGH", 120),

		RateLimitEnabled:  getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitOptimize: getEnvInt("RATE_LIMIT_OPTIMIZE", 10),
		RateLimitDefault:  getEnvInt("RATE_LIMIT_DEFAULT", 100),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.OptimizerPreset {
	case "standard", "enhanced":
	default:
		return fmt.Errorf("OPTIMIZER_PRESET must be standard or enhanced, got %q", c.OptimizerPreset)
	}
	if c.OptimizerPopulation != 0 && c.OptimizerPopulation < 2 {
		return fmt.Errorf("OPTIMIZER_POPULATION must be at least 2, got %d", c.OptimizerPopulation)
	}
	if c.OptimizerGenerations < 0 {
		return fmt.Errorf("OPTIMIZER_GENERATIONS must not be negative, got %d", c.OptimizerGenerations)
	}
	for _, f := range []struct {
		name  string
		value *float64
	}{
		{"OPTIMIZER_MUTATION_RATE", c.OptimizerMutationRate},
		{"OPTIMIZER_ELITE_FRACTION", c.OptimizerEliteFraction},
	} {
		if f.value == nil {
			continue
		}
		if v := *f.value; math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %g", f.name, v)
		}
	}
	if c.OptimizeTimeoutSeconds < 0 {
		return fmt.Errorf("OPTIMIZE_TIMEOUT_SECONDS must not be negative, got %d", c.OptimizeTimeoutSeconds)
	}
	if c.LoseWeightFactor <= 0 || c.LoseWeightFactor >= 1 {
		return fmt.Errorf("LOSE_WEIGHT_FACTOR must be between 0 and 1, got %g", c.LoseWeightFactor)
	}
	for _, b := range []struct {
		name  string
		value float64
	}{
		{"BUDGET_LOW", c.BudgetLow},
		{"BUDGET_MEDIUM", c.BudgetMedium},
		{"BUDGET_HIGH", c.BudgetHigh},
	} {
		if b.value <= 0 {
			return fmt.Errorf("%s must be positive, got %g", b.name, b.value)
		}
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_OPTIMIZE", c.RateLimitOptimize},
		{"RATE_LIMIT_DEFAULT", c.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvOptionalFloat returns nil when key is unset or not a number
func getEnvOptionalFloat(key string) *float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return &f
		}
	}
	return nil
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
