// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds the full API stack over the seed catalog with a fake recipe API

package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/markalston/vegan-menu-optimizer/cache"
	"github.com/markalston/vegan-menu-optimizer/catalog"
	"github.com/markalston/vegan-menu-optimizer/config"
	"github.com/markalston/vegan-menu-optimizer/handlers"
	"github.com/markalston/vegan-menu-optimizer/middleware"
	"github.com/markalston/vegan-menu-optimizer/services"
	"github.com/markalston/vegan-menu-optimizer/store"
)

// recipeAPI is a fake recipe service that can be told to fail every lookup
type recipeAPI struct {
	server   *httptest.Server
	requests atomic.Int64
	failAll  bool
}

func newRecipeAPI(t *testing.T, failAll bool) *recipeAPI {
	t.Helper()
	api := &recipeAPI{failAll: failAll}
	api.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		api.requests.Add(1)
		id := strings.TrimPrefix(r.URL.Path, "/recipes/")
		if api.failAll {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"id":           id,
			"instructions": "Step by step for " + r.URL.Query().Get("name"),
			"source_url":   "https://recipes.example.com/" + id,
		})
	}))
	t.Cleanup(api.server.Close)
	return api
}

type stackOptions struct {
	origins []string
	limits  middleware.Limits
	recipes *recipeAPI
}

// newStack serves the API the way main wires it, with a small optimizer
func newStack(t *testing.T, opts stackOptions) *httptest.Server {
	t.Helper()

	cat, err := catalog.Default("")
	if err != nil {
		t.Fatalf("Failed to load seed catalog: %v", err)
	}

	pc := services.DefaultPlannerConfig()
	pc.Standard.PopulationSize = 24
	pc.Standard.Generations = 12
	pc.Standard.Workers = 2
	pc.Enhanced = pc.Standard
	pc.Enhanced.PopulationSize = 32
	pc.Timeout = 20 * time.Second
	planner := services.NewMenuPlanner(cat, nil, pc)

	cfg := &config.Config{}
	if opts.recipes != nil {
		cfg.RecipeAPIURL = opts.recipes.server.URL
		recipeCache := cache.New(time.Minute)
		t.Cleanup(recipeCache.Close)
		planner.WithEnricher(services.NewRecipeClient(opts.recipes.server.URL, "test-key", nil, recipeCache))
	}

	c := cache.New(time.Minute)
	t.Cleanup(c.Close)
	h := handlers.NewHandler(cfg, c, cat, planner, store.NewMemoryStore(20))

	server := httptest.NewServer(handlers.NewServeMux(h, opts.origins, opts.limits))
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}
