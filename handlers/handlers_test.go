// ABOUTME: Tests for the menu optimizer HTTP handlers
// ABOUTME: Health, catalog, requirements, optimize and stored plan retrieval

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/markalston/vegan-menu-optimizer/cache"
	"github.com/markalston/vegan-menu-optimizer/catalog"
	"github.com/markalston/vegan-menu-optimizer/config"
	"github.com/markalston/vegan-menu-optimizer/models"
	"github.com/markalston/vegan-menu-optimizer/services"
	"github.com/markalston/vegan-menu-optimizer/store"
)

const validProfile = `{"age":30,"gender":"male","weight_kg":75,"height_cm":180,"activity_level":"moderate","goal":"maintain"}`

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	items, err := catalog.SeedItems()
	if err != nil {
		t.Fatalf("Failed to load seed catalog: %v", err)
	}
	cat := catalog.New(items)

	cfg := services.DefaultPlannerConfig()
	cfg.Standard.PopulationSize = 16
	cfg.Standard.Generations = 10
	cfg.Standard.Workers = 2
	cfg.Enhanced = cfg.Standard
	planner := services.NewMenuPlanner(cat, nil, cfg)

	c := cache.New(5 * time.Minute)
	t.Cleanup(c.Close)
	return NewHandler(&config.Config{}, c, cat, planner, store.NewMemoryStore(10))
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
}

func TestHealthHandler(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.Health(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	decode(t, w, &resp)
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", resp["status"])
	}
	if resp["plan_store"] != "memory" {
		t.Errorf("Expected plan_store memory, got %v", resp["plan_store"])
	}
	if resp["recipe_api"] != "not_configured" {
		t.Errorf("Expected recipe_api not_configured, got %v", resp["recipe_api"])
	}
	if resp["catalog_items"].(float64) == 0 {
		t.Error("Expected catalog items to be counted")
	}
}

func TestHealthHandler_RecipeAPIConfigured(t *testing.T) {
	h := NewHandler(&config.Config{RecipeAPIURL: "https://recipes.example"}, nil, nil, nil, nil)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	var resp map[string]interface{}
	decode(t, w, &resp)
	if resp["recipe_api"] != "configured" {
		t.Errorf("Expected recipe_api configured, got %v", resp["recipe_api"])
	}
}

// unreachableStore is a memory store whose backing database is down
type unreachableStore struct {
	*store.MemoryStore
}

func (unreachableStore) Kind() string { return "mongodb" }

func (unreachableStore) Ping(ctx context.Context) error {
	return errors.New("server selection timeout")
}

func TestHealthHandler_StoreUnreachable(t *testing.T) {
	h := NewHandler(&config.Config{}, nil, nil, nil, unreachableStore{store.NewMemoryStore(1)})

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest("GET", "/api/v1/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	decode(t, w, &resp)
	if resp["status"] != "degraded" {
		t.Errorf("Expected status degraded, got %v", resp["status"])
	}
	if resp["plan_store_error"] != "server selection timeout" {
		t.Errorf("Expected ping error to be reported, got %v", resp["plan_store_error"])
	}
}

func TestListCatalog(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ListCatalog(w, httptest.NewRequest("GET", "/api/v1/catalog", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var all CatalogResponse
	decode(t, w, &all)
	if all.Count != h.catalog.Len() {
		t.Errorf("Expected %d items, got %d", h.catalog.Len(), all.Count)
	}

	w = httptest.NewRecorder()
	h.ListCatalog(w, httptest.NewRequest("GET", "/api/v1/catalog?category=Snack", nil))
	var snacks CatalogResponse
	decode(t, w, &snacks)
	if snacks.Count == 0 || snacks.Count >= all.Count {
		t.Errorf("Expected a subset of snack items, got %d", snacks.Count)
	}
	for _, item := range snacks.Items {
		if item.Category != models.CategorySnack {
			t.Errorf("Expected only snacks, got %s", item.Category)
		}
	}
}

func TestListCatalog_UnknownCategory(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ListCatalog(w, httptest.NewRequest("GET", "/api/v1/catalog?category=brunch", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestCalculateRequirements(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest("POST", "/api/v1/requirements", strings.NewReader(validProfile))
	w := httptest.NewRecorder()
	h.CalculateRequirements(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var targets models.RequirementTargets
	decode(t, w, &targets)
	if targets.TDEE < 2769 || targets.TDEE > 2770 {
		t.Errorf("Expected TDEE about 2769.3, got %f", targets.TDEE)
	}
}

func TestCalculateRequirements_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"age":`, http.StatusBadRequest},
		{"invalid profile", `{"age":0,"gender":"male","weight_kg":75,"height_cm":180,"activity_level":"moderate"}`, http.StatusUnprocessableEntity},
		{"unknown activity", `{"age":30,"gender":"male","weight_kg":75,"height_cm":180,"activity_level":"couch"}`, http.StatusUnprocessableEntity},
	}

	h := newTestHandler(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.CalculateRequirements(w, httptest.NewRequest("POST", "/api/v1/requirements", strings.NewReader(tt.body)))

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			var resp models.ErrorResponse
			decode(t, w, &resp)
			if resp.Code != tt.wantStatus || resp.Error == "" {
				t.Errorf("Unexpected error body %+v", resp)
			}
		})
	}
}

func TestCalculateRequirements_BodyTooLarge(t *testing.T) {
	h := newTestHandler(t)
	body := `{"age":30,"gender":"` + strings.Repeat("x", maxRequestBodySize) + `"}`

	w := httptest.NewRecorder()
	h.CalculateRequirements(w, httptest.NewRequest("POST", "/api/v1/requirements", strings.NewReader(body)))

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected status 413, got %d", w.Code)
	}
}

func optimizeBody(t *testing.T, req models.OptimizeRequest) *bytes.Reader {
	t.Helper()
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}
	return bytes.NewReader(data)
}

func validOptimizeRequest() models.OptimizeRequest {
	return models.OptimizeRequest{
		Profile: models.UserProfile{
			Age: 30, Gender: models.GenderMale, WeightKg: 75, HeightCm: 180,
			ActivityLevel: models.ActivityModerate,
		},
		Preferences: models.Preferences{People: 2, Days: 3, Seed: 42},
	}
}

func TestOptimizeMenu_SavesAndRetrievesPlan(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.OptimizeMenu(w, httptest.NewRequest("POST", "/api/v1/menus/optimize", optimizeBody(t, validOptimizeRequest())))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.OptimizeResponse
	decode(t, w, &resp)
	if resp.ID == "" || len(resp.Menu.Days) != 3 {
		t.Fatalf("Unexpected response id=%q days=%d", resp.ID, len(resp.Menu.Days))
	}
	if resp.Metadata.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", resp.Metadata.Seed)
	}

	// Retrieve through the mux so the {id} path value is populated
	mux := NewServeMux(h, nil, middlewareLimitsOff())
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/menus/"+resp.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	var saved models.SavedPlan
	decode(t, w, &saved)
	if saved.ID != resp.ID || saved.Preferences.Seed != 42 || saved.Preferences.Preset != models.PresetStandard {
		t.Errorf("Unexpected saved plan %+v", saved.Preferences)
	}
	if saved.Response.OptimizationScore != resp.OptimizationScore {
		t.Errorf("Expected stored score %d, got %d", resp.OptimizationScore, saved.Response.OptimizationScore)
	}

	w = httptest.NewRecorder()
	h.ListMenus(w, httptest.NewRequest("GET", "/api/v1/menus?limit=5", nil))
	var list struct {
		Plans []models.PlanSummary `json:"plans"`
		Count int                  `json:"count"`
	}
	decode(t, w, &list)
	if list.Count != 1 || list.Plans[0].ID != resp.ID || list.Plans[0].Days != 3 {
		t.Errorf("Unexpected plan list %+v", list)
	}
}

func TestOptimizeMenu_ConfigurationErrors(t *testing.T) {
	h := newTestHandler(t)

	noBreakfast := validOptimizeRequest()
	noBreakfast.Preferences.MealCategories = []models.MealCategory{models.CategoryBreakfast}
	noBreakfast.Restrictions.ExcludedIngredients = []string{"a", "e", "i", "o", "u"}

	badDays := validOptimizeRequest()
	badDays.Preferences.Days = 90

	badProfile := validOptimizeRequest()
	badProfile.Profile.HeightCm = 0

	for name, req := range map[string]models.OptimizeRequest{
		"empty category": noBreakfast,
		"too many days":  badDays,
		"bad profile":    badProfile,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.OptimizeMenu(w, httptest.NewRequest("POST", "/api/v1/menus/optimize", optimizeBody(t, req)))

			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("Expected status 422, got %d", w.Code)
			}
			var resp models.ErrorResponse
			decode(t, w, &resp)
			if !strings.Contains(resp.Details, "configuration error") {
				t.Errorf("Expected configuration error details, got %q", resp.Details)
			}
		})
	}
}

func TestOptimizeMenu_InvalidJSON(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.OptimizeMenu(w, httptest.NewRequest("POST", "/api/v1/menus/optimize", strings.NewReader("not json")))

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", w.Code)
	}
}

func TestListMenus_InvalidLimit(t *testing.T) {
	h := newTestHandler(t)

	for _, limit := range []string{"0", "101", "abc"} {
		w := httptest.NewRecorder()
		h.ListMenus(w, httptest.NewRequest("GET", "/api/v1/menus?limit="+limit, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%s: expected status 400, got %d", limit, w.Code)
		}
	}
}

func TestGetMenu_NotFound(t *testing.T) {
	h := newTestHandler(t)
	mux := NewServeMux(h, nil, middlewareLimitsOff())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/menus/does-not-exist", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestOpenAPISpec(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.OpenAPISpec(w, httptest.NewRequest("GET", "/api/v1/openapi.yaml", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/v1/menus/optimize") {
		t.Error("Expected the OpenAPI document to include the optimize endpoint")
	}
}
