// ABOUTME: HTTP handlers for the menu optimizer API
// ABOUTME: Handler wiring plus shared JSON request and response helpers

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/markalston/vegan-menu-optimizer/cache"
	"github.com/markalston/vegan-menu-optimizer/catalog"
	"github.com/markalston/vegan-menu-optimizer/config"
	"github.com/markalston/vegan-menu-optimizer/models"
	"github.com/markalston/vegan-menu-optimizer/services"
	"github.com/markalston/vegan-menu-optimizer/store"
)

// maxRequestBodySize caps JSON request bodies
const maxRequestBodySize = 1 << 20

type Handler struct {
	cfg     *config.Config
	cache   *cache.Cache
	catalog *catalog.Catalog
	planner *services.MenuPlanner
	plans   store.PlanStore
}

// NewHandler wires handlers to their dependencies. Nil dependencies are
// replaced with in-memory defaults so tests can pass only what they need.
func NewHandler(cfg *config.Config, c *cache.Cache, cat *catalog.Catalog, planner *services.MenuPlanner, plans store.PlanStore) *Handler {
	if cat == nil {
		cat = catalog.New(nil)
	}
	if planner == nil {
		planner = services.NewMenuPlanner(cat, nil, services.DefaultPlannerConfig())
	}
	if plans == nil {
		plans = store.NewMemoryStore(100)
	}
	return &Handler{
		cfg:     cfg,
		cache:   c,
		catalog: cat,
		planner: planner,
		plans:   plans,
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeErrorDetails(w, message, "", code)
}

func (h *Handler) writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}

// writeDomainError maps configuration errors to 422 and everything else to 500
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	var cfgErr *models.ConfigurationError
	if errors.As(err, &cfgErr) {
		h.writeErrorDetails(w, "Invalid configuration", cfgErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	slog.Error("Request failed", "error", err)
	h.writeError(w, "Internal server error", http.StatusInternalServerError)
}

// decodeJSON reads a size-capped JSON body into dst, writing a 400 on failure
func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, fmt.Sprintf("Request body exceeds %d bytes", maxRequestBodySize), http.StatusRequestEntityTooLarge)
			return false
		}
		h.writeErrorDetails(w, "Invalid JSON", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
