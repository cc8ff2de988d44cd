// ABOUTME: HTTP handler for service health
// ABOUTME: Reports catalog size, plan store reachability and recipe API status

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// pinger is implemented by plan stores backed by a remote database
type pinger interface {
	Ping(ctx context.Context) error
}

const healthPingTimeout = 2 * time.Second

// Health returns API health status. An unreachable plan store reports
// "degraded" because menus are still served, only not persisted.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	recipeAPI := "not_configured"
	if h.cfg != nil && h.cfg.RecipeAPIConfigured() {
		recipeAPI = "configured"
	}

	resp := map[string]interface{}{
		"status":        "ok",
		"catalog_items": h.catalog.Len(),
		"categories":    h.catalog.Counts(),
		"plan_store":    h.plans.Kind(),
		"recipe_api":    recipeAPI,
		"timestamp":     time.Now().UTC(),
	}

	if p, ok := h.plans.(pinger); ok {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			slog.Warn("Plan store unreachable", "store", h.plans.Kind(), "error", err)
			resp["status"] = "degraded"
			resp["plan_store_error"] = err.Error()
		}
	}

	h.writeJSON(w, http.StatusOK, resp)
}
