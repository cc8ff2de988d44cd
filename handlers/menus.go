// ABOUTME: HTTP handlers for requirement calculation and menu optimization
// ABOUTME: Optimized menus are saved to the plan store and retrievable by id

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/markalston/vegan-menu-optimizer/middleware"
	"github.com/markalston/vegan-menu-optimizer/models"
	"github.com/markalston/vegan-menu-optimizer/store"
)

// CalculateRequirements returns daily nutrient targets for a profile
func (h *Handler) CalculateRequirements(w http.ResponseWriter, r *http.Request) {
	var profile models.UserProfile
	if !h.decodeJSON(w, r, &profile) {
		return
	}

	targets, err := h.planner.Requirements(profile)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, targets)
}

// OptimizeMenu runs the optimizer for the request and stores the result
func (h *Handler) OptimizeMenu(w http.ResponseWriter, r *http.Request) {
	var req models.OptimizeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.planner.OptimizeMenu(r.Context(), req)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	prefs := req.Preferences
	prefs.Preset = resp.Metadata.Preset
	prefs.Seed = resp.Metadata.Seed
	plan := &models.SavedPlan{
		ID:           resp.ID,
		CreatedAt:    resp.Metadata.Timestamp,
		Profile:      req.Profile,
		Preferences:  prefs.WithDefaults(),
		Restrictions: req.Restrictions,
		Response:     *resp,
	}
	if err := h.plans.Save(r.Context(), plan); err != nil {
		// The menu is still returned; only retrieval by id is lost
		slog.Error("Failed to save plan", "id", resp.ID, "request_id", middleware.RequestID(r.Context()), "error", err)
	}

	slog.Info("Menu optimized",
		"id", resp.ID,
		"request_id", middleware.RequestID(r.Context()),
		"score", resp.OptimizationScore,
		"interrupted", resp.Metadata.Interrupted,
		"duration_ms", resp.Metadata.DurationMs,
	)
	h.writeJSON(w, http.StatusOK, resp)
}

// ListMenus returns summaries of recent plans, newest first
func (h *Handler) ListMenus(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			h.writeError(w, "limit must be between 1 and 100", http.StatusBadRequest)
			return
		}
		limit = n
	}

	summaries, err := h.plans.List(r.Context(), limit)
	if err != nil {
		slog.Error("Failed to list plans", "error", err)
		h.writeError(w, "Failed to list plans", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"plans": summaries,
		"count": len(summaries),
	})
}

// GetMenu returns a stored plan by id
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.writeError(w, "Plan id is required", http.StatusBadRequest)
		return
	}

	plan, err := h.plans.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, "Plan not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get plan", "id", id, "error", err)
		h.writeError(w, "Failed to get plan", http.StatusInternalServerError)
		return
	}
	h.writeJSON(w, http.StatusOK, plan)
}
