// ABOUTME: HTTP handler for browsing the recipe catalog
// ABOUTME: Optional category filter; listings are cached per category

package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// CatalogResponse lists catalog items
type CatalogResponse struct {
	Items []models.CatalogItem `json:"items"`
	Count int                  `json:"count"`
}

// ListCatalog returns catalog items, optionally filtered by ?category=
func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	category := models.MealCategory(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category"))))
	if category != "" && !category.Valid() {
		h.writeError(w, fmt.Sprintf("Unknown category %q", category), http.StatusBadRequest)
		return
	}

	load := func() (interface{}, error) {
		var items []models.CatalogItem
		if category == "" {
			items = h.catalog.All()
		} else {
			items = h.catalog.QueryByCategory(category, nil)
		}
		return CatalogResponse{Items: items, Count: len(items)}, nil
	}

	if h.cache == nil {
		resp, _ := load()
		h.writeJSON(w, http.StatusOK, resp)
		return
	}
	resp, err := h.cache.GetOrLoad("catalog:"+string(category), load)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}
