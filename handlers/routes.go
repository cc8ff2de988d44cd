// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes and registers them on a ServeMux with middleware

package handlers

import (
	"net/http"

	"github.com/markalston/vegan-menu-optimizer/middleware"
)

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method    string           // HTTP method (GET, POST, etc.)
	Path      string           // URL path (e.g., "/api/v1/health")
	Handler   http.HandlerFunc // Handler function
	Expensive bool             // rate limited with the optimize budget
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Catalog & requirements
		{Method: http.MethodGet, Path: "/api/v1/catalog", Handler: h.ListCatalog},
		{Method: http.MethodPost, Path: "/api/v1/requirements", Handler: h.CalculateRequirements},

		// Menus
		{Method: http.MethodPost, Path: "/api/v1/menus/optimize", Handler: h.OptimizeMenu, Expensive: true},
		{Method: http.MethodGet, Path: "/api/v1/menus", Handler: h.ListMenus},
		{Method: http.MethodGet, Path: "/api/v1/menus/{id}", Handler: h.GetMenu},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}

// NewServeMux registers every route with logging, CORS and rate limiting.
// Preflight requests for any API path are answered by the CORS middleware.
func NewServeMux(h *Handler, allowedOrigins []string, limits middleware.Limits) *http.ServeMux {
	mux := http.NewServeMux()
	cors := middleware.CORS(allowedOrigins)

	for _, route := range h.Routes() {
		limiter := limits.Default
		if route.Expensive {
			limiter = limits.Optimize
		}
		mux.HandleFunc(route.Method+" "+route.Path, middleware.Chain(
			route.Handler,
			middleware.LogRequest,
			cors,
			middleware.RateLimit(limiter, middleware.ClientIP),
		))
	}

	mux.HandleFunc("OPTIONS /api/", middleware.Chain(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, cors))
	return mux
}
