// ABOUTME: HTTP client for the vegan menu optimizer API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// Client is the API client for the menu optimizer backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL.
// Optimization can take up to the server deadline, so the timeout is generous.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status       string `json:"status"`
	CatalogItems int    `json:"catalog_items"`
	PlanStore    string `json:"plan_store"`
	PlanStoreErr string `json:"plan_store_error,omitempty"`
	RecipeAPI    string `json:"recipe_api"`
}

// CatalogResponse represents the /api/v1/catalog endpoint response
type CatalogResponse struct {
	Items []models.CatalogItem `json:"items"`
	Count int                  `json:"count"`
}

// PlanList represents the /api/v1/menus endpoint response
type PlanList struct {
	Plans []models.PlanSummary `json:"plans"`
	Count int                  `json:"count"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend error: %s (%s)", e.Message, e.Details)
	}
	return fmt.Sprintf("backend error: %s", e.Message)
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Catalog calls GET /api/v1/catalog, optionally filtered by category
func (c *Client) Catalog(ctx context.Context, category string) (*CatalogResponse, error) {
	path := "/api/v1/catalog"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var resp CatalogResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Requirements calls POST /api/v1/requirements
func (c *Client) Requirements(ctx context.Context, profile models.UserProfile) (*models.RequirementTargets, error) {
	var targets models.RequirementTargets
	if err := c.do(ctx, http.MethodPost, "/api/v1/requirements", profile, &targets); err != nil {
		return nil, err
	}
	return &targets, nil
}

// Optimize calls POST /api/v1/menus/optimize
func (c *Client) Optimize(ctx context.Context, req models.OptimizeRequest) (*models.OptimizeResponse, error) {
	var resp models.OptimizeResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/menus/optimize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListPlans calls GET /api/v1/menus
func (c *Client) ListPlans(ctx context.Context, limit int) (*PlanList, error) {
	path := "/api/v1/menus"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var list PlanList
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetPlan calls GET /api/v1/menus/{id}
func (c *Client) GetPlan(ctx context.Context, id string) (*models.SavedPlan, error) {
	var plan models.SavedPlan
	if err := c.do(ctx, http.MethodGet, "/api/v1/menus/"+url.PathEscape(id), nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal input: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.handleErrorResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts transport errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp models.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("status %d", resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: errResp.Error, Details: errResp.Details}
}
