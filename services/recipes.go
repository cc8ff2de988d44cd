// ABOUTME: Recipe API client enriching chosen menu items with preparation details
// ABOUTME: Cached lookups with singleflight coalescing; failures degrade to placeholders

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/markalston/vegan-menu-optimizer/cache"
	"github.com/markalston/vegan-menu-optimizer/models"
)

// RecipeDetails is the enrichment payload for one catalog item
type RecipeDetails struct {
	ItemID         string `json:"id"`
	Instructions   string `json:"instructions"`
	ImageURL       string `json:"image_url"`
	SourceURL      string `json:"source_url"`
	ReadyInMinutes int    `json:"ready_in_minutes"`
}

// RecipeClient fetches recipe details from an external recipe API
type RecipeClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	cache   *cache.Cache
	sfGroup singleflight.Group
}

// NewRecipeClient creates a client. If httpClient is nil, a default client
// with a 10s timeout is used. A nil cache disables caching.
func NewRecipeClient(baseURL, apiKey string, httpClient *http.Client, c *cache.Cache) *RecipeClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}
	return &RecipeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  httpClient,
		cache:   c,
	}
}

// Lookup returns recipe details for item, consulting the cache first.
// Concurrent lookups for the same item share one request.
func (c *RecipeClient) Lookup(ctx context.Context, item models.CatalogItem) (RecipeDetails, error) {
	key := "recipe:" + item.ID
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			if details, ok := v.(RecipeDetails); ok {
				return details, nil
			}
		}
	}

	v, err, _ := c.sfGroup.Do(key, func() (interface{}, error) {
		details, err := c.fetch(ctx, item)
		if err != nil {
			return RecipeDetails{}, err
		}
		if c.cache != nil {
			c.cache.Set(key, details)
		}
		return details, nil
	})
	if err != nil {
		return RecipeDetails{}, &models.DegradedEnrichmentError{ItemID: item.ID, Err: err}
	}
	return v.(RecipeDetails), nil
}

func (c *RecipeClient) fetch(ctx context.Context, item models.CatalogItem) (RecipeDetails, error) {
	endpoint := fmt.Sprintf("%s/recipes/%s?name=%s", c.baseURL, url.PathEscape(item.ID), url.QueryEscape(item.Name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return RecipeDetails{}, fmt.Errorf("failed to create recipe request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return RecipeDetails{}, fmt.Errorf("failed to fetch recipe: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return RecipeDetails{}, fmt.Errorf("recipe API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var details RecipeDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return RecipeDetails{}, fmt.Errorf("failed to parse recipe: %w", err)
	}
	if details.ItemID == "" {
		details.ItemID = item.ID
	}
	if strings.TrimSpace(details.Instructions) == "" {
		return RecipeDetails{}, fmt.Errorf("recipe %s has no instructions", item.ID)
	}
	return details, nil
}
