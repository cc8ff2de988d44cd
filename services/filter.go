// ABOUTME: Constraint filter removing catalog items that violate dietary restrictions
// ABOUTME: Allergen/intolerance intersection, excluded-ingredient matching, vegan and preference tags

package services

import (
	"strings"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// FilterItems returns the items that satisfy restrictions. It never fails:
// an empty result is returned as-is and callers decide whether that is fatal.
// The input slice is not modified.
func FilterItems(items []models.CatalogItem, restrictions models.DietaryRestrictions) []models.CatalogItem {
	blocked := normalizedSet(restrictions.Allergens, restrictions.Intolerances)
	excluded := normalizedList(restrictions.ExcludedIngredients)
	required := requiredTags(restrictions.Preferences)

	result := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if !item.Vegan {
			continue
		}
		if intersects(item.Allergens, blocked) {
			continue
		}
		if matchesExclusion(item, excluded) {
			continue
		}
		if !hasAllTags(item, required) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// CookingTimeFilter keeps items within the tier's time limit. When no item
// fits, the original slice is returned and ok is false.
func CookingTimeFilter(items []models.CatalogItem, tier models.CookingTimeTier) (filtered []models.CatalogItem, ok bool) {
	limit := tier.MaxMinutes()
	if limit == 0 {
		return items, true
	}
	filtered = make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if item.CookingMinutes <= limit {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return items, false
	}
	return filtered, true
}

// ViolatesRestrictions reports whether a single item would be removed by FilterItems
func ViolatesRestrictions(item models.CatalogItem, restrictions models.DietaryRestrictions) bool {
	return len(FilterItems([]models.CatalogItem{item}, restrictions)) == 0
}

func normalizedSet(lists ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range lists {
		for _, v := range list {
			if n := normalizeTag(v); n != "" {
				set[n] = true
			}
		}
	}
	return set
}

func normalizedList(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if n := normalizeTag(v); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func normalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// requiredTags drops "vegan", which is enforced through CatalogItem.Vegan
func requiredTags(preferences []string) []string {
	var tags []string
	for _, p := range normalizedList(preferences) {
		if p == models.PreferenceVegan {
			continue
		}
		tags = append(tags, p)
	}
	return tags
}

func intersects(tags []string, set map[string]bool) bool {
	if len(set) == 0 {
		return false
	}
	for _, t := range tags {
		if set[normalizeTag(t)] {
			return true
		}
	}
	return false
}

// matchesExclusion checks the item name and its ingredient list with a
// case-insensitive substring match
func matchesExclusion(item models.CatalogItem, excluded []string) bool {
	if len(excluded) == 0 {
		return false
	}
	name := strings.ToLower(item.Name)
	for _, ex := range excluded {
		if strings.Contains(name, ex) {
			return true
		}
		for _, ing := range item.Ingredients {
			if strings.Contains(strings.ToLower(ing), ex) {
				return true
			}
		}
	}
	return false
}

func hasAllTags(item models.CatalogItem, tags []string) bool {
	for _, t := range tags {
		if !item.HasTag(t) {
			return false
		}
	}
	return true
}
