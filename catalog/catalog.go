// ABOUTME: Thread-safe in-memory catalog of vegan recipes and food items
// ABOUTME: Category queries return copies so a run owns an immutable snapshot

package catalog

import (
	"sort"
	"sync"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// Catalog indexes items by id and category. Construct one per process and
// pass it explicitly; Replace swaps the contents between runs.
type Catalog struct {
	mu         sync.RWMutex
	items      []models.CatalogItem
	byID       map[string]int
	byCategory map[models.MealCategory][]int
}

// New creates a catalog holding items
func New(items []models.CatalogItem) *Catalog {
	c := &Catalog{}
	c.Replace(items)
	return c
}

// Replace swaps the catalog contents. Later duplicates of an id win.
func (c *Catalog) Replace(items []models.CatalogItem) {
	byID := make(map[string]int, len(items))
	kept := make([]models.CatalogItem, 0, len(items))
	for _, item := range items {
		if i, ok := byID[item.ID]; ok {
			kept[i] = cloneItem(item)
			continue
		}
		byID[item.ID] = len(kept)
		kept = append(kept, cloneItem(item))
	}
	byCategory := make(map[models.MealCategory][]int)
	for i, item := range kept {
		byCategory[item.Category] = append(byCategory[item.Category], i)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = kept
	c.byID = byID
	c.byCategory = byCategory
}

// Len returns the number of items
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Get returns a copy of the item with id
func (c *Catalog) Get(id string) (models.CatalogItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byID[id]
	if !ok {
		return models.CatalogItem{}, false
	}
	return cloneItem(c.items[i]), true
}

// All returns copies of every item in load order
func (c *Catalog) All() []models.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.CatalogItem, len(c.items))
	for i, item := range c.items {
		out[i] = cloneItem(item)
	}
	return out
}

// QueryByCategory returns copies of the items in category accepted by pred.
// A nil pred accepts everything.
func (c *Catalog) QueryByCategory(category models.MealCategory, pred func(models.CatalogItem) bool) []models.CatalogItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	idx := c.byCategory[category]
	out := make([]models.CatalogItem, 0, len(idx))
	for _, i := range idx {
		if pred != nil && !pred(c.items[i]) {
			continue
		}
		out = append(out, cloneItem(c.items[i]))
	}
	return out
}

// Counts returns the number of items per category
func (c *Catalog) Counts() map[models.MealCategory]int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	counts := make(map[models.MealCategory]int, len(c.byCategory))
	for cat, idx := range c.byCategory {
		counts[cat] = len(idx)
	}
	return counts
}

// Categories returns the categories present, sorted
func (c *Catalog) Categories() []models.MealCategory {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cats := make([]models.MealCategory, 0, len(c.byCategory))
	for cat := range c.byCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

func cloneItem(item models.CatalogItem) models.CatalogItem {
	item.Allergens = append([]string(nil), item.Allergens...)
	item.Ingredients = append([]string(nil), item.Ingredients...)
	item.Tags = append([]string(nil), item.Tags...)
	return item
}
