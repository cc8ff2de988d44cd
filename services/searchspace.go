// ABOUTME: Immutable per-run search space and the candidate genome encoding
// ABOUTME: Flattened item table, per-category pools and interned ingredient ids

package services

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// EmptySlot marks a slot with no assigned item
const EmptySlot = -1

// SearchSpace is the read-only snapshot the optimizer searches over.
// Slot i belongs to day i/len(Categories) and category i%len(Categories).
type SearchSpace struct {
	Items      []models.CatalogItem
	Categories []models.MealCategory
	Days       int

	pools          [][]int // per category position: indices into Items
	ingredientIDs  [][]int // per item: interned ingredient ids
	numIngredients int
}

// NewSearchSpace builds a search space from filtered per-category pools.
// Every configured category must have at least one item.
func NewSearchSpace(pools map[models.MealCategory][]models.CatalogItem, categories []models.MealCategory, days int) (*SearchSpace, error) {
	if days <= 0 {
		return nil, models.NewConfigurationError("days", fmt.Sprintf("must be positive, got %d", days))
	}
	if len(categories) == 0 {
		return nil, models.NewConfigurationError("meal_categories", "at least one category is required")
	}

	s := &SearchSpace{
		Categories: append([]models.MealCategory(nil), categories...),
		Days:       days,
		pools:      make([][]int, len(categories)),
	}

	ingredients := make(map[string]int)
	for ci, cat := range categories {
		items := pools[cat]
		if len(items) == 0 {
			return nil, models.NewConfigurationError("meal_categories",
				fmt.Sprintf("no catalog items satisfy the restrictions for category %q", cat))
		}
		for _, item := range items {
			idx := len(s.Items)
			s.Items = append(s.Items, item)
			s.pools[ci] = append(s.pools[ci], idx)

			ids := make([]int, 0, len(item.Ingredients))
			for _, ing := range item.Ingredients {
				key := strings.ToLower(strings.TrimSpace(ing))
				if key == "" {
					continue
				}
				id, ok := ingredients[key]
				if !ok {
					id = len(ingredients)
					ingredients[key] = id
				}
				ids = append(ids, id)
			}
			s.ingredientIDs = append(s.ingredientIDs, ids)
		}
	}
	s.numIngredients = len(ingredients)
	return s, nil
}

// Slots returns the genome length
func (s *SearchSpace) Slots() int {
	return s.Days * len(s.Categories)
}

// SlotDay returns the zero-based day of slot i
func (s *SearchSpace) SlotDay(i int) int {
	return i / len(s.Categories)
}

// SlotCategory returns the category of slot i
func (s *SearchSpace) SlotCategory(i int) models.MealCategory {
	return s.Categories[i%len(s.Categories)]
}

// Pool returns the item indices eligible for slot i. Callers must not modify it.
func (s *SearchSpace) Pool(i int) []int {
	return s.pools[i%len(s.Categories)]
}

// PoolSize returns the number of eligible items for category
func (s *SearchSpace) PoolSize(category models.MealCategory) int {
	for ci, c := range s.Categories {
		if c == category {
			return len(s.pools[ci])
		}
	}
	return 0
}

// Allows reports whether item index idx is eligible for slot i
func (s *SearchSpace) Allows(i, idx int) bool {
	if idx == EmptySlot {
		return true
	}
	for _, p := range s.Pool(i) {
		if p == idx {
			return true
		}
	}
	return false
}

func (s *SearchSpace) randomGene(rng *rand.Rand, slot int) int {
	pool := s.Pool(slot)
	return pool[rng.IntN(len(pool))]
}

// Candidate is one menu genome: an item index per slot, or EmptySlot.
// Candidates never share their gene slice.
type Candidate struct {
	Genes []int
}

// NewRandomCandidate draws every slot uniformly from its pool
func NewRandomCandidate(s *SearchSpace, rng *rand.Rand) Candidate {
	genes := make([]int, s.Slots())
	for i := range genes {
		genes[i] = s.randomGene(rng, i)
	}
	return Candidate{Genes: genes}
}

// Clone deep-copies the candidate
func (c Candidate) Clone() Candidate {
	return Candidate{Genes: append([]int(nil), c.Genes...)}
}
