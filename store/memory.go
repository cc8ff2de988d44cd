// ABOUTME: In-memory plan store used when no database is configured
// ABOUTME: Keeps at most a fixed number of plans, evicting the oldest

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// MemoryStore keeps plans in process memory
type MemoryStore struct {
	mu       sync.RWMutex
	plans    map[string]*models.SavedPlan
	order    []string // insertion order, oldest first
	capacity int
}

// NewMemoryStore creates a store holding at most capacity plans; 0 means unbounded
func NewMemoryStore(capacity int) *MemoryStore {
	return &MemoryStore{
		plans:    make(map[string]*models.SavedPlan),
		capacity: capacity,
	}
}

func (s *MemoryStore) Kind() string { return "memory" }

func (s *MemoryStore) Save(ctx context.Context, plan *models.SavedPlan) error {
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now()
	}
	cp := *plan

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.plans[plan.ID]; !exists {
		s.order = append(s.order, plan.ID)
	}
	s.plans[plan.ID] = &cp
	for s.capacity > 0 && len(s.order) > s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.plans, oldest)
	}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.SavedPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *plan
	return &cp, nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]models.PlanSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	s.mu.RLock()
	summaries := make([]models.PlanSummary, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		summaries = append(summaries, s.plans[s.order[i]].Summary())
	}
	s.mu.RUnlock()

	// Ties keep the later save first
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}
