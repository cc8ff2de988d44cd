// ABOUTME: Plan store abstraction for saved optimization results
// ABOUTME: In-memory and MongoDB implementations share the PlanStore interface

package store

import (
	"context"
	"errors"

	"github.com/markalston/vegan-menu-optimizer/models"
)

// ErrNotFound is returned when a plan id is unknown
var ErrNotFound = errors.New("plan not found")

// DefaultListLimit bounds List when the caller passes a non-positive limit
const DefaultListLimit = 20

// PlanStore persists optimization results
type PlanStore interface {
	Save(ctx context.Context, plan *models.SavedPlan) error
	Get(ctx context.Context, id string) (*models.SavedPlan, error)
	// List returns the most recent plans first
	List(ctx context.Context, limit int) ([]models.PlanSummary, error)
	Kind() string
}
