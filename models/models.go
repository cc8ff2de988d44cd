// ABOUTME: API request and response envelopes for the menu optimizer
// ABOUTME: JSON-serializable structures shared by handlers, store and CLI

package models

import "time"

// OptimizeRequest is the inbound optimizeMenu payload
type OptimizeRequest struct {
	Profile      UserProfile         `json:"profile"`
	Preferences  Preferences         `json:"preferences"`
	Restrictions DietaryRestrictions `json:"restrictions"`
}

// OptimizeResponse is the optimizeMenu result
type OptimizeResponse struct {
	ID                string             `json:"id"`
	Menu              Menu               `json:"menu"`
	Analysis          MenuAnalysis       `json:"analysis"`
	Requirements      RequirementTargets `json:"requirements"`
	OptimizationScore int                `json:"optimization_score"` // 0-100
	Metadata          Metadata           `json:"metadata"`
}

// Metadata describes how a menu was produced
type Metadata struct {
	Timestamp      time.Time       `json:"timestamp"`
	Preset         OptimizerPreset `json:"preset"`
	Seed           uint64          `json:"seed"`
	Generations    int             `json:"generations"`
	PopulationSize int             `json:"population_size"`
	Interrupted    bool            `json:"interrupted"`
	DurationMs     int64           `json:"duration_ms"`
	FitnessHistory []float64       `json:"fitness_history,omitempty"`
	CandidateItems map[string]int  `json:"candidate_items,omitempty"` // per category after filtering
	Enriched       bool            `json:"enriched"`
}

// SavedPlan is a stored optimization result
type SavedPlan struct {
	ID           string              `json:"id" bson:"_id"`
	CreatedAt    time.Time           `json:"created_at" bson:"created_at"`
	Profile      UserProfile         `json:"profile" bson:"profile"`
	Preferences  Preferences         `json:"preferences" bson:"preferences"`
	Restrictions DietaryRestrictions `json:"restrictions" bson:"restrictions"`
	Response     OptimizeResponse    `json:"response" bson:"response"`
}

// PlanSummary is the list view of a stored plan
type PlanSummary struct {
	ID                string          `json:"id"`
	CreatedAt         time.Time       `json:"created_at"`
	Days              int             `json:"days"`
	People            int             `json:"people"`
	OptimizationScore int             `json:"optimization_score"`
	EcoRating         string          `json:"eco_rating"`
	Preset            OptimizerPreset `json:"preset"`
}

// Summary builds the list view of p
func (p SavedPlan) Summary() PlanSummary {
	return PlanSummary{
		ID:                p.ID,
		CreatedAt:         p.CreatedAt,
		Days:              p.Preferences.Days,
		People:            p.Preferences.People,
		OptimizationScore: p.Response.OptimizationScore,
		EcoRating:         p.Response.Analysis.EcoRating,
		Preset:            p.Response.Metadata.Preset,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code"`
}
