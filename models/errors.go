// ABOUTME: Domain error types for configuration failures and degraded enrichment
// ABOUTME: Callers distinguish them with errors.As

package models

import "fmt"

// ConfigurationError is fatal for a run: invalid biometric input, invalid
// preferences, or a meal category left empty after constraint filtering.
// It is raised before the optimization loop starts and never retried.
type ConfigurationError struct {
	Field  string
	Reason string
}

// NewConfigurationError creates a ConfigurationError for field
func NewConfigurationError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// DegradedEnrichmentError records a failed recipe detail lookup for an item
// already chosen for the menu. Recovered locally with placeholder data.
type DegradedEnrichmentError struct {
	ItemID string
	Err    error
}

func (e *DegradedEnrichmentError) Error() string {
	return fmt.Sprintf("recipe enrichment degraded for %s: %v", e.ItemID, e.Err)
}

func (e *DegradedEnrichmentError) Unwrap() error {
	return e.Err
}
