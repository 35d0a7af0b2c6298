// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// CategorySuggestion is a suggested category for an expense description.
type CategorySuggestion struct {
	Category   string
	Confidence float64
	Reasoning  string
}

// CategorySuggester suggests a category for an expense description.
type CategorySuggester interface {
	// Suggest picks a category for description, preferring one of knownCategories.
	Suggest(ctx context.Context, description string, knownCategories []string) (*CategorySuggestion, error)

	// IsAvailable checks if the service is configured.
	IsAvailable() bool
}
