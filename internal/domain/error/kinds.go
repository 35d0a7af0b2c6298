// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "errors"

// Error kinds shared by every feature. Feature sentinels wrap one of these,
// so errors.Is(err, ErrInvalidInput) holds for any validation failure.
var (
	// ErrInvalidInput is returned for malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentState is returned when stored records reference each other incorrectly.
	ErrInconsistentState = errors.New("inconsistent state")
)
