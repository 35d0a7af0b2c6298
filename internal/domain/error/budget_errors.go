// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found or belongs to another user.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrNoActiveBudget is returned when the user has no active budget.
	ErrNoActiveBudget = errors.New("no active budget")

	// ErrInvalidBudgetAmount is returned when the budget amount is zero or negative.
	ErrInvalidBudgetAmount = fmt.Errorf("%w: budget amount must be positive", ErrInvalidInput)

	// ErrInvalidBudgetPeriod is returned when the end date is before the start date.
	ErrInvalidBudgetPeriod = fmt.Errorf("%w: budget end date is before start date", ErrInvalidInput)
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidBudgetPeriod BudgetErrorCode = "BUD-010002"
	ErrCodeInvalidBudgetDate   BudgetErrorCode = "BUD-010003"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BUD-010004"

	// Lookup errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BUD-020001"
	ErrCodeNoActiveBudget BudgetErrorCode = "BUD-020002"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
