// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found or belongs to another user.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrInvalidAmount is returned when an amount is zero or negative.
	ErrInvalidAmount = fmt.Errorf("%w: amount must be positive", ErrInvalidInput)

	// ErrInvalidDate is returned when a date is not a valid YYYY-MM-DD calendar date.
	ErrInvalidDate = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)

	// ErrInvalidDateRange is returned when a range ends before it starts.
	ErrInvalidDateRange = fmt.Errorf("%w: end date is before start date", ErrInvalidInput)

	// ErrCategoryRequired is returned when an expense has no category.
	ErrCategoryRequired = fmt.Errorf("%w: category is required", ErrInvalidInput)

	// ErrDescriptionRequired is returned when a category suggestion has nothing to work with.
	ErrDescriptionRequired = fmt.Errorf("%w: description is required", ErrInvalidInput)
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount   ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDate     ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidExpenseRange    ExpenseErrorCode = "EXP-010003"
	ErrCodeMissingExpenseCategory ExpenseErrorCode = "EXP-010004"
	ErrCodeMissingExpenseFields   ExpenseErrorCode = "EXP-010005"

	// Lookup errors (02XXXX)
	ErrCodeExpenseNotFound ExpenseErrorCode = "EXP-020001"

	// Suggestion errors (03XXXX)
	ErrCodeSuggestionUnavailable ExpenseErrorCode = "EXP-030001"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
