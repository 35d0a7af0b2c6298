// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Recurring expense domain errors.
var (
	// ErrRecurringExpenseNotFound is returned when a definition is not found or belongs to another user.
	ErrRecurringExpenseNotFound = errors.New("recurring expense not found")

	// ErrPendingExpenseNotFound is returned when a pending recurring expense is not found.
	ErrPendingExpenseNotFound = errors.New("pending recurring expense not found")

	// ErrPendingExpenseResolved is returned when confirming or skipping a row that is no longer pending.
	ErrPendingExpenseResolved = errors.New("pending recurring expense already resolved")

	// ErrOrphanPendingExpense is returned when a pending row references a missing definition.
	ErrOrphanPendingExpense = fmt.Errorf("%w: pending expense references a missing recurring expense", ErrInconsistentState)

	// ErrInvalidInterval is returned when the interval is not one of 7, 15 or 30 days.
	ErrInvalidInterval = fmt.Errorf("%w: interval must be 7, 15 or 30 days", ErrInvalidInput)

	// ErrInvalidExecutionDay is returned when a day of month is outside 1-31.
	ErrInvalidExecutionDay = fmt.Errorf("%w: execution dates must be between 1 and 31", ErrInvalidInput)

	// ErrMissingSchedule is returned when neither an interval nor execution dates are given.
	ErrMissingSchedule = fmt.Errorf("%w: an interval or execution dates are required", ErrInvalidInput)

	// ErrInvalidNotifyDays is returned when the reminder lead time is negative.
	ErrInvalidNotifyDays = fmt.Errorf("%w: notify days before must not be negative", ErrInvalidInput)

	// ErrFutureMaterializationDate is returned when a run is asked to materialize past today.
	ErrFutureMaterializationDate = fmt.Errorf("%w: materialization date must not be after today", ErrInvalidInput)

	// ErrMaterializationInProgress is returned when another run holds the user's lock.
	ErrMaterializationInProgress = errors.New("materialization already in progress")
)

// RecurringErrorCode defines error codes for recurring expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRecurringAmount RecurringErrorCode = "REC-010001"
	ErrCodeInvalidInterval        RecurringErrorCode = "REC-010002"
	ErrCodeInvalidExecutionDay    RecurringErrorCode = "REC-010003"
	ErrCodeMissingSchedule        RecurringErrorCode = "REC-010004"
	ErrCodeInvalidRecurringDate   RecurringErrorCode = "REC-010005"
	ErrCodeInvalidNotifyDays      RecurringErrorCode = "REC-010006"
	ErrCodeMissingRecurringFields RecurringErrorCode = "REC-010007"

	// Lookup errors (02XXXX)
	ErrCodeRecurringNotFound RecurringErrorCode = "REC-020001"
	ErrCodePendingNotFound   RecurringErrorCode = "REC-020002"

	// State errors (03XXXX)
	ErrCodePendingResolved           RecurringErrorCode = "REC-030001"
	ErrCodeMaterializationInProgress RecurringErrorCode = "REC-030002"
	ErrCodeOrphanPendingExpense      RecurringErrorCode = "REC-030003"
)

// RecurringError represents a recurring expense error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
