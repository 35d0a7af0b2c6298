// Package error defines domain-specific errors for the Expense Tracker application.
package error

import "fmt"

// Settings domain errors.
var (
	// ErrInvalidEmergencyBuffer is returned when the buffer is outside 0-50 percent.
	ErrInvalidEmergencyBuffer = fmt.Errorf("%w: emergency buffer must be between 0 and 50", ErrInvalidInput)

	// ErrInvalidCategoryLimit is returned when a category limit is zero or negative.
	ErrInvalidCategoryLimit = fmt.Errorf("%w: category limits must be positive", ErrInvalidInput)
)

// SettingsErrorCode defines error codes for settings errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidEmergencyBuffer SettingsErrorCode = "SET-010001"
	ErrCodeInvalidCategoryLimit   SettingsErrorCode = "SET-010002"
	ErrCodeMissingSettingsFields  SettingsErrorCode = "SET-010003"
)

// SettingsError represents a settings error with code and message.
type SettingsError struct {
	Code    SettingsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SettingsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SettingsError) Unwrap() error {
	return e.Err
}

// NewSettingsError creates a new SettingsError with the given code and message.
func NewSettingsError(code SettingsErrorCode, message string, err error) *SettingsError {
	return &SettingsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
