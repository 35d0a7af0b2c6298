// Package error defines domain-specific errors for the Expense Tracker application.
package error

import (
	"errors"
	"fmt"
)

// Notification delivery errors.
var (
	// ErrEmailJobNotFound is returned when a queued notification no longer exists.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrInvalidTemplate is returned for a job whose template type has no renderer.
	ErrInvalidTemplate = errors.New("invalid email template")
)

// EmailErrorCode defines error codes for notification delivery.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Delivery errors (02XXXX). Permanent failures are not retried.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError is a coded failure raised while queueing, rendering or sending a notification.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}

// IsPermanentEmailFailure reports whether err carries a delivery failure that a retry cannot fix.
// Unknown templates count as permanent.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	switch emailErr.Code {
	case ErrCodePermanentEmailFailure, ErrCodeInvalidTemplate:
		return true
	}
	return false
}
