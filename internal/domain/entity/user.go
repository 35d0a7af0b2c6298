// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user of the expense tracker.
type User struct {
	ID                 uuid.UUID
	Email              string
	Name               string
	PasswordHash       string
	EmailNotifications bool
	BudgetAlerts       bool
	RecurringReminders bool
	TermsAcceptedAt    time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewUser creates a new User with notifications enabled.
func NewUser(email, name, passwordHash string, termsAcceptedAt time.Time) *User {
	now := time.Now().UTC()
	return &User{
		ID:                 uuid.New(),
		Email:              email,
		Name:               name,
		PasswordHash:       passwordHash,
		EmailNotifications: true,
		BudgetAlerts:       true,
		RecurringReminders: true,
		TermsAcceptedAt:    termsAcceptedAt,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// WantsBudgetAlerts reports whether budget alert emails may be sent.
func (u *User) WantsBudgetAlerts() bool {
	return u.EmailNotifications && u.BudgetAlerts
}

// WantsRecurringReminders reports whether recurring reminder emails may be sent.
func (u *User) WantsRecurringReminders() bool {
	return u.EmailNotifications && u.RecurringReminders
}
