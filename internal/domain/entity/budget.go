// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Budget represents a spending limit over a period.
// At most one budget per user is active at a time.
type Budget struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Name            string
	Amount          decimal.Decimal
	StartDate       valueobject.Date
	EndDate         *valueobject.Date // Absent means the end of StartDate's month
	IsActive        bool
	LastAlertStatus BudgetStatusLevel // Status of the last queued budget alert
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewBudget creates a new active Budget entity.
func NewBudget(userID uuid.UUID, name string, amount decimal.Decimal, startDate valueobject.Date, endDate *valueobject.Date) *Budget {
	now := time.Now().UTC()

	return &Budget{
		ID:              uuid.New(),
		UserID:          userID,
		Name:            name,
		Amount:          amount,
		StartDate:       startDate,
		EndDate:         endDate,
		IsActive:        true,
		LastAlertStatus: BudgetStatusSafe,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// EffectiveEndDate returns EndDate, or the last day of StartDate's month when absent.
func (b *Budget) EffectiveEndDate() valueobject.Date {
	if b.EndDate != nil && !b.EndDate.IsZero() {
		return *b.EndDate
	}
	return b.StartDate.EndOfMonth()
}
