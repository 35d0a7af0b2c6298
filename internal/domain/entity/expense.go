// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Expense represents a single logged expense.
type Expense struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	Amount             decimal.Decimal
	Category           string
	Date               valueobject.Date
	Description        string
	RecurringExpenseID *uuid.UUID // Set when created by confirming a pending recurring expense
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewExpense creates a new Expense entity.
func NewExpense(userID uuid.UUID, amount decimal.Decimal, category string, date valueobject.Date, description string) *Expense {
	now := time.Now().UTC()

	return &Expense{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
