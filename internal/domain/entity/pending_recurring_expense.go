package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// PendingStatus is the lifecycle state of a materialized recurring expense.
type PendingStatus string

const (
	PendingStatusPending   PendingStatus = "pending"
	PendingStatusConfirmed PendingStatus = "confirmed"
	PendingStatusSkipped   PendingStatus = "skipped"
	// PendingStatusOverdue is computed when reading and never stored.
	PendingStatusOverdue PendingStatus = "overdue"
)

// PendingRecurringExpense is one occurrence of a recurring expense awaiting resolution.
type PendingRecurringExpense struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	RecurringExpenseID uuid.UUID
	ScheduledDate      valueobject.Date
	Amount             decimal.Decimal
	Description        string
	Category           string
	Status             PendingStatus
	ExpenseID          *uuid.UUID
	ResolvedAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewPendingRecurringExpense materializes one occurrence of def scheduled on date.
func NewPendingRecurringExpense(def *RecurringExpense, date valueobject.Date) *PendingRecurringExpense {
	now := time.Now().UTC()

	return &PendingRecurringExpense{
		ID:                 uuid.New(),
		UserID:             def.UserID,
		RecurringExpenseID: def.ID,
		ScheduledDate:      date,
		Amount:             def.Amount,
		Description:        def.Description,
		Category:           def.Category,
		Status:             PendingStatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// IsPending reports whether the row still awaits confirmation or skipping.
func (p *PendingRecurringExpense) IsPending() bool {
	return p.Status == PendingStatusPending
}

// Confirm marks the row confirmed and links the created expense.
func (p *PendingRecurringExpense) Confirm(expenseID uuid.UUID) {
	now := time.Now().UTC()
	p.Status = PendingStatusConfirmed
	p.ExpenseID = &expenseID
	p.ResolvedAt = &now
	p.UpdatedAt = now
}

// Skip marks the row skipped. Skipped rows are terminal.
func (p *PendingRecurringExpense) Skip() {
	now := time.Now().UTC()
	p.Status = PendingStatusSkipped
	p.ResolvedAt = &now
	p.UpdatedAt = now
}

// PendingView is a pending row classified against today.
type PendingView struct {
	Pending     *PendingRecurringExpense
	Status      PendingStatus
	DaysOverdue int
}
