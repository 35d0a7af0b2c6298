package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// RecurringExpenseModel represents the recurring_expenses table in the database.
// ExecutionDates is stored in its array literal form ("{1,15}") so SQLite can hold it too.
type RecurringExpenseModel struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;index"`
	Amount               decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Description          string           `gorm:"type:varchar(255)"`
	Category             string           `gorm:"type:varchar(100);not null"`
	IntervalDays         *int             `gorm:"type:integer"`
	ExecutionDates       pq.Int64Array    `gorm:"type:text"`
	StartDate            valueobject.Date `gorm:"not null"`
	EndDate              *valueobject.Date
	NextDueDate          valueobject.Date `gorm:"not null;index"`
	IsActive             bool             `gorm:"not null;index"`
	RequiresConfirmation bool             `gorm:"not null"`
	LastExecuted         *valueobject.Date
	NotifyDaysBefore     int `gorm:"not null"`
	LastReminderFor      *valueobject.Date
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringExpenseModel.
func (RecurringExpenseModel) TableName() string {
	return "recurring_expenses"
}

// ToEntity converts a RecurringExpenseModel to a domain RecurringExpense entity.
// Stored days were validated on write, so they are taken as they are.
func (m *RecurringExpenseModel) ToEntity() *entity.RecurringExpense {
	days := make(valueobject.DaySet, 0, len(m.ExecutionDates))
	for _, d := range m.ExecutionDates {
		days = append(days, int(d))
	}

	return &entity.RecurringExpense{
		ID:                   m.ID,
		UserID:               m.UserID,
		Amount:               m.Amount,
		Description:          m.Description,
		Category:             m.Category,
		IntervalDays:         m.IntervalDays,
		ExecutionDates:       days,
		StartDate:            m.StartDate,
		EndDate:              m.EndDate,
		NextDueDate:          m.NextDueDate,
		IsActive:             m.IsActive,
		RequiresConfirmation: m.RequiresConfirmation,
		LastExecuted:         m.LastExecuted,
		NotifyDaysBefore:     m.NotifyDaysBefore,
		LastReminderFor:      m.LastReminderFor,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

// RecurringExpenseModelFromEntity creates a RecurringExpenseModel from a domain entity.
func RecurringExpenseModelFromEntity(r *entity.RecurringExpense) *RecurringExpenseModel {
	days := make(pq.Int64Array, 0, len(r.ExecutionDates))
	for _, d := range r.ExecutionDates {
		days = append(days, int64(d))
	}

	return &RecurringExpenseModel{
		ID:                   r.ID,
		UserID:               r.UserID,
		Amount:               r.Amount,
		Description:          r.Description,
		Category:             r.Category,
		IntervalDays:         r.IntervalDays,
		ExecutionDates:       days,
		StartDate:            r.StartDate,
		EndDate:              r.EndDate,
		NextDueDate:          r.NextDueDate,
		IsActive:             r.IsActive,
		RequiresConfirmation: r.RequiresConfirmation,
		LastExecuted:         r.LastExecuted,
		NotifyDaysBefore:     r.NotifyDaysBefore,
		LastReminderFor:      r.LastReminderFor,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// PendingExpenseModel represents the pending_recurring_expenses table in the database.
// The unique index makes one row per definition and scheduled date.
type PendingExpenseModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index"`
	RecurringExpenseID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_pending_definition_date,priority:1"`
	ScheduledDate      valueobject.Date `gorm:"not null;uniqueIndex:idx_pending_definition_date,priority:2"`
	Amount             decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Description        string           `gorm:"type:varchar(255)"`
	Category           string           `gorm:"type:varchar(100);not null"`
	Status             string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	ExpenseID          *uuid.UUID       `gorm:"type:uuid"`
	ResolvedAt         *time.Time
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the PendingExpenseModel.
func (PendingExpenseModel) TableName() string {
	return "pending_recurring_expenses"
}

// ToEntity converts a PendingExpenseModel to a domain PendingRecurringExpense entity.
func (m *PendingExpenseModel) ToEntity() *entity.PendingRecurringExpense {
	return &entity.PendingRecurringExpense{
		ID:                 m.ID,
		UserID:             m.UserID,
		RecurringExpenseID: m.RecurringExpenseID,
		ScheduledDate:      m.ScheduledDate,
		Amount:             m.Amount,
		Description:        m.Description,
		Category:           m.Category,
		Status:             entity.PendingStatus(m.Status),
		ExpenseID:          m.ExpenseID,
		ResolvedAt:         m.ResolvedAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// PendingExpenseModelFromEntity creates a PendingExpenseModel from a domain entity.
func PendingExpenseModelFromEntity(p *entity.PendingRecurringExpense) *PendingExpenseModel {
	return &PendingExpenseModel{
		ID:                 p.ID,
		UserID:             p.UserID,
		RecurringExpenseID: p.RecurringExpenseID,
		ScheduledDate:      p.ScheduledDate,
		Amount:             p.Amount,
		Description:        p.Description,
		Category:           p.Category,
		Status:             string(p.Status),
		ExpenseID:          p.ExpenseID,
		ResolvedAt:         p.ResolvedAt,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
