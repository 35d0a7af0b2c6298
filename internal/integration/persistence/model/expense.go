package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_expenses_user_date,priority:1"`
	Amount             decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Category           string           `gorm:"type:varchar(100);not null;index"`
	Date               valueobject.Date `gorm:"not null;index:idx_expenses_user_date,priority:2"`
	Description        string           `gorm:"type:varchar(255)"`
	RecurringExpenseID *uuid.UUID       `gorm:"type:uuid;index"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`
	DeletedAt          gorm.DeletedAt   `gorm:"index"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:                 m.ID,
		UserID:             m.UserID,
		Amount:             m.Amount,
		Category:           m.Category,
		Date:               m.Date,
		Description:        m.Description,
		RecurringExpenseID: m.RecurringExpenseID,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// ExpenseModelFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseModelFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:                 e.ID,
		UserID:             e.UserID,
		Amount:             e.Amount,
		Category:           e.Category,
		Date:               e.Date,
		Description:        e.Description,
		RecurringExpenseID: e.RecurringExpenseID,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}
