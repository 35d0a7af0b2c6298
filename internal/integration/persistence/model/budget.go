package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// BudgetModel represents the budgets table in the database.
type BudgetModel struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey"`
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Name            string           `gorm:"type:varchar(100);not null"`
	Amount          decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	StartDate       valueobject.Date `gorm:"not null"`
	EndDate         *valueobject.Date
	IsActive        bool      `gorm:"not null;default:false;index"`
	LastAlertStatus string    `gorm:"type:varchar(20);not null;default:'safe'"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	status := entity.BudgetStatusLevel(m.LastAlertStatus)
	if status == "" {
		status = entity.BudgetStatusSafe
	}

	return &entity.Budget{
		ID:              m.ID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		IsActive:        m.IsActive,
		LastAlertStatus: status,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// BudgetModelFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetModelFromEntity(b *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:              b.ID,
		UserID:          b.UserID,
		Name:            b.Name,
		Amount:          b.Amount,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		IsActive:        b.IsActive,
		LastAlertStatus: string(b.LastAlertStatus),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
