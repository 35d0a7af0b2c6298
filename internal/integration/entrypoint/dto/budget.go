package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateBudgetRequest represents the request body for budget creation.
// Without start_date the period is derived from period (monthly by default) around today.
type CreateBudgetRequest struct {
	Name      string            `json:"name" binding:"max=100"`
	Amount    decimal.Decimal   `json:"amount"`
	StartDate *valueobject.Date `json:"start_date,omitempty"`
	EndDate   *valueobject.Date `json:"end_date,omitempty"`
	Period    string            `json:"period,omitempty" binding:"omitempty,oneof=weekly monthly quarterly"`
	Activate  *bool             `json:"activate,omitempty"`
}

// UpdateBudgetRequest represents the request body for budget update.
type UpdateBudgetRequest struct {
	Name         *string           `json:"name,omitempty" binding:"omitempty,max=100"`
	Amount       *decimal.Decimal  `json:"amount,omitempty"`
	StartDate    *valueobject.Date `json:"start_date,omitempty"`
	EndDate      *valueobject.Date `json:"end_date,omitempty"`
	ClearEndDate bool              `json:"clear_end_date,omitempty"`
	IsActive     *bool             `json:"is_active,omitempty"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Amount    decimal.Decimal   `json:"amount"`
	StartDate valueobject.Date  `json:"start_date"`
	EndDate   *valueobject.Date `json:"end_date,omitempty"`
	IsActive  bool              `json:"is_active"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// BudgetListResponse represents the user's budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetStatusResponse represents the computed status of a budget.
type BudgetStatusResponse struct {
	Budget                 BudgetResponse  `json:"budget"`
	Spent                  decimal.Decimal `json:"spent"`
	Remaining              decimal.Decimal `json:"remaining"`
	Percentage             decimal.Decimal `json:"percentage"`
	Status                 string          `json:"status"`
	DaysElapsed            int             `json:"days_elapsed"`
	DaysRemaining          int             `json:"days_remaining"`
	TotalDays              int             `json:"total_days"`
	AverageDailySpending   decimal.Decimal `json:"average_daily_spending"`
	RecommendedDailyLimit  decimal.Decimal `json:"recommended_daily_limit"`
	ProjectedTotal         decimal.Decimal `json:"projected_total"`
	EmergencyBufferPercent int             `json:"emergency_buffer_percent"`
	EmergencyBufferAmount  decimal.Decimal `json:"emergency_buffer_amount"`
}

// ToBudgetResponse converts a domain Budget entity to a BudgetResponse DTO.
func ToBudgetResponse(budget *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        budget.ID.String(),
		Name:      budget.Name,
		Amount:    budget.Amount,
		StartDate: budget.StartDate,
		EndDate:   budget.EndDate,
		IsActive:  budget.IsActive,
		CreatedAt: budget.CreatedAt,
		UpdatedAt: budget.UpdatedAt,
	}
}

// ToBudgetStatusResponse converts a computed status and the user's emergency buffer.
func ToBudgetStatusResponse(status entity.BudgetStatus, bufferPercent int, bufferAmount decimal.Decimal) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budget:                 ToBudgetResponse(status.Budget),
		Spent:                  status.Spent,
		Remaining:              status.Remaining,
		Percentage:             status.Percentage,
		Status:                 string(status.Status),
		DaysElapsed:            status.DaysElapsed,
		DaysRemaining:          status.DaysRemaining,
		TotalDays:              status.TotalDays,
		AverageDailySpending:   status.AverageDailySpending,
		RecommendedDailyLimit:  status.RecommendedDailyLimit,
		ProjectedTotal:         status.ProjectedTotal,
		EmergencyBufferPercent: bufferPercent,
		EmergencyBufferAmount:  bufferAmount,
	}
}
