package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateRecurringExpenseRequest represents the request body for a recurring expense definition.
// Exactly one of interval_days and execution_dates must be set.
type CreateRecurringExpenseRequest struct {
	Amount               decimal.Decimal   `json:"amount"`
	Description          string            `json:"description" binding:"max=255"`
	Category             string            `json:"category" binding:"max=100"`
	IntervalDays         *int              `json:"interval_days,omitempty"`
	ExecutionDates       []int             `json:"execution_dates,omitempty"`
	StartDate            valueobject.Date  `json:"start_date"`
	EndDate              *valueobject.Date `json:"end_date,omitempty"`
	RequiresConfirmation *bool             `json:"requires_confirmation,omitempty"`
	NotifyDaysBefore     *int              `json:"notify_days_before,omitempty"`
}

// UpdateRecurringExpenseRequest represents the request body for a definition update.
type UpdateRecurringExpenseRequest struct {
	Amount               *decimal.Decimal  `json:"amount,omitempty"`
	Description          *string           `json:"description,omitempty" binding:"omitempty,max=255"`
	Category             *string           `json:"category,omitempty" binding:"omitempty,max=100"`
	IntervalDays         *int              `json:"interval_days,omitempty"`
	ExecutionDates       *[]int            `json:"execution_dates,omitempty"`
	StartDate            *valueobject.Date `json:"start_date,omitempty"`
	EndDate              *valueobject.Date `json:"end_date,omitempty"`
	ClearEndDate         bool              `json:"clear_end_date,omitempty"`
	IsActive             *bool             `json:"is_active,omitempty"`
	RequiresConfirmation *bool             `json:"requires_confirmation,omitempty"`
	NotifyDaysBefore     *int              `json:"notify_days_before,omitempty"`
}

// ConfirmPendingRequest represents the optional body of a pending confirmation.
type ConfirmPendingRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty"`
}

// RecurringExpenseResponse represents a recurring expense definition.
type RecurringExpenseResponse struct {
	ID                   string            `json:"id"`
	Amount               decimal.Decimal   `json:"amount"`
	Description          string            `json:"description"`
	Category             string            `json:"category"`
	IntervalDays         *int              `json:"interval_days,omitempty"`
	ExecutionDates       []int             `json:"execution_dates,omitempty"`
	StartDate            valueobject.Date  `json:"start_date"`
	EndDate              *valueobject.Date `json:"end_date,omitempty"`
	NextDueDate          valueobject.Date  `json:"next_due_date"`
	IsActive             bool              `json:"is_active"`
	RequiresConfirmation bool              `json:"requires_confirmation"`
	LastExecuted         *valueobject.Date `json:"last_executed,omitempty"`
	NotifyDaysBefore     int               `json:"notify_days_before"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// RecurringExpenseListResponse represents the user's definitions.
type RecurringExpenseListResponse struct {
	RecurringExpenses []RecurringExpenseResponse `json:"recurring_expenses"`
}

// PendingExpenseResponse represents one pending occurrence.
type PendingExpenseResponse struct {
	ID                 string           `json:"id"`
	RecurringExpenseID string           `json:"recurring_expense_id"`
	ScheduledDate      valueobject.Date `json:"scheduled_date"`
	Amount             decimal.Decimal  `json:"amount"`
	Description        string           `json:"description"`
	Category           string           `json:"category"`
	Status             string           `json:"status"`
	DaysOverdue        int              `json:"days_overdue,omitempty"`
	ExpenseID          *string          `json:"expense_id,omitempty"`
	ResolvedAt         *time.Time       `json:"resolved_at,omitempty"`
}

// PendingListResponse represents pending occurrences and any rows that could not be shown.
type PendingListResponse struct {
	Pending  []PendingExpenseResponse `json:"pending"`
	Warnings []string                 `json:"warnings"`
}

// MaterializeResponse reports the result of a materialization run.
type MaterializeResponse struct {
	Created  []PendingExpenseResponse `json:"created"`
	Inserted int                      `json:"inserted"`
	Advanced int                      `json:"advanced"`
}

// ConfirmPendingResponse represents a confirmed occurrence and the expense it produced.
type ConfirmPendingResponse struct {
	Pending PendingExpenseResponse `json:"pending"`
	Expense ExpenseResponse        `json:"expense"`
}

// ToRecurringExpenseResponse converts a domain RecurringExpense entity.
func ToRecurringExpenseResponse(def *entity.RecurringExpense) RecurringExpenseResponse {
	return RecurringExpenseResponse{
		ID:                   def.ID.String(),
		Amount:               def.Amount,
		Description:          def.Description,
		Category:             def.Category,
		IntervalDays:         def.IntervalDays,
		ExecutionDates:       def.ExecutionDates.Ints(),
		StartDate:            def.StartDate,
		EndDate:              def.EndDate,
		NextDueDate:          def.NextDueDate,
		IsActive:             def.IsActive,
		RequiresConfirmation: def.RequiresConfirmation,
		LastExecuted:         def.LastExecuted,
		NotifyDaysBefore:     def.NotifyDaysBefore,
		CreatedAt:            def.CreatedAt,
		UpdatedAt:            def.UpdatedAt,
	}
}

// ToRecurringExpenseResponses converts a slice of definitions.
func ToRecurringExpenseResponses(defs []*entity.RecurringExpense) []RecurringExpenseResponse {
	out := make([]RecurringExpenseResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, ToRecurringExpenseResponse(def))
	}
	return out
}

// ToPendingExpenseResponse converts a stored pending row.
func ToPendingExpenseResponse(p *entity.PendingRecurringExpense) PendingExpenseResponse {
	resp := PendingExpenseResponse{
		ID:                 p.ID.String(),
		RecurringExpenseID: p.RecurringExpenseID.String(),
		ScheduledDate:      p.ScheduledDate,
		Amount:             p.Amount,
		Description:        p.Description,
		Category:           p.Category,
		Status:             string(p.Status),
		ResolvedAt:         p.ResolvedAt,
	}
	if p.ExpenseID != nil {
		id := p.ExpenseID.String()
		resp.ExpenseID = &id
	}
	return resp
}

// ToPendingViewResponses converts classified pending rows.
func ToPendingViewResponses(views []entity.PendingView) []PendingExpenseResponse {
	out := make([]PendingExpenseResponse, 0, len(views))
	for _, v := range views {
		resp := ToPendingExpenseResponse(v.Pending)
		resp.Status = string(v.Status)
		resp.DaysOverdue = v.DaysOverdue
		out = append(out, resp)
	}
	return out
}

// ToPendingExpenseResponses converts a slice of stored pending rows.
func ToPendingExpenseResponses(rows []*entity.PendingRecurringExpense) []PendingExpenseResponse {
	out := make([]PendingExpenseResponse, 0, len(rows))
	for _, p := range rows {
		out = append(out, ToPendingExpenseResponse(p))
	}
	return out
}
