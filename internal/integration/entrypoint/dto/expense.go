package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateExpenseRequest represents the request body for expense creation.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal  `json:"amount"`
	Category    string           `json:"category" binding:"max=100"`
	Date        valueobject.Date `json:"date"`
	Description string           `json:"description" binding:"max=255"`
}

// UpdateExpenseRequest represents the request body for expense update.
type UpdateExpenseRequest struct {
	Amount      *decimal.Decimal  `json:"amount,omitempty"`
	Category    *string           `json:"category,omitempty" binding:"omitempty,max=100"`
	Date        *valueobject.Date `json:"date,omitempty"`
	Description *string           `json:"description,omitempty" binding:"omitempty,max=255"`
}

// SuggestCategoryRequest represents the request body for a category suggestion.
type SuggestCategoryRequest struct {
	Description string `json:"description" binding:"required,max=255"`
}

// ExpenseResponse represents an expense in API responses.
type ExpenseResponse struct {
	ID                 string           `json:"id"`
	Amount             decimal.Decimal  `json:"amount"`
	Category           string           `json:"category"`
	Date               valueobject.Date `json:"date"`
	Description        string           `json:"description"`
	RecurringExpenseID *string          `json:"recurring_expense_id,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// ExpenseListResponse represents a list of expenses with their total.
type ExpenseListResponse struct {
	Expenses []ExpenseResponse `json:"expenses"`
	Total    string            `json:"total"`
}

// CategoryTotalResponse represents one category of a breakdown.
type CategoryTotalResponse struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// BreakdownResponse represents the category breakdown of a date range.
type BreakdownResponse struct {
	StartDate  valueobject.Date        `json:"start_date"`
	EndDate    valueobject.Date        `json:"end_date"`
	Total      decimal.Decimal         `json:"total"`
	Count      int                     `json:"count"`
	Categories []CategoryTotalResponse `json:"categories"`
}

// SuggestCategoryResponse represents a category suggestion.
type SuggestCategoryResponse struct {
	Category   string  `json:"category,omitempty"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

// ToExpenseResponse converts a domain Expense entity to an ExpenseResponse DTO.
func ToExpenseResponse(expense *entity.Expense) ExpenseResponse {
	resp := ExpenseResponse{
		ID:          expense.ID.String(),
		Amount:      expense.Amount,
		Category:    expense.Category,
		Date:        expense.Date,
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		UpdatedAt:   expense.UpdatedAt,
	}
	if expense.RecurringExpenseID != nil {
		id := expense.RecurringExpenseID.String()
		resp.RecurringExpenseID = &id
	}
	return resp
}

// ToExpenseResponses converts a slice of expenses.
func ToExpenseResponses(expenses []*entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for _, e := range expenses {
		out = append(out, ToExpenseResponse(e))
	}
	return out
}

// ToCategoryTotalResponses converts category totals.
func ToCategoryTotalResponses(totals []entity.CategoryTotal) []CategoryTotalResponse {
	out := make([]CategoryTotalResponse, 0, len(totals))
	for _, t := range totals {
		out = append(out, CategoryTotalResponse{
			Category:   t.Category,
			Total:      t.Total,
			Count:      t.Count,
			Percentage: t.Percentage,
		})
	}
	return out
}
