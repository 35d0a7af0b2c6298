// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetBreakdownInput represents the input for a category breakdown.
// Missing bounds default to the current calendar month.
type GetBreakdownInput struct {
	UserID    uuid.UUID
	StartDate *valueobject.Date
	EndDate   *valueobject.Date
}

// GetBreakdownOutput represents the category breakdown of a date range.
type GetBreakdownOutput struct {
	StartDate  valueobject.Date
	EndDate    valueobject.Date
	Total      decimal.Decimal
	Count      int
	Categories []entity.CategoryTotal
}

// GetBreakdownUseCase aggregates a user's expenses by category.
type GetBreakdownUseCase struct {
	expenseRepo adapter.ExpenseRepository
	clock       adapter.Clock
}

// NewGetBreakdownUseCase creates a new GetBreakdownUseCase instance.
func NewGetBreakdownUseCase(expenseRepo adapter.ExpenseRepository, clock adapter.Clock) *GetBreakdownUseCase {
	return &GetBreakdownUseCase{
		expenseRepo: expenseRepo,
		clock:       clock,
	}
}

// Execute computes the breakdown.
func (uc *GetBreakdownUseCase) Execute(ctx context.Context, input GetBreakdownInput) (*GetBreakdownOutput, error) {
	today := valueobject.DateOf(uc.clock.Now())
	start, end := today.FirstOfMonth(), today.EndOfMonth()
	if input.StartDate != nil {
		start = *input.StartDate
	}
	if input.EndDate != nil {
		end = *input.EndDate
	}
	if err := validateRange(&start, &end); err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	return &GetBreakdownOutput{
		StartDate:  start,
		EndDate:    end,
		Total:      service.SumInRange(expenses, start, end),
		Count:      len(expenses),
		Categories: service.AggregateByCategory(expenses),
	}, nil
}
