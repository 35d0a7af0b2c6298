// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ListExpensesInput represents the input for listing expenses.
type ListExpensesInput struct {
	UserID    uuid.UUID
	StartDate *valueobject.Date
	EndDate   *valueobject.Date
	Category  string
}

// ListExpensesOutput represents the output of listing expenses.
type ListExpensesOutput struct {
	Expenses []*entity.Expense
	Total    string
}

// ListExpensesUseCase handles expense listing logic.
type ListExpensesUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewListExpensesUseCase creates a new ListExpensesUseCase instance.
func NewListExpensesUseCase(expenseRepo adapter.ExpenseRepository) *ListExpensesUseCase {
	return &ListExpensesUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute lists the user's expenses, newest first.
func (uc *ListExpensesUseCase) Execute(ctx context.Context, input ListExpensesInput) (*ListExpensesOutput, error) {
	if err := validateRange(input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Category:  strings.TrimSpace(input.Category),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	return &ListExpensesOutput{
		Expenses: expenses,
		Total:    service.Sum(expenses).String(),
	}, nil
}

func validateRange(start, end *valueobject.Date) error {
	if start != nil && end != nil && end.Before(*start) {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseRange,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}
