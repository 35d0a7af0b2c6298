// Package expense contains expense-related use cases.
package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateExpenseInput represents the input for expense creation.
type CreateExpenseInput struct {
	UserID      uuid.UUID
	Amount      decimal.Decimal
	Category    string
	Date        valueobject.Date
	Description string
}

// CreateExpenseOutput represents the output of expense creation.
type CreateExpenseOutput struct {
	Expense *entity.Expense
}

// CreateExpenseUseCase handles expense creation logic.
type CreateExpenseUseCase struct {
	expenseRepo adapter.ExpenseRepository
}

// NewCreateExpenseUseCase creates a new CreateExpenseUseCase instance.
func NewCreateExpenseUseCase(expenseRepo adapter.ExpenseRepository) *CreateExpenseUseCase {
	return &CreateExpenseUseCase{
		expenseRepo: expenseRepo,
	}
}

// Execute performs the expense creation.
func (uc *CreateExpenseUseCase) Execute(ctx context.Context, input CreateExpenseInput) (*CreateExpenseOutput, error) {
	category := strings.TrimSpace(input.Category)
	if err := validateExpense(input.Amount, category, input.Date); err != nil {
		return nil, err
	}

	expense := entity.NewExpense(input.UserID, input.Amount, category, input.Date, strings.TrimSpace(input.Description))
	if err := uc.expenseRepo.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &CreateExpenseOutput{Expense: expense}, nil
}

func validateExpense(amount decimal.Decimal, category string, date valueobject.Date) error {
	if amount.Sign() <= 0 {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	if category == "" {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeMissingExpenseCategory,
			"category is required",
			domainerror.ErrCategoryRequired,
		)
	}
	if date.IsZero() {
		return domainerror.NewExpenseError(
			domainerror.ErrCodeInvalidExpenseDate,
			"date is required",
			domainerror.ErrInvalidDate,
		)
	}
	return nil
}

// findOwnedExpense loads an expense and hides other users' expenses as not found.
func findOwnedExpense(ctx context.Context, repo adapter.ExpenseRepository, id, userID uuid.UUID) (*entity.Expense, error) {
	expense, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrExpenseNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find expense: %w", err)
	}
	if expense.UserID != userID {
		return nil, notFound()
	}
	return expense, nil
}

func notFound() error {
	return domainerror.NewExpenseError(
		domainerror.ErrCodeExpenseNotFound,
		"expense not found",
		domainerror.ErrExpenseNotFound,
	)
}
