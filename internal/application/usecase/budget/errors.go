// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func notFound() error {
	return domainerror.NewBudgetError(
		domainerror.ErrCodeBudgetNotFound,
		"budget not found",
		domainerror.ErrBudgetNotFound,
	)
}

func validateBudget(amount decimal.Decimal, start valueobject.Date, end *valueobject.Date) error {
	if amount.Sign() <= 0 {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetAmount,
			"budget amount must be greater than zero",
			domainerror.ErrInvalidBudgetAmount,
		)
	}
	if start.IsZero() {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetDate,
			"start date is required",
			domainerror.ErrInvalidDate,
		)
	}
	if end != nil && end.Before(start) {
		return domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidBudgetPeriod,
			"end date must not be before start date",
			domainerror.ErrInvalidBudgetPeriod,
		)
	}
	return nil
}

// findOwnedBudget loads a budget and hides other users' budgets as not found.
func findOwnedBudget(ctx context.Context, repo adapter.BudgetRepository, id, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrBudgetNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("failed to find budget: %w", err)
	}
	if budget.UserID != userID {
		return nil, notFound()
	}
	return budget, nil
}
