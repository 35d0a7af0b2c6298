// Package prediction contains the spending prediction use case.
package prediction

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetPredictionInput represents the input for a spending prediction.
type GetPredictionInput struct {
	UserID uuid.UUID
}

// GetPredictionOutput holds the prediction and the day it was computed for.
type GetPredictionOutput struct {
	Date       valueobject.Date
	Prediction entity.SpendingPrediction
}

// GetPredictionUseCase runs the spending heuristics over the user's recent expenses.
type GetPredictionUseCase struct {
	expenseRepo adapter.ExpenseRepository
	budgetRepo  adapter.BudgetRepository
	clock       adapter.Clock
}

// NewGetPredictionUseCase creates a new GetPredictionUseCase instance.
func NewGetPredictionUseCase(
	expenseRepo adapter.ExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	clock adapter.Clock,
) *GetPredictionUseCase {
	return &GetPredictionUseCase{
		expenseRepo: expenseRepo,
		budgetRepo:  budgetRepo,
		clock:       clock,
	}
}

// Execute computes the prediction at today.
func (uc *GetPredictionUseCase) Execute(ctx context.Context, input GetPredictionInput) (*GetPredictionOutput, error) {
	today := valueobject.DateOf(uc.clock.Now())
	start := service.PredictionLookbackStart(today)

	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &today,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	var status *entity.BudgetStatus
	active, err := budget.FindActiveBudget(ctx, uc.budgetRepo, input.UserID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		computed, err := budget.ComputeBudgetStatus(ctx, uc.expenseRepo, active, today)
		if err != nil {
			return nil, err
		}
		status = &computed
	}

	return &GetPredictionOutput{
		Date:       today,
		Prediction: service.Predict(expenses, status, today),
	}, nil
}
