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
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetBudgetStatusInput represents the input for a budget status. A nil BudgetID means the active budget.
type GetBudgetStatusInput struct {
	UserID   uuid.UUID
	BudgetID *uuid.UUID
}

// GetBudgetStatusOutput represents a budget status plus the advisory emergency buffer.
type GetBudgetStatusOutput struct {
	Status                 entity.BudgetStatus
	EmergencyBufferPercent int
	EmergencyBufferAmount  decimal.Decimal
}

// GetBudgetStatusUseCase computes the status of a budget at today.
type GetBudgetStatusUseCase struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	settingsRepo adapter.SettingsRepository
	clock        adapter.Clock
}

// NewGetBudgetStatusUseCase creates a new GetBudgetStatusUseCase instance.
func NewGetBudgetStatusUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	settingsRepo adapter.SettingsRepository,
	clock adapter.Clock,
) *GetBudgetStatusUseCase {
	return &GetBudgetStatusUseCase{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		settingsRepo: settingsRepo,
		clock:        clock,
	}
}

// Execute computes the status.
func (uc *GetBudgetStatusUseCase) Execute(ctx context.Context, input GetBudgetStatusInput) (*GetBudgetStatusOutput, error) {
	var (
		budget *entity.Budget
		err    error
	)
	if input.BudgetID != nil {
		budget, err = findOwnedBudget(ctx, uc.budgetRepo, *input.BudgetID, input.UserID)
	} else {
		budget, err = FindActiveBudget(ctx, uc.budgetRepo, input.UserID)
	}
	if err != nil {
		return nil, err
	}
	if budget == nil {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeNoActiveBudget,
			"no active budget",
			domainerror.ErrNoActiveBudget,
		)
	}

	status, err := ComputeBudgetStatus(ctx, uc.expenseRepo, budget, valueobject.DateOf(uc.clock.Now()))
	if err != nil {
		return nil, err
	}

	settings, err := uc.settingsRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		settings = entity.DefaultSettings(input.UserID)
	}

	return &GetBudgetStatusOutput{
		Status:                 status,
		EmergencyBufferPercent: settings.EmergencyBufferPercent,
		EmergencyBufferAmount:  budget.Amount.Mul(decimal.NewFromInt(int64(settings.EmergencyBufferPercent))).Div(decimal.NewFromInt(100)),
	}, nil
}

// FindActiveBudget returns the user's active budget, or nil when there is none.
func FindActiveBudget(ctx context.Context, repo adapter.BudgetRepository, userID uuid.UUID) (*entity.Budget, error) {
	budget, err := repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerror.ErrNoActiveBudget) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find active budget: %w", err)
	}
	return budget, nil
}

// ComputeBudgetStatus loads the expenses of the budget period and computes its status at today.
func ComputeBudgetStatus(ctx context.Context, expenseRepo adapter.ExpenseRepository, budget *entity.Budget, today valueobject.Date) (entity.BudgetStatus, error) {
	start, end := budget.StartDate, budget.EffectiveEndDate()
	expenses, err := expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    budget.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return entity.BudgetStatus{}, fmt.Errorf("failed to load budget expenses: %w", err)
	}

	return service.ComputeStatus(budget, service.FilterInRange(expenses, start, end), today), nil
}
