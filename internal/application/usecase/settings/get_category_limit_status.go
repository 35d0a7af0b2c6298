// Package settings contains budget settings use cases.
package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// GetCategoryLimitStatusInput represents the input for evaluating category limits.
type GetCategoryLimitStatusInput struct {
	UserID uuid.UUID
}

// GetCategoryLimitStatusOutput represents the evaluated limits for the current month.
type GetCategoryLimitStatusOutput struct {
	StartDate valueobject.Date
	EndDate   valueobject.Date
	Limits    []entity.CategoryLimitStatus
}

// GetCategoryLimitStatusUseCase evaluates the configured category limits for the current month.
type GetCategoryLimitStatusUseCase struct {
	settingsRepo adapter.SettingsRepository
	expenseRepo  adapter.ExpenseRepository
	clock        adapter.Clock
}

// NewGetCategoryLimitStatusUseCase creates a new GetCategoryLimitStatusUseCase instance.
func NewGetCategoryLimitStatusUseCase(
	settingsRepo adapter.SettingsRepository,
	expenseRepo adapter.ExpenseRepository,
	clock adapter.Clock,
) *GetCategoryLimitStatusUseCase {
	return &GetCategoryLimitStatusUseCase{
		settingsRepo: settingsRepo,
		expenseRepo:  expenseRepo,
		clock:        clock,
	}
}

// Execute evaluates the limits, most critical first.
func (uc *GetCategoryLimitStatusUseCase) Execute(ctx context.Context, input GetCategoryLimitStatusInput) (*GetCategoryLimitStatusOutput, error) {
	settings, err := loadSettings(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	today := valueobject.DateOf(uc.clock.Now())
	start, end := today.FirstOfMonth(), today.EndOfMonth()

	expenses, err := uc.expenseRepo.FindByFilter(ctx, adapter.ExpenseFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	totals := service.AggregateByCategory(service.FilterInRange(expenses, start, end))
	return &GetCategoryLimitStatusOutput{
		StartDate: start,
		EndDate:   end,
		Limits:    service.EvaluateCategoryLimits(settings.CategoryLimits, totals),
	}, nil
}
