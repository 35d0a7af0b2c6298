// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// UpdateBudgetInput represents the input for budget update. Nil fields are left unchanged.
type UpdateBudgetInput struct {
	BudgetID     uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Amount       *decimal.Decimal
	StartDate    *valueobject.Date
	EndDate      *valueobject.Date
	ClearEndDate bool
	IsActive     *bool
}

// UpdateBudgetOutput represents the output of budget update.
type UpdateBudgetOutput struct {
	Budget *entity.Budget
}

// UpdateBudgetUseCase handles budget edits and activation.
type UpdateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewUpdateBudgetUseCase creates a new UpdateBudgetUseCase instance.
func NewUpdateBudgetUseCase(budgetRepo adapter.BudgetRepository) *UpdateBudgetUseCase {
	return &UpdateBudgetUseCase{budgetRepo: budgetRepo}
}

// Execute performs the budget update. Activating a budget deactivates the user's others.
func (uc *UpdateBudgetUseCase) Execute(ctx context.Context, input UpdateBudgetInput) (*UpdateBudgetOutput, error) {
	budget, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		budget.Name = strings.TrimSpace(*input.Name)
	}
	if input.Amount != nil {
		budget.Amount = *input.Amount
	}
	if input.StartDate != nil {
		budget.StartDate = *input.StartDate
	}
	if input.ClearEndDate {
		budget.EndDate = nil
	} else if input.EndDate != nil {
		end := *input.EndDate
		budget.EndDate = &end
	}
	if input.IsActive != nil {
		budget.IsActive = *input.IsActive
	}

	if err := validateBudget(budget.Amount, budget.StartDate, budget.EndDate); err != nil {
		return nil, err
	}

	// A changed amount or period may drop the status back below an alerted tier.
	if input.Amount != nil || input.StartDate != nil || input.EndDate != nil || input.ClearEndDate {
		budget.LastAlertStatus = entity.BudgetStatusSafe
	}

	budget.UpdatedAt = time.Now().UTC()
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to update budget: %w", err)
	}

	return &UpdateBudgetOutput{Budget: budget}, nil
}

// DeleteBudgetInput represents the input for budget deletion.
type DeleteBudgetInput struct {
	BudgetID uuid.UUID
	UserID   uuid.UUID
}

// DeleteBudgetUseCase handles budget deletion.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{budgetRepo: budgetRepo}
}

// Execute deletes the budget if it belongs to the user.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) error {
	if _, err := findOwnedBudget(ctx, uc.budgetRepo, input.BudgetID, input.UserID); err != nil {
		return err
	}
	if err := uc.budgetRepo.Delete(ctx, input.BudgetID); err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	return nil
}
