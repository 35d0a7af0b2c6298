// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// ConfirmPendingInput represents the input for confirming a pending row.
// A nil Amount keeps the materialized amount.
type ConfirmPendingInput struct {
	PendingID uuid.UUID
	UserID    uuid.UUID
	Amount    *decimal.Decimal
}

// ConfirmPendingOutput holds the resolved row and the expense it created.
type ConfirmPendingOutput struct {
	Pending *entity.PendingRecurringExpense
	Expense *entity.Expense
}

// ConfirmPendingUseCase turns a pending row into a real expense.
type ConfirmPendingUseCase struct {
	pendingRepo   adapter.PendingExpenseRepository
	recurringRepo adapter.RecurringExpenseRepository
}

// NewConfirmPendingUseCase creates a new ConfirmPendingUseCase instance.
func NewConfirmPendingUseCase(
	pendingRepo adapter.PendingExpenseRepository,
	recurringRepo adapter.RecurringExpenseRepository,
) *ConfirmPendingUseCase {
	return &ConfirmPendingUseCase{
		pendingRepo:   pendingRepo,
		recurringRepo: recurringRepo,
	}
}

// Execute confirms the row. The expense is dated on the scheduled date, not today.
func (uc *ConfirmPendingUseCase) Execute(ctx context.Context, input ConfirmPendingInput) (*ConfirmPendingOutput, error) {
	pending, err := findUnresolvedPending(ctx, uc.pendingRepo, input.PendingID, input.UserID)
	if err != nil {
		return nil, err
	}

	defs, err := uc.recurringRepo.FindByIDs(ctx, []uuid.UUID{pending.RecurringExpenseID})
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expense: %w", err)
	}
	if len(defs) == 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeOrphanPendingExpense,
			"pending expense references a recurring expense that no longer exists",
			domainerror.ErrOrphanPendingExpense,
		)
	}

	if input.Amount != nil {
		if input.Amount.Sign() <= 0 {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurringAmount,
				"amount must be greater than zero",
				domainerror.ErrInvalidAmount,
			)
		}
		pending.Amount = *input.Amount
	}

	expense := entity.NewExpense(pending.UserID, pending.Amount, pending.Category, pending.ScheduledDate, pending.Description)
	definitionID := pending.RecurringExpenseID
	expense.RecurringExpenseID = &definitionID
	pending.Confirm(expense.ID)

	if err := uc.pendingRepo.Confirm(ctx, pending, expense); err != nil {
		if errors.Is(err, domainerror.ErrPendingExpenseResolved) {
			return nil, pendingResolved("pending expense was resolved by another request")
		}
		return nil, fmt.Errorf("failed to confirm pending expense: %w", err)
	}

	return &ConfirmPendingOutput{Pending: pending, Expense: expense}, nil
}
