// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// SkipPendingInput represents the input for skipping a pending row.
type SkipPendingInput struct {
	PendingID uuid.UUID
	UserID    uuid.UUID
}

// SkipPendingUseCase marks a pending row skipped without creating an expense.
type SkipPendingUseCase struct {
	pendingRepo adapter.PendingExpenseRepository
}

// NewSkipPendingUseCase creates a new SkipPendingUseCase instance.
func NewSkipPendingUseCase(pendingRepo adapter.PendingExpenseRepository) *SkipPendingUseCase {
	return &SkipPendingUseCase{pendingRepo: pendingRepo}
}

// Execute skips the row.
func (uc *SkipPendingUseCase) Execute(ctx context.Context, input SkipPendingInput) (*entity.PendingRecurringExpense, error) {
	pending, err := findUnresolvedPending(ctx, uc.pendingRepo, input.PendingID, input.UserID)
	if err != nil {
		return nil, err
	}

	pending.Skip()
	if err := uc.pendingRepo.Skip(ctx, pending); err != nil {
		if errors.Is(err, domainerror.ErrPendingExpenseResolved) {
			return nil, pendingResolved("pending expense was resolved by another request")
		}
		return nil, fmt.Errorf("failed to skip pending expense: %w", err)
	}
	return pending, nil
}
