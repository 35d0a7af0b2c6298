// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ListPendingInput represents the input for listing pending recurring expenses.
type ListPendingInput struct {
	UserID          uuid.UUID
	IncludeResolved bool
}

// ListPendingOutput holds the classified rows plus warnings for rows that were skipped.
type ListPendingOutput struct {
	Items    []entity.PendingView
	Warnings []string
}

// ListPendingUseCase lists pending rows classified as pending or overdue.
type ListPendingUseCase struct {
	pendingRepo   adapter.PendingExpenseRepository
	recurringRepo adapter.RecurringExpenseRepository
	clock         adapter.Clock
}

// NewListPendingUseCase creates a new ListPendingUseCase instance.
func NewListPendingUseCase(
	pendingRepo adapter.PendingExpenseRepository,
	recurringRepo adapter.RecurringExpenseRepository,
	clock adapter.Clock,
) *ListPendingUseCase {
	return &ListPendingUseCase{
		pendingRepo:   pendingRepo,
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute lists the rows. Rows whose definition no longer exists are left out and reported
// as warnings instead of failing the whole listing.
func (uc *ListPendingUseCase) Execute(ctx context.Context, input ListPendingInput) (*ListPendingOutput, error) {
	var statuses []entity.PendingStatus
	if !input.IncludeResolved {
		statuses = []entity.PendingStatus{entity.PendingStatusPending}
	}

	rows, err := uc.pendingRepo.FindByUser(ctx, input.UserID, statuses...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending expenses: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(rows))
	seen := make(map[uuid.UUID]bool, len(rows))
	for _, row := range rows {
		if !seen[row.RecurringExpenseID] {
			seen[row.RecurringExpenseID] = true
			ids = append(ids, row.RecurringExpenseID)
		}
	}

	defs, err := uc.recurringRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}
	known := make(map[uuid.UUID]bool, len(defs))
	for _, def := range defs {
		known[def.ID] = true
	}

	today := valueobject.DateOf(uc.clock.Now())
	output := &ListPendingOutput{Items: make([]entity.PendingView, 0, len(rows))}
	for _, row := range rows {
		if !known[row.RecurringExpenseID] {
			slog.Warn("pending expense references a missing recurring expense",
				"pending_id", row.ID,
				"recurring_expense_id", row.RecurringExpenseID,
			)
			output.Warnings = append(output.Warnings,
				fmt.Sprintf("pending expense %s references missing recurring expense %s", row.ID, row.RecurringExpenseID))
			continue
		}
		output.Items = append(output.Items, service.ClassifyPending(row, today))
	}

	return output, nil
}
