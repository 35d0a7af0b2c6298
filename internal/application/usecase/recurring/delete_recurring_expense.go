// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

// DeleteRecurringExpenseInput represents the input for deleting a definition.
type DeleteRecurringExpenseInput struct {
	RecurringExpenseID uuid.UUID
	UserID             uuid.UUID
}

// DeleteRecurringExpenseUseCase deletes a definition and its unresolved pending rows.
// Confirmed expenses are kept.
type DeleteRecurringExpenseUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewDeleteRecurringExpenseUseCase creates a new DeleteRecurringExpenseUseCase instance.
func NewDeleteRecurringExpenseUseCase(recurringRepo adapter.RecurringExpenseRepository) *DeleteRecurringExpenseUseCase {
	return &DeleteRecurringExpenseUseCase{recurringRepo: recurringRepo}
}

// Execute performs the deletion.
func (uc *DeleteRecurringExpenseUseCase) Execute(ctx context.Context, input DeleteRecurringExpenseInput) error {
	if _, err := findOwnedDefinition(ctx, uc.recurringRepo, input.RecurringExpenseID, input.UserID); err != nil {
		return err
	}
	if err := uc.recurringRepo.Delete(ctx, input.RecurringExpenseID); err != nil {
		return fmt.Errorf("failed to delete recurring expense: %w", err)
	}
	return nil
}
