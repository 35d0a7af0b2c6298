// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// ListRecurringExpensesInput represents the input for listing definitions.
type ListRecurringExpensesInput struct {
	UserID     uuid.UUID
	ActiveOnly bool
}

// ListRecurringExpensesOutput represents the listed definitions.
type ListRecurringExpensesOutput struct {
	RecurringExpenses []*entity.RecurringExpense
}

// ListRecurringExpensesUseCase lists a user's definitions.
type ListRecurringExpensesUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewListRecurringExpensesUseCase creates a new ListRecurringExpensesUseCase instance.
func NewListRecurringExpensesUseCase(recurringRepo adapter.RecurringExpenseRepository) *ListRecurringExpensesUseCase {
	return &ListRecurringExpensesUseCase{recurringRepo: recurringRepo}
}

// Execute lists the definitions ordered by next due date.
func (uc *ListRecurringExpensesUseCase) Execute(ctx context.Context, input ListRecurringExpensesInput) (*ListRecurringExpensesOutput, error) {
	defs, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring expenses: %w", err)
	}

	if input.ActiveOnly {
		active := make([]*entity.RecurringExpense, 0, len(defs))
		for _, def := range defs {
			if def.IsActive {
				active = append(active, def)
			}
		}
		defs = active
	}

	return &ListRecurringExpensesOutput{RecurringExpenses: defs}, nil
}
