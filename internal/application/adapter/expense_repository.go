// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ExpenseFilter defines filter options for listing expenses.
// Date bounds are inclusive; a nil bound is open.
type ExpenseFilter struct {
	UserID    uuid.UUID
	StartDate *valueobject.Date
	EndDate   *valueobject.Date
	Category  string
}

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// Create creates a new expense in the database.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)

	// FindByFilter retrieves expenses matching the filter, newest first.
	FindByFilter(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)

	// Update updates an existing expense in the database.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListCategories returns the distinct categories the user has used.
	ListCategories(ctx context.Context, userID uuid.UUID) ([]string, error)

	// MostUsedCategory returns the category most often used with the given description,
	// or "" when the description was never used.
	MostUsedCategory(ctx context.Context, userID uuid.UUID, description string) (string, error)
}
