// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// RecurringExpenseRepository defines the interface for recurring expense definitions.
type RecurringExpenseRepository interface {
	// Create creates a new definition in the database.
	Create(ctx context.Context, def *entity.RecurringExpense) error

	// FindByID retrieves a definition by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error)

	// FindByUser retrieves all definitions of a user ordered by next due date.
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error)

	// FindByIDs retrieves the definitions with the given IDs. Missing IDs are ignored.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.RecurringExpense, error)

	// FindUsersWithActive returns the IDs of users owning at least one active definition.
	FindUsersWithActive(ctx context.Context) ([]uuid.UUID, error)

	// Update updates an existing definition in the database.
	Update(ctx context.Context, def *entity.RecurringExpense) error

	// UpdateLastReminder records the due date the last reminder email was queued for.
	UpdateLastReminder(ctx context.Context, id uuid.UUID, dueDate valueobject.Date) error

	// Delete removes a definition together with its unresolved pending rows.
	Delete(ctx context.Context, id uuid.UUID) error
}

// PendingExpenseRepository defines the interface for materialized recurring expenses.
type PendingExpenseRepository interface {
	// FindByID retrieves a pending row by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PendingRecurringExpense, error)

	// FindByUser retrieves a user's rows with the given statuses, oldest first.
	// No statuses means all rows.
	FindByUser(ctx context.Context, userID uuid.UUID, statuses ...entity.PendingStatus) ([]*entity.PendingRecurringExpense, error)

	// FindByDefinitions retrieves every row, whatever its status, of the given definitions.
	FindByDefinitions(ctx context.Context, definitionIDs []uuid.UUID) ([]*entity.PendingRecurringExpense, error)

	// SaveMaterialization inserts the created rows and stores the advanced definitions in
	// one transaction. Rows whose (definition, date) already exist are ignored.
	// It returns the rows actually inserted.
	SaveMaterialization(ctx context.Context, created []*entity.PendingRecurringExpense, advanced []*entity.RecurringExpense) ([]*entity.PendingRecurringExpense, error)

	// Confirm stores the confirmed row, creates its expense and sets the definition's
	// last executed date, in one transaction.
	Confirm(ctx context.Context, pending *entity.PendingRecurringExpense, expense *entity.Expense) error

	// Skip marks a row skipped only while it is still pending. It returns
	// ErrPendingExpenseResolved when the row was resolved or removed meanwhile.
	Skip(ctx context.Context, pending *entity.PendingRecurringExpense) error
}
