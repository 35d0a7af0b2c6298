// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence operations.
// Create and Update deactivate the user's other budgets when the saved budget is active.
type BudgetRepository interface {
	Create(ctx context.Context, budget *entity.Budget) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error)

	// FindActiveByUser returns the user's active budget or ErrNoActiveBudget.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Budget, error)

	// FindAllActive returns the active budget of every user.
	FindAllActive(ctx context.Context) ([]*entity.Budget, error)

	Update(ctx context.Context, budget *entity.Budget) error

	// UpdateAlertStatus records the status the last budget alert was queued for.
	UpdateAlertStatus(ctx context.Context, id uuid.UUID, status entity.BudgetStatusLevel) error

	Delete(ctx context.Context, id uuid.UUID) error
}
