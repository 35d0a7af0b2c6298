// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{db: db}
}

// Create stores the budget. When it is active the user's other budgets are deactivated
// in the same transaction.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateOthers(tx, budget); err != nil {
			return err
		}
		return tx.Create(model.BudgetModelFromEntity(budget)).Error
	})
}

func (r *budgetRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrBudgetNotFound
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

// FindByUser lists the user's budgets, most recent period first.
func (r *budgetRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	var models []model.BudgetModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("start_date DESC").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toBudgets(models), nil
}

func (r *budgetRepository) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*entity.Budget, error) {
	var budgetModel model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("updated_at DESC").
		First(&budgetModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrNoActiveBudget
		}
		return nil, result.Error
	}
	return budgetModel.ToEntity(), nil
}

func (r *budgetRepository) FindAllActive(ctx context.Context) ([]*entity.Budget, error) {
	var models []model.BudgetModel
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&models).Error; err != nil {
		return nil, err
	}
	return toBudgets(models), nil
}

// Update saves the budget, deactivating the user's other budgets when it is active.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deactivateOthers(tx, budget); err != nil {
			return err
		}
		result := tx.Model(&model.BudgetModel{}).
			Where("id = ?", budget.ID).
			Updates(map[string]any{
				"name":              budget.Name,
				"amount":            budget.Amount,
				"start_date":        budget.StartDate,
				"end_date":          budget.EndDate,
				"is_active":         budget.IsActive,
				"last_alert_status": string(budget.LastAlertStatus),
				"updated_at":        budget.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrBudgetNotFound
		}
		return nil
	})
}

func (r *budgetRepository) UpdateAlertStatus(ctx context.Context, id uuid.UUID, status entity.BudgetStatusLevel) error {
	return r.db.WithContext(ctx).
		Model(&model.BudgetModel{}).
		Where("id = ?", id).
		Update("last_alert_status", string(status)).Error
}

func (r *budgetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.BudgetModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrBudgetNotFound
	}
	return nil
}

func deactivateOthers(tx *gorm.DB, budget *entity.Budget) error {
	if !budget.IsActive {
		return nil
	}
	return tx.Model(&model.BudgetModel{}).
		Where("user_id = ? AND id <> ? AND is_active = ?", budget.UserID, budget.ID, true).
		Update("is_active", false).Error
}

func toBudgets(models []model.BudgetModel) []*entity.Budget {
	budgets := make([]*entity.Budget, len(models))
	for i := range models {
		budgets[i] = models[i].ToEntity()
	}
	return budgets
}
