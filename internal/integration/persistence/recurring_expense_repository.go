// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// recurringExpenseRepository implements the adapter.RecurringExpenseRepository interface.
type recurringExpenseRepository struct {
	db *gorm.DB
}

// NewRecurringExpenseRepository creates a new recurring expense repository instance.
func NewRecurringExpenseRepository(db *gorm.DB) adapter.RecurringExpenseRepository {
	return &recurringExpenseRepository{db: db}
}

func (r *recurringExpenseRepository) Create(ctx context.Context, def *entity.RecurringExpense) error {
	return r.db.WithContext(ctx).Create(model.RecurringExpenseModelFromEntity(def)).Error
}

func (r *recurringExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	var defModel model.RecurringExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&defModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRecurringExpenseNotFound
		}
		return nil, result.Error
	}
	return defModel.ToEntity(), nil
}

// FindByUser lists definitions by next due date.
func (r *recurringExpenseRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	var models []model.RecurringExpenseModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_due_date ASC").
		Order("created_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toRecurringExpenses(models), nil
}

func (r *recurringExpenseRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.RecurringExpense, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var models []model.RecurringExpenseModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, err
	}
	return toRecurringExpenses(models), nil
}

// FindUsersWithActive returns every user owning at least one active definition.
func (r *recurringExpenseRepository) FindUsersWithActive(ctx context.Context) ([]uuid.UUID, error) {
	var userIDs []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("is_active = ?", true).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}
	return userIDs, nil
}

func (r *recurringExpenseRepository) Update(ctx context.Context, def *entity.RecurringExpense) error {
	result := r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("id = ?", def.ID).
		Select("*").
		Omit("id", "user_id", "created_at").
		Updates(model.RecurringExpenseModelFromEntity(def))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrRecurringExpenseNotFound
	}
	return nil
}

func (r *recurringExpenseRepository) UpdateLastReminder(ctx context.Context, id uuid.UUID, dueDate valueobject.Date) error {
	return r.db.WithContext(ctx).
		Model(&model.RecurringExpenseModel{}).
		Where("id = ?", id).
		Update("last_reminder_for", dueDate).Error
}

// Delete removes the definition and its unresolved rows. Confirmed and skipped rows stay as history.
func (r *recurringExpenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("recurring_expense_id = ? AND status = ?", id, string(entity.PendingStatusPending)).
			Delete(&model.PendingExpenseModel{}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&model.RecurringExpenseModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrRecurringExpenseNotFound
		}
		return nil
	})
}

func toRecurringExpenses(models []model.RecurringExpenseModel) []*entity.RecurringExpense {
	defs := make([]*entity.RecurringExpense, len(models))
	for i := range models {
		defs[i] = models[i].ToEntity()
	}
	return defs
}

// pendingExpenseRepository implements the adapter.PendingExpenseRepository interface.
type pendingExpenseRepository struct {
	db *gorm.DB
}

// NewPendingExpenseRepository creates a new pending expense repository instance.
func NewPendingExpenseRepository(db *gorm.DB) adapter.PendingExpenseRepository {
	return &pendingExpenseRepository{db: db}
}

func (r *pendingExpenseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PendingRecurringExpense, error) {
	var pendingModel model.PendingExpenseModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&pendingModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPendingExpenseNotFound
		}
		return nil, result.Error
	}
	return pendingModel.ToEntity(), nil
}

// FindByUser lists the user's rows by scheduled date, optionally filtered by status.
func (r *pendingExpenseRepository) FindByUser(ctx context.Context, userID uuid.UUID, statuses ...entity.PendingStatus) ([]*entity.PendingRecurringExpense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query = query.Where("status IN ?", values)
	}

	var models []model.PendingExpenseModel
	if err := query.Order("scheduled_date ASC").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toPendingExpenses(models), nil
}

func (r *pendingExpenseRepository) FindByDefinitions(ctx context.Context, definitionIDs []uuid.UUID) ([]*entity.PendingRecurringExpense, error) {
	if len(definitionIDs) == 0 {
		return nil, nil
	}
	var models []model.PendingExpenseModel
	err := r.db.WithContext(ctx).
		Where("recurring_expense_id IN ?", definitionIDs).
		Order("scheduled_date ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toPendingExpenses(models), nil
}

// SaveMaterialization inserts the new rows and advances the definitions atomically.
// Rows that already exist for the same definition and date are ignored and left out of the result.
func (r *pendingExpenseRepository) SaveMaterialization(
	ctx context.Context,
	created []*entity.PendingRecurringExpense,
	advanced []*entity.RecurringExpense,
) ([]*entity.PendingRecurringExpense, error) {
	inserted := make([]*entity.PendingRecurringExpense, 0, len(created))
	now := time.Now().UTC()
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range created {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(model.PendingExpenseModelFromEntity(p))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				inserted = append(inserted, p)
			}
		}

		for _, def := range advanced {
			err := tx.Model(&model.RecurringExpenseModel{}).
				Where("id = ?", def.ID).
				Updates(map[string]any{
					"next_due_date": def.NextDueDate,
					"is_active":     def.IsActive,
					"updated_at":    now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// Confirm resolves the row, records the expense and marks the definition executed in one transaction.
func (r *pendingExpenseRepository) Confirm(ctx context.Context, pending *entity.PendingRecurringExpense, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model.ExpenseModelFromEntity(expense)).Error; err != nil {
			return err
		}

		result := tx.Model(&model.PendingExpenseModel{}).
			Where("id = ? AND status = ?", pending.ID, string(entity.PendingStatusPending)).
			Updates(map[string]any{
				"status":      string(pending.Status),
				"amount":      pending.Amount,
				"expense_id":  pending.ExpenseID,
				"resolved_at": pending.ResolvedAt,
				"updated_at":  pending.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerror.ErrPendingExpenseResolved
		}

		return tx.Model(&model.RecurringExpenseModel{}).
			Where("id = ?", pending.RecurringExpenseID).
			Updates(map[string]any{
				"last_executed": pending.ScheduledDate,
				"updated_at":    time.Now().UTC(),
			}).Error
	})
}

func (r *pendingExpenseRepository) Skip(ctx context.Context, pending *entity.PendingRecurringExpense) error {
	result := r.db.WithContext(ctx).
		Model(&model.PendingExpenseModel{}).
		Where("id = ? AND status = ?", pending.ID, string(entity.PendingStatusPending)).
		Updates(map[string]any{
			"status":      string(entity.PendingStatusSkipped),
			"resolved_at": pending.ResolvedAt,
			"updated_at":  pending.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrPendingExpenseResolved
	}
	return nil
}

func toPendingExpenses(models []model.PendingExpenseModel) []*entity.PendingRecurringExpense {
	rows := make([]*entity.PendingRecurringExpense, len(models))
	for i := range models {
		rows[i] = models[i].ToEntity()
	}
	return rows
}
