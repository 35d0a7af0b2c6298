// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// settingsRepository implements the adapter.SettingsRepository interface.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository instance.
func NewSettingsRepository(db *gorm.DB) adapter.SettingsRepository {
	return &settingsRepository{db: db}
}

// FindByUser loads the settings with their category limits. Nil when never saved.
func (r *settingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Settings, error) {
	var settingsModel model.SettingsModel
	result := r.db.WithContext(ctx).
		Preload("CategoryLimits").
		Where("user_id = ?", userID).
		First(&settingsModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return settingsModel.ToEntity(), nil
}

// Save upserts the settings row and replaces every category limit in one transaction.
func (r *settingsRepository) Save(ctx context.Context, settings *entity.Settings) error {
	settingsModel := model.SettingsModelFromEntity(settings)
	limits := settingsModel.CategoryLimits
	settingsModel.CategoryLimits = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"emergency_buffer_percent", "updated_at"}),
		}).Create(settingsModel).Error
		if err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", settings.UserID).Delete(&model.CategoryLimitModel{}).Error; err != nil {
			return err
		}
		if len(limits) == 0 {
			return nil
		}
		return tx.Create(&limits).Error
	})
}
