// Package settings contains budget settings use cases.
package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// UpdateSettingsInput represents the input for updating settings. Nil fields are left unchanged;
// a non-nil CategoryLimits replaces every limit.
type UpdateSettingsInput struct {
	UserID                 uuid.UUID
	EmergencyBufferPercent *int
	CategoryLimits         map[string]decimal.Decimal
}

// UpdateSettingsUseCase validates and stores settings.
type UpdateSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewUpdateSettingsUseCase creates a new UpdateSettingsUseCase instance.
func NewUpdateSettingsUseCase(settingsRepo adapter.SettingsRepository) *UpdateSettingsUseCase {
	return &UpdateSettingsUseCase{settingsRepo: settingsRepo}
}

// Execute performs the update.
func (uc *UpdateSettingsUseCase) Execute(ctx context.Context, input UpdateSettingsInput) (*entity.Settings, error) {
	settings, err := loadSettings(ctx, uc.settingsRepo, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.EmergencyBufferPercent != nil {
		buffer := *input.EmergencyBufferPercent
		if buffer < entity.MinEmergencyBufferPercent || buffer > entity.MaxEmergencyBufferPercent {
			return nil, domainerror.NewSettingsError(
				domainerror.ErrCodeInvalidEmergencyBuffer,
				"emergency buffer must be between 0 and 50",
				domainerror.ErrInvalidEmergencyBuffer,
			)
		}
		settings.EmergencyBufferPercent = buffer
	}

	if input.CategoryLimits != nil {
		limits := make(map[string]decimal.Decimal, len(input.CategoryLimits))
		for category, limit := range input.CategoryLimits {
			name := strings.TrimSpace(category)
			if name == "" || limit.Sign() <= 0 {
				return nil, domainerror.NewSettingsError(
					domainerror.ErrCodeInvalidCategoryLimit,
					fmt.Sprintf("limit for category %q must be greater than zero", category),
					domainerror.ErrInvalidCategoryLimit,
				)
			}
			limits[name] = limit
		}
		settings.CategoryLimits = limits
	}

	settings.UpdatedAt = time.Now().UTC()
	if err := uc.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}
