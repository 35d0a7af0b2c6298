// Package settings contains budget settings use cases.
package settings

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// GetSettingsInput represents the input for reading settings.
type GetSettingsInput struct {
	UserID uuid.UUID
}

// GetSettingsUseCase returns the user's settings, or the defaults.
type GetSettingsUseCase struct {
	settingsRepo adapter.SettingsRepository
}

// NewGetSettingsUseCase creates a new GetSettingsUseCase instance.
func NewGetSettingsUseCase(settingsRepo adapter.SettingsRepository) *GetSettingsUseCase {
	return &GetSettingsUseCase{settingsRepo: settingsRepo}
}

// Execute loads the settings.
func (uc *GetSettingsUseCase) Execute(ctx context.Context, input GetSettingsInput) (*entity.Settings, error) {
	return loadSettings(ctx, uc.settingsRepo, input.UserID)
}

func loadSettings(ctx context.Context, repo adapter.SettingsRepository, userID uuid.UUID) (*entity.Settings, error) {
	settings, err := repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil {
		return entity.DefaultSettings(userID), nil
	}
	return settings, nil
}
