// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SettingsRepository persists per-user budget settings.
type SettingsRepository interface {
	// FindByUser returns the saved settings, or nil when the user never saved any.
	FindByUser(ctx context.Context, userID uuid.UUID) (*entity.Settings, error)

	// Save creates or replaces the user's settings, including every category limit.
	Save(ctx context.Context, settings *entity.Settings) error
}
