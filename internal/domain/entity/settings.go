// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// MinEmergencyBufferPercent is the lowest accepted emergency buffer.
	MinEmergencyBufferPercent = 0
	// MaxEmergencyBufferPercent is the highest accepted emergency buffer.
	MaxEmergencyBufferPercent = 50
	// DefaultEmergencyBufferPercent is used until the user saves settings.
	DefaultEmergencyBufferPercent = 10
)

// Settings holds per-user budget preferences.
// EmergencyBufferPercent is advisory and never changes status thresholds.
type Settings struct {
	UserID                 uuid.UUID
	EmergencyBufferPercent int
	CategoryLimits         map[string]decimal.Decimal
	UpdatedAt              time.Time
}

// DefaultSettings returns the settings used for a user that never saved any.
func DefaultSettings(userID uuid.UUID) *Settings {
	return &Settings{
		UserID:                 userID,
		EmergencyBufferPercent: DefaultEmergencyBufferPercent,
		CategoryLimits:         map[string]decimal.Decimal{},
		UpdatedAt:              time.Now().UTC(),
	}
}
