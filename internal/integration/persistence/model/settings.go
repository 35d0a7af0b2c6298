package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// SettingsModel represents the user_settings table in the database.
type SettingsModel struct {
	UserID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmergencyBufferPercent int       `gorm:"not null"`
	UpdatedAt              time.Time `gorm:"not null"`

	CategoryLimits []CategoryLimitModel `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName returns the table name for the SettingsModel.
func (SettingsModel) TableName() string {
	return "user_settings"
}

// CategoryLimitModel represents one row of the category_limits table.
type CategoryLimitModel struct {
	UserID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Category string          `gorm:"type:varchar(100);primaryKey"`
	Limit    decimal.Decimal `gorm:"column:limit_amount;type:decimal(15,2);not null"`
}

// TableName returns the table name for the CategoryLimitModel.
func (CategoryLimitModel) TableName() string {
	return "category_limits"
}

// ToEntity converts a SettingsModel and its loaded limits to a domain Settings entity.
func (m *SettingsModel) ToEntity() *entity.Settings {
	limits := make(map[string]decimal.Decimal, len(m.CategoryLimits))
	for _, l := range m.CategoryLimits {
		limits[l.Category] = l.Limit
	}

	return &entity.Settings{
		UserID:                 m.UserID,
		EmergencyBufferPercent: m.EmergencyBufferPercent,
		CategoryLimits:         limits,
		UpdatedAt:              m.UpdatedAt,
	}
}

// SettingsModelFromEntity creates a SettingsModel, limits included, from a domain Settings entity.
func SettingsModelFromEntity(s *entity.Settings) *SettingsModel {
	limits := make([]CategoryLimitModel, 0, len(s.CategoryLimits))
	for category, limit := range s.CategoryLimits {
		limits = append(limits, CategoryLimitModel{
			UserID:   s.UserID,
			Category: category,
			Limit:    limit,
		})
	}

	return &SettingsModel{
		UserID:                 s.UserID,
		EmergencyBufferPercent: s.EmergencyBufferPercent,
		UpdatedAt:              s.UpdatedAt,
		CategoryLimits:         limits,
	}
}
