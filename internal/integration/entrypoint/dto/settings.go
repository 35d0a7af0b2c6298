package dto

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// UpdateSettingsRequest represents the request body for settings update.
// A present category_limits object replaces all limits; an empty object clears them.
type UpdateSettingsRequest struct {
	EmergencyBufferPercent *int                       `json:"emergency_buffer_percent,omitempty"`
	CategoryLimits         map[string]decimal.Decimal `json:"category_limits,omitempty"`
}

// SettingsResponse represents the user's settings.
type SettingsResponse struct {
	EmergencyBufferPercent int                        `json:"emergency_buffer_percent"`
	CategoryLimits         map[string]decimal.Decimal `json:"category_limits"`
	UpdatedAt              *time.Time                 `json:"updated_at,omitempty"`
}

// CategoryLimitStatusResponse represents spending against one category limit.
type CategoryLimitStatusResponse struct {
	Category   string          `json:"category"`
	Limit      decimal.Decimal `json:"limit"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage decimal.Decimal `json:"percentage"`
	Status     string          `json:"status"`
}

// CategoryLimitsStatusResponse represents all category limits for a period.
type CategoryLimitsStatusResponse struct {
	StartDate valueobject.Date              `json:"start_date"`
	EndDate   valueobject.Date              `json:"end_date"`
	Limits    []CategoryLimitStatusResponse `json:"limits"`
}

// ToSettingsResponse converts a domain Settings entity to a SettingsResponse DTO.
func ToSettingsResponse(settings *entity.Settings) SettingsResponse {
	resp := SettingsResponse{
		EmergencyBufferPercent: settings.EmergencyBufferPercent,
		CategoryLimits:         make(map[string]decimal.Decimal, len(settings.CategoryLimits)),
	}
	for category, limit := range settings.CategoryLimits {
		resp.CategoryLimits[category] = limit
	}
	if !settings.UpdatedAt.IsZero() {
		updated := settings.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// ToCategoryLimitsStatusResponse converts evaluated limits, ordered by category.
func ToCategoryLimitsStatusResponse(start, end valueobject.Date, limits []entity.CategoryLimitStatus) CategoryLimitsStatusResponse {
	out := make([]CategoryLimitStatusResponse, 0, len(limits))
	for _, l := range limits {
		out = append(out, CategoryLimitStatusResponse{
			Category:   l.Category,
			Limit:      l.Limit,
			Spent:      l.Spent,
			Remaining:  l.Remaining,
			Percentage: l.Percentage,
			Status:     string(l.Status),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return CategoryLimitsStatusResponse{StartDate: start, EndDate: end, Limits: out}
}
