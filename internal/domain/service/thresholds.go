// Package service holds the pure budget and recurring-expense calculators.
// Nothing in this package performs I/O; every function is safe for concurrent use.
package service

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// Status thresholds, in percent of the limit.
var (
	WarningPercentage  = decimal.NewFromInt(75)
	ExceededPercentage = decimal.NewFromInt(100)
	// OverLimitPercentage is reported when something was spent against a non-positive limit.
	OverLimitPercentage = decimal.NewFromInt(9999)
)

// Predictor thresholds.
const (
	// Week-over-week change (and weekday share) in percent.
	MediumChangePercent = 20
	HighChangePercent   = 40
	// Changes below this are reported as stable.
	StableChangePercent = 5

	// Day of month (or elapsed days in a budget) before confidence rises.
	MediumConfidenceDay = 7
	HighConfidenceDay   = 15

	TrendWindowDays   = 7
	WeekdayWindowDays = 28
)

var hundred = decimal.NewFromInt(100)

// ClassifyPercentage maps a spent percentage onto the status tier.
func ClassifyPercentage(percentage decimal.Decimal) entity.BudgetStatusLevel {
	switch {
	case percentage.GreaterThanOrEqual(ExceededPercentage):
		return entity.BudgetStatusExceeded
	case percentage.GreaterThanOrEqual(WarningPercentage):
		return entity.BudgetStatusWarning
	default:
		return entity.BudgetStatusSafe
	}
}

// percentOf returns part/whole*100. A non-positive whole yields 0 when part is 0
// and OverLimitPercentage otherwise.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.Sign() <= 0 {
		if part.IsZero() {
			return decimal.Zero
		}
		return OverLimitPercentage
	}
	return part.Div(whole).Mul(hundred)
}

func confidenceFromChange(changePercent decimal.Decimal) entity.Confidence {
	abs := changePercent.Abs()
	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(HighChangePercent)):
		return entity.ConfidenceHigh
	case abs.GreaterThanOrEqual(decimal.NewFromInt(MediumChangePercent)):
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceLow
	}
}

func confidenceFromDays(days int) entity.Confidence {
	switch {
	case days < MediumConfidenceDay:
		return entity.ConfidenceLow
	case days < HighConfidenceDay:
		return entity.ConfidenceMedium
	default:
		return entity.ConfidenceHigh
	}
}
