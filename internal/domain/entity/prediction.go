package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Confidence grades how much data backs a prediction.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// TrendDirection is the direction of a week-over-week change.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// WeeklyTrend compares the last 7 days with the 7 days before.
type WeeklyTrend struct {
	CurrentWeek   decimal.Decimal
	PreviousWeek  decimal.Decimal
	ChangePercent decimal.Decimal
	Direction     TrendDirection
	Confidence    Confidence
}

// MonthlyProjection extrapolates month-to-date spending to the whole month.
type MonthlyProjection struct {
	SpentToDate    decimal.Decimal
	DailyAverage   decimal.Decimal
	ProjectedTotal decimal.Decimal
	DaysElapsed    int
	DaysInMonth    int
	Confidence     Confidence
}

// DominantCategory is the category with the largest share of this month's spending.
type DominantCategory struct {
	Category   string
	Total      decimal.Decimal
	Percentage decimal.Decimal
	Confidence Confidence
}

// BudgetOverrunRisk flags an active budget whose projection exceeds its amount.
type BudgetOverrunRisk struct {
	BudgetAmount   decimal.Decimal
	ProjectedTotal decimal.Decimal
	ProjectedOver  decimal.Decimal
	WillExceed     bool
	Confidence     Confidence
}

// WeekdayConcentration is the share of recent spending on the peak weekday.
type WeekdayConcentration struct {
	Weekday    time.Weekday
	Total      decimal.Decimal
	Percentage decimal.Decimal
	Confidence Confidence
}

// SpendingPrediction groups the advisory heuristics. Each field is nil when data is insufficient.
type SpendingPrediction struct {
	WeeklyTrend          *WeeklyTrend
	MonthlyProjection    *MonthlyProjection
	DominantCategory     *DominantCategory
	BudgetOverrunRisk    *BudgetOverrunRisk
	WeekdayConcentration *WeekdayConcentration
}
