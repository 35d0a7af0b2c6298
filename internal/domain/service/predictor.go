package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// PredictionLookbackStart returns the earliest date Predict reads for today.
func PredictionLookbackStart(today valueobject.Date) valueobject.Date {
	return valueobject.MinDate(today.FirstOfMonth(), today.AddDays(-(WeekdayWindowDays - 1)))
}

// Predict runs the advisory spending heuristics. expenses should cover at least
// PredictionLookbackStart(today) through today; status is the active budget's status or nil.
func Predict(expenses []*entity.Expense, status *entity.BudgetStatus, today valueobject.Date) entity.SpendingPrediction {
	return entity.SpendingPrediction{
		WeeklyTrend:          WeeklyTrend(expenses, today),
		MonthlyProjection:    MonthlyProjection(expenses, today),
		DominantCategory:     DominantCategory(expenses, today),
		BudgetOverrunRisk:    BudgetOverrunRisk(status),
		WeekdayConcentration: WeekdayConcentration(expenses, today),
	}
}

// WeeklyTrend compares the last 7 days with the 7 before. Nil when the earlier week is empty.
func WeeklyTrend(expenses []*entity.Expense, today valueobject.Date) *entity.WeeklyTrend {
	currentStart := today.AddDays(-(TrendWindowDays - 1))
	previousEnd := currentStart.AddDays(-1)
	previousStart := previousEnd.AddDays(-(TrendWindowDays - 1))

	current := SumInRange(expenses, currentStart, today)
	previous := SumInRange(expenses, previousStart, previousEnd)
	if previous.Sign() <= 0 {
		return nil
	}

	change := current.Sub(previous).Div(previous).Mul(hundred)
	direction := entity.TrendStable
	if change.Abs().GreaterThanOrEqual(decimal.NewFromInt(StableChangePercent)) {
		direction = entity.TrendUp
		if change.IsNegative() {
			direction = entity.TrendDown
		}
	}

	return &entity.WeeklyTrend{
		CurrentWeek:   current,
		PreviousWeek:  previous,
		ChangePercent: change,
		Direction:     direction,
		Confidence:    confidenceFromChange(change),
	}
}

// MonthlyProjection extrapolates the month-to-date daily average. Nil with no expenses this month.
func MonthlyProjection(expenses []*entity.Expense, today valueobject.Date) *entity.MonthlyProjection {
	month := FilterInRange(expenses, today.FirstOfMonth(), today)
	if len(month) == 0 {
		return nil
	}

	spent := Sum(month)
	elapsed := today.Day()
	days := today.DaysInMonth()
	average := spent.Div(decimal.NewFromInt(int64(elapsed)))

	return &entity.MonthlyProjection{
		SpentToDate:    spent,
		DailyAverage:   average,
		ProjectedTotal: average.Mul(decimal.NewFromInt(int64(days))),
		DaysElapsed:    elapsed,
		DaysInMonth:    days,
		Confidence:     confidenceFromDays(elapsed),
	}
}

// DominantCategory returns the category with the largest share this month. Nil with no expenses.
func DominantCategory(expenses []*entity.Expense, today valueobject.Date) *entity.DominantCategory {
	totals := AggregateByCategory(FilterInRange(expenses, today.FirstOfMonth(), today))
	if len(totals) == 0 {
		return nil
	}

	top := totals[0]
	return &entity.DominantCategory{
		Category:   top.Category,
		Total:      top.Total,
		Percentage: top.Percentage,
		Confidence: confidenceFromDays(today.Day()),
	}
}

// BudgetOverrunRisk reads the projection of the active budget. Nil without a budget,
// before the period starts or with nothing spent.
func BudgetOverrunRisk(status *entity.BudgetStatus) *entity.BudgetOverrunRisk {
	if status == nil || status.Budget == nil || status.DaysElapsed == 0 || status.Spent.Sign() <= 0 {
		return nil
	}

	amount := status.Budget.Amount
	return &entity.BudgetOverrunRisk{
		BudgetAmount:   amount,
		ProjectedTotal: status.ProjectedTotal,
		ProjectedOver:  decimal.Max(decimal.Zero, status.ProjectedTotal.Sub(amount)),
		WillExceed:     status.ProjectedTotal.GreaterThan(amount),
		Confidence:     confidenceFromDays(status.DaysElapsed),
	}
}

// WeekdayConcentration finds the weekday with the largest share of the last 28 days.
// Nil when nothing positive was spent in the window. Ties go to the earlier weekday.
func WeekdayConcentration(expenses []*entity.Expense, today valueobject.Date) *entity.WeekdayConcentration {
	window := FilterInRange(expenses, today.AddDays(-(WeekdayWindowDays - 1)), today)
	total := Sum(window)
	if len(window) == 0 || total.Sign() <= 0 {
		return nil
	}

	var byDay [7]decimal.Decimal
	for _, e := range window {
		byDay[e.Date.Weekday()] = byDay[e.Date.Weekday()].Add(e.Amount)
	}

	peak := time.Sunday
	for day := time.Monday; day <= time.Saturday; day++ {
		if byDay[day].GreaterThan(byDay[peak]) {
			peak = day
		}
	}

	share := byDay[peak].Div(total).Mul(hundred)
	return &entity.WeekdayConcentration{
		Weekday:    peak,
		Total:      byDay[peak],
		Percentage: share,
		Confidence: confidenceFromChange(share),
	}
}
