package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestWeeklyTrend(t *testing.T) {
	today := date("2025-09-20")

	tests := []struct {
		name       string
		current    string
		previous   string
		change     string
		direction  entity.TrendDirection
		confidence entity.Confidence
	}{
		{name: "sharp rise", current: "150", previous: "100", change: "50", direction: entity.TrendUp, confidence: entity.ConfidenceHigh},
		{name: "exactly 40 percent", current: "140", previous: "100", change: "40", direction: entity.TrendUp, confidence: entity.ConfidenceHigh},
		{name: "exactly 20 percent drop", current: "80", previous: "100", change: "-20", direction: entity.TrendDown, confidence: entity.ConfidenceMedium},
		{name: "small change", current: "103", previous: "100", change: "3", direction: entity.TrendStable, confidence: entity.ConfidenceLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expenses := []*entity.Expense{
				expense(tt.current, "A", "2025-09-14"),
				expense(tt.previous, "A", "2025-09-13"),
			}

			trend := WeeklyTrend(expenses, today)

			require.NotNil(t, trend)
			assert.True(t, amount(tt.change).Equal(trend.ChangePercent), trend.ChangePercent.String())
			assert.Equal(t, tt.direction, trend.Direction)
			assert.Equal(t, tt.confidence, trend.Confidence)
		})
	}

	t.Run("nil when previous week is empty", func(t *testing.T) {
		assert.Nil(t, WeeklyTrend([]*entity.Expense{expense("10", "A", "2025-09-20")}, today))
		assert.Nil(t, WeeklyTrend(nil, today))
	})
}

func TestMonthlyProjection(t *testing.T) {
	t.Run("projects daily average over the month", func(t *testing.T) {
		expenses := []*entity.Expense{
			expense("300", "A", "2025-09-02"),
			expense("300", "B", "2025-09-09"),
			expense("999", "C", "2025-08-30"),
		}

		projection := MonthlyProjection(expenses, date("2025-09-10"))

		require.NotNil(t, projection)
		assert.True(t, amount("600").Equal(projection.SpentToDate))
		assert.True(t, amount("60").Equal(projection.DailyAverage))
		assert.True(t, amount("1800").Equal(projection.ProjectedTotal))
		assert.Equal(t, 30, projection.DaysInMonth)
		assert.Equal(t, entity.ConfidenceMedium, projection.Confidence)
	})

	t.Run("confidence boundaries by day of month", func(t *testing.T) {
		expenses := []*entity.Expense{expense("10", "A", "2025-09-01")}
		assert.Equal(t, entity.ConfidenceLow, MonthlyProjection(expenses, date("2025-09-06")).Confidence)
		assert.Equal(t, entity.ConfidenceMedium, MonthlyProjection(expenses, date("2025-09-07")).Confidence)
		assert.Equal(t, entity.ConfidenceMedium, MonthlyProjection(expenses, date("2025-09-14")).Confidence)
		assert.Equal(t, entity.ConfidenceHigh, MonthlyProjection(expenses, date("2025-09-15")).Confidence)
	})

	t.Run("nil without expenses this month", func(t *testing.T) {
		assert.Nil(t, MonthlyProjection([]*entity.Expense{expense("10", "A", "2025-08-31")}, date("2025-09-10")))
	})
}

func TestDominantCategory(t *testing.T) {
	expenses := []*entity.Expense{
		expense("700", "Comida", "2025-09-02"),
		expense("300", "Ocio", "2025-09-03"),
		expense("5000", "Renta", "2025-08-01"),
	}

	dominant := DominantCategory(expenses, date("2025-09-20"))

	require.NotNil(t, dominant)
	assert.Equal(t, "Comida", dominant.Category)
	assert.True(t, amount("70").Equal(dominant.Percentage))
	assert.Equal(t, entity.ConfidenceHigh, dominant.Confidence)

	assert.Nil(t, DominantCategory(nil, date("2025-09-20")))
}

func TestBudgetOverrunRisk(t *testing.T) {
	budget := newBudget("500000", "2025-09-01", datePtr("2025-09-30"))

	t.Run("projection above amount", func(t *testing.T) {
		status := ComputeStatus(budget, []*entity.Expense{expense("400000", "A", "2025-09-05")}, date("2025-09-20"))

		risk := BudgetOverrunRisk(&status)

		require.NotNil(t, risk)
		assert.True(t, risk.WillExceed)
		assert.True(t, amount("100000").Equal(risk.ProjectedOver))
		assert.Equal(t, entity.ConfidenceHigh, risk.Confidence)
	})

	t.Run("projection within amount", func(t *testing.T) {
		status := ComputeStatus(budget, []*entity.Expense{expense("50000", "A", "2025-09-05")}, date("2025-09-10"))

		risk := BudgetOverrunRisk(&status)

		require.NotNil(t, risk)
		assert.False(t, risk.WillExceed)
		assert.True(t, risk.ProjectedOver.IsZero())
		assert.Equal(t, entity.ConfidenceMedium, risk.Confidence)
	})

	t.Run("nil on insufficient data", func(t *testing.T) {
		assert.Nil(t, BudgetOverrunRisk(nil))

		future := ComputeStatus(newBudget("1000", "2025-10-01", nil), nil, date("2025-09-20"))
		assert.Nil(t, BudgetOverrunRisk(&future))

		idle := ComputeStatus(budget, nil, date("2025-09-20"))
		assert.Nil(t, BudgetOverrunRisk(&idle))
	})
}

func TestWeekdayConcentration(t *testing.T) {
	today := date("2025-09-20") // Saturday

	t.Run("finds the peak weekday", func(t *testing.T) {
		expenses := []*entity.Expense{
			expense("60", "A", "2025-09-19"), // Friday
			expense("20", "A", "2025-09-12"), // Friday
			expense("20", "A", "2025-09-15"), // Monday
			expense("500", "A", "2025-08-01"),
		}

		concentration := WeekdayConcentration(expenses, today)

		require.NotNil(t, concentration)
		assert.Equal(t, time.Friday, concentration.Weekday)
		assert.True(t, amount("80").Equal(concentration.Percentage))
		assert.Equal(t, entity.ConfidenceHigh, concentration.Confidence)
	})

	t.Run("nil without expenses in window", func(t *testing.T) {
		assert.Nil(t, WeekdayConcentration([]*entity.Expense{expense("10", "A", "2025-08-01")}, today))
	})
}

func TestPredict(t *testing.T) {
	t.Run("sparse data yields all nil", func(t *testing.T) {
		prediction := Predict(nil, nil, date("2025-09-20"))
		assert.Nil(t, prediction.WeeklyTrend)
		assert.Nil(t, prediction.MonthlyProjection)
		assert.Nil(t, prediction.DominantCategory)
		assert.Nil(t, prediction.BudgetOverrunRisk)
		assert.Nil(t, prediction.WeekdayConcentration)
	})

	t.Run("lookback covers month and weekday window", func(t *testing.T) {
		assert.Equal(t, "2025-08-24", PredictionLookbackStart(date("2025-09-20")).String())
		assert.Equal(t, "2025-09-01", PredictionLookbackStart(date("2025-09-30")).String())
	})
}
