package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func newBudget(value, start string, end *valueobject.Date) *entity.Budget {
	return entity.NewBudget(testUserID, "Septiembre", amount(value), date(start), end)
}

func TestComputeStatus(t *testing.T) {
	t.Run("mid-period budget", func(t *testing.T) {
		budget := newBudget("500000", "2025-09-01", datePtr("2025-09-30"))
		expenses := []*entity.Expense{
			expense("150000", "Comida", "2025-09-05"),
			expense("250000", "Renta", "2025-09-10"),
		}

		status := ComputeStatus(budget, expenses, date("2025-09-20"))

		assert.True(t, amount("400000").Equal(status.Spent))
		assert.True(t, amount("100000").Equal(status.Remaining))
		assert.True(t, amount("80").Equal(status.Percentage))
		assert.Equal(t, entity.BudgetStatusWarning, status.Status)
		assert.Equal(t, 30, status.TotalDays)
		assert.Equal(t, 20, status.DaysElapsed)
		assert.Equal(t, 10, status.DaysRemaining)
		assert.True(t, amount("20000").Equal(status.AverageDailySpending))
		assert.True(t, amount("10000").Equal(status.RecommendedDailyLimit))
		assert.True(t, amount("600000").Equal(status.ProjectedTotal))
	})

	t.Run("is idempotent", func(t *testing.T) {
		budget := newBudget("1000", "2025-09-01", nil)
		expenses := []*entity.Expense{expense("250", "A", "2025-09-03")}

		first := ComputeStatus(budget, expenses, date("2025-09-10"))
		second := ComputeStatus(budget, expenses, date("2025-09-10"))
		assert.Equal(t, first, second)
	})

	t.Run("absent end date runs to month end", func(t *testing.T) {
		status := ComputeStatus(newBudget("1000", "2025-02-10", nil), nil, date("2025-02-10"))
		assert.Equal(t, 19, status.TotalDays)
		assert.Equal(t, 1, status.DaysElapsed)
	})

	t.Run("future budget yields zeros", func(t *testing.T) {
		status := ComputeStatus(newBudget("1000", "2025-10-01", nil), nil, date("2025-09-20"))
		assert.Equal(t, 0, status.DaysElapsed)
		assert.Equal(t, 31, status.DaysRemaining)
		assert.True(t, status.AverageDailySpending.IsZero())
		assert.True(t, status.ProjectedTotal.IsZero())
		assert.Equal(t, entity.BudgetStatusSafe, status.Status)
	})

	t.Run("past budget is fully elapsed", func(t *testing.T) {
		status := ComputeStatus(newBudget("1000", "2025-08-01", nil), []*entity.Expense{expense("1200", "A", "2025-08-02")}, date("2025-09-20"))
		assert.Equal(t, 31, status.DaysElapsed)
		assert.Equal(t, 0, status.DaysRemaining)
		assert.True(t, status.RecommendedDailyLimit.IsZero())
		assert.True(t, amount("-200").Equal(status.Remaining))
		assert.Equal(t, entity.BudgetStatusExceeded, status.Status)
	})

	t.Run("zero amount", func(t *testing.T) {
		budget := newBudget("0", "2025-09-01", nil)

		empty := ComputeStatus(budget, nil, date("2025-09-02"))
		assert.True(t, empty.Percentage.IsZero())
		assert.Equal(t, entity.BudgetStatusSafe, empty.Status)

		spent := ComputeStatus(budget, []*entity.Expense{expense("1", "A", "2025-09-01")}, date("2025-09-02"))
		assert.True(t, OverLimitPercentage.Equal(spent.Percentage))
		assert.Equal(t, entity.BudgetStatusExceeded, spent.Status)
	})
}

func TestClassifyPercentage(t *testing.T) {
	tests := []struct {
		percentage string
		expected   entity.BudgetStatusLevel
	}{
		{percentage: "0", expected: entity.BudgetStatusSafe},
		{percentage: "74.999", expected: entity.BudgetStatusSafe},
		{percentage: "75.0", expected: entity.BudgetStatusWarning},
		{percentage: "99.99", expected: entity.BudgetStatusWarning},
		{percentage: "100.0", expected: entity.BudgetStatusExceeded},
		{percentage: "250", expected: entity.BudgetStatusExceeded},
	}

	for _, tt := range tests {
		t.Run(tt.percentage, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyPercentage(amount(tt.percentage)))
		})
	}
}

func TestBudgetStatusLevel_Severity(t *testing.T) {
	assert.Less(t, entity.BudgetStatusSafe.Severity(), entity.BudgetStatusWarning.Severity())
	assert.Less(t, entity.BudgetStatusWarning.Severity(), entity.BudgetStatusExceeded.Severity())
	assert.Equal(t, 0, entity.BudgetStatusLevel("").Severity())
}
