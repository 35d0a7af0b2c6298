package service

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// ComputeStatus projects a budget at day now. The caller scopes expenses to the
// budget period (see FilterInRange); they are summed as given.
func ComputeStatus(budget *entity.Budget, expensesInPeriod []*entity.Expense, now valueobject.Date) entity.BudgetStatus {
	spent := Sum(expensesInPeriod)
	remaining := budget.Amount.Sub(spent)
	percentage := percentOf(spent, budget.Amount)

	totalDays := budget.StartDate.DaysUntil(budget.EffectiveEndDate()) + 1
	if totalDays < 0 {
		totalDays = 0
	}
	daysElapsed := clamp(budget.StartDate.DaysUntil(now)+1, 0, totalDays)
	daysRemaining := totalDays - daysElapsed

	average := decimal.Zero
	if daysElapsed > 0 {
		average = spent.Div(decimal.NewFromInt(int64(daysElapsed)))
	}

	recommended := decimal.Zero
	if daysRemaining > 0 {
		recommended = decimal.Max(decimal.Zero, remaining).Div(decimal.NewFromInt(int64(daysRemaining)))
	}

	return entity.BudgetStatus{
		Budget:                budget,
		Spent:                 spent,
		Remaining:             remaining,
		Percentage:            percentage,
		Status:                ClassifyPercentage(percentage),
		DaysElapsed:           daysElapsed,
		DaysRemaining:         daysRemaining,
		TotalDays:             totalDays,
		AverageDailySpending:  average,
		RecommendedDailyLimit: recommended,
		ProjectedTotal:        average.Mul(decimal.NewFromInt(int64(totalDays))),
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
