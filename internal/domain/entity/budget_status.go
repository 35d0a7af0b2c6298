package entity

import (
	"github.com/shopspring/decimal"
)

// BudgetStatusLevel is the tier of spending against a limit.
type BudgetStatusLevel string

const (
	BudgetStatusSafe     BudgetStatusLevel = "safe"
	BudgetStatusWarning  BudgetStatusLevel = "warning"
	BudgetStatusExceeded BudgetStatusLevel = "exceeded"
)

// Severity orders the levels so escalations can be detected.
func (l BudgetStatusLevel) Severity() int {
	switch l {
	case BudgetStatusWarning:
		return 1
	case BudgetStatusExceeded:
		return 2
	default:
		return 0
	}
}

// BudgetStatus is the projected state of a budget at a given day.
// It is always derived from the budget and its expenses, never stored.
type BudgetStatus struct {
	Budget                *Budget
	Spent                 decimal.Decimal
	Remaining             decimal.Decimal
	Percentage            decimal.Decimal
	Status                BudgetStatusLevel
	DaysElapsed           int
	DaysRemaining         int
	TotalDays             int
	AverageDailySpending  decimal.Decimal
	RecommendedDailyLimit decimal.Decimal
	ProjectedTotal        decimal.Decimal
}

// CategoryTotal is the sum of expenses for one category.
type CategoryTotal struct {
	Category   string
	Total      decimal.Decimal
	Count      int
	Percentage decimal.Decimal
}

// CategoryLimitStatus reports spending against one configured category limit.
type CategoryLimitStatus struct {
	Category   string
	Limit      decimal.Decimal
	Spent      decimal.Decimal
	Remaining  decimal.Decimal
	Percentage decimal.Decimal
	Status     BudgetStatusLevel
}
