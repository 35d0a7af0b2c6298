package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// AggregateByCategory groups expenses by category. Categories without expenses are omitted.
// Results are ordered by total descending, then by category name.
func AggregateByCategory(expenses []*entity.Expense) []entity.CategoryTotal {
	index := make(map[string]int)
	totals := make([]entity.CategoryTotal, 0)
	grand := decimal.Zero

	for _, e := range expenses {
		i, ok := index[e.Category]
		if !ok {
			i = len(totals)
			index[e.Category] = i
			totals = append(totals, entity.CategoryTotal{Category: e.Category, Total: decimal.Zero})
		}
		totals[i].Total = totals[i].Total.Add(e.Amount)
		totals[i].Count++
		grand = grand.Add(e.Amount)
	}

	for i := range totals {
		if grand.IsZero() {
			totals[i].Percentage = decimal.Zero
			continue
		}
		totals[i].Percentage = totals[i].Total.Div(grand).Mul(hundred)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		if !totals[i].Total.Equal(totals[j].Total) {
			return totals[i].Total.GreaterThan(totals[j].Total)
		}
		return totals[i].Category < totals[j].Category
	})
	return totals
}

// Sum adds up the amounts of all expenses.
func Sum(expenses []*entity.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// SumInRange adds up expenses dated within [start, end].
func SumInRange(expenses []*entity.Expense, start, end valueobject.Date) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.Date.Between(start, end) {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// FilterInRange returns the expenses dated within [start, end], preserving order.
func FilterInRange(expenses []*entity.Expense, start, end valueobject.Date) []*entity.Expense {
	filtered := make([]*entity.Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Date.Between(start, end) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
