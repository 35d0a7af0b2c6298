package service

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

// EvaluateCategoryLimits reports spending for every category with a positive limit,
// most critical first. Ties are broken by category name.
func EvaluateCategoryLimits(limits map[string]decimal.Decimal, totals []entity.CategoryTotal) []entity.CategoryLimitStatus {
	spentBy := make(map[string]decimal.Decimal, len(totals))
	for _, t := range totals {
		spentBy[t.Category] = t.Total
	}

	statuses := make([]entity.CategoryLimitStatus, 0, len(limits))
	for category, limit := range limits {
		if limit.Sign() <= 0 {
			continue
		}
		spent, ok := spentBy[category]
		if !ok {
			spent = decimal.Zero
		}
		percentage := percentOf(spent, limit)
		statuses = append(statuses, entity.CategoryLimitStatus{
			Category:   category,
			Limit:      limit,
			Spent:      spent,
			Remaining:  limit.Sub(spent),
			Percentage: percentage,
			Status:     ClassifyPercentage(percentage),
		})
	}

	sort.Slice(statuses, func(i, j int) bool {
		if !statuses[i].Percentage.Equal(statuses[j].Percentage) {
			return statuses[i].Percentage.GreaterThan(statuses[j].Percentage)
		}
		return statuses[i].Category < statuses[j].Category
	})
	return statuses
}
