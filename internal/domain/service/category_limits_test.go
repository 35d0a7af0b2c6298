package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
)

func TestEvaluateCategoryLimits(t *testing.T) {
	t.Run("exceeded limit keeps negative remaining", func(t *testing.T) {
		limits := map[string]decimal.Decimal{"Comida": amount("200000")}
		totals := []entity.CategoryTotal{{Category: "Comida", Total: amount("250000"), Count: 3}}

		statuses := EvaluateCategoryLimits(limits, totals)

		require.Len(t, statuses, 1)
		assert.Equal(t, entity.BudgetStatusExceeded, statuses[0].Status)
		assert.True(t, amount("-50000").Equal(statuses[0].Remaining))
		assert.True(t, amount("125").Equal(statuses[0].Percentage))
	})

	t.Run("sorted most critical first and skips non-positive limits", func(t *testing.T) {
		limits := map[string]decimal.Decimal{
			"Comida":     amount("100"),
			"Ocio":       amount("100"),
			"Transporte": amount("100"),
			"Salud":      amount("0"),
			"Regalos":    amount("-5"),
		}
		totals := []entity.CategoryTotal{
			{Category: "Ocio", Total: amount("80")},
			{Category: "Comida", Total: amount("20")},
			{Category: "Salud", Total: amount("999")},
		}

		statuses := EvaluateCategoryLimits(limits, totals)

		require.Len(t, statuses, 3)
		assert.Equal(t, "Ocio", statuses[0].Category)
		assert.Equal(t, entity.BudgetStatusWarning, statuses[0].Status)
		assert.Equal(t, "Comida", statuses[1].Category)
		assert.Equal(t, "Transporte", statuses[2].Category)
		assert.True(t, statuses[2].Spent.IsZero())
		assert.Equal(t, entity.BudgetStatusSafe, statuses[2].Status)
	})

	t.Run("no limits", func(t *testing.T) {
		statuses := EvaluateCategoryLimits(nil, []entity.CategoryTotal{{Category: "A", Total: amount("1")}})
		assert.NotNil(t, statuses)
		assert.Empty(t, statuses)
	})
}
