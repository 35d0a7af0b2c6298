package prediction

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/usecase/usecasetest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func TestGetPredictionUseCase(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("no expenses yields no heuristics", func(t *testing.T) {
		uc := NewGetPredictionUseCase(usecasetest.NewExpenseRepo(), usecasetest.NewBudgetRepo(), usecasetest.NewClock("2025-09-20"))
		out, err := uc.Execute(ctx, GetPredictionInput{UserID: userID})
		require.NoError(t, err)

		assert.Equal(t, "2025-09-20", out.Date.String())
		assert.Nil(t, out.Prediction.MonthlyProjection)
		assert.Nil(t, out.Prediction.DominantCategory)
		assert.Nil(t, out.Prediction.BudgetOverrunRisk)
		assert.Nil(t, out.Prediction.WeekdayConcentration)
	})

	t.Run("active budget feeds the overrun risk", func(t *testing.T) {
		expenses := usecasetest.NewExpenseRepo()
		budgets := usecasetest.NewBudgetRepo()

		budget := entity.NewBudget(userID, "Sep 2025", decimal.NewFromInt(500000),
			valueobject.MustParseDate("2025-09-01"), nil)
		end := valueobject.MustParseDate("2025-09-30")
		budget.EndDate = &end
		require.NoError(t, budgets.Create(ctx, budget))

		for _, e := range []*entity.Expense{
			entity.NewExpense(userID, decimal.NewFromInt(300000), "Comida", valueobject.MustParseDate("2025-09-05"), ""),
			entity.NewExpense(userID, decimal.NewFromInt(100000), "Lazer", valueobject.MustParseDate("2025-09-18"), ""),
		} {
			require.NoError(t, expenses.Create(ctx, e))
		}

		out, err := NewGetPredictionUseCase(expenses, budgets, usecasetest.NewClock("2025-09-20")).Execute(ctx, GetPredictionInput{UserID: userID})
		require.NoError(t, err)

		require.NotNil(t, out.Prediction.BudgetOverrunRisk)
		assert.True(t, out.Prediction.BudgetOverrunRisk.WillExceed)
		assert.True(t, decimal.NewFromInt(600000).Equal(out.Prediction.BudgetOverrunRisk.ProjectedTotal))

		require.NotNil(t, out.Prediction.DominantCategory)
		assert.Equal(t, "Comida", out.Prediction.DominantCategory.Category)

		require.NotNil(t, out.Prediction.MonthlyProjection)
		assert.Equal(t, 20, out.Prediction.MonthlyProjection.DaysElapsed)
	})
}
