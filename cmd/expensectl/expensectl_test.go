package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	"github.com/expense-tracker/backend/internal/application/usecase/usecasetest"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type cliFixture struct {
	user        *entity.User
	users       *usecasetest.UserRepo
	expenses    *usecasetest.ExpenseRepo
	budgets     *usecasetest.BudgetRepo
	locker      *usecasetest.Locker
	materialize *recurring.MaterializePendingUseCase
	listPending *recurring.ListPendingUseCase
	status      *budget.GetBudgetStatusUseCase
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	ctx := context.Background()

	user := entity.NewUser("ana@example.com", "Ana", "hashed:password", time.Now())
	expenses := usecasetest.NewExpenseRepo()
	budgets := usecasetest.NewBudgetRepo()
	recurringRepo, pendingRepo := usecasetest.NewRecurringRepos(expenses)
	locker := usecasetest.NewLocker()
	clock := usecasetest.NewClock("2025-09-20")

	weekly := 7
	def := entity.NewRecurringExpense(
		user.ID, decimal.NewFromInt(120), "Academia", "Saude",
		&weekly, nil, valueobject.MustParseDate("2025-09-01"), nil, true, 2,
	)
	require.NoError(t, recurringRepo.Create(ctx, def))

	return &cliFixture{
		user:        user,
		users:       usecasetest.NewUserRepo(user),
		expenses:    expenses,
		budgets:     budgets,
		locker:      locker,
		materialize: recurring.NewMaterializePendingUseCase(recurringRepo, pendingRepo, locker, clock),
		listPending: recurring.NewListPendingUseCase(pendingRepo, recurringRepo, clock),
		status:      budget.NewGetBudgetStatusUseCase(budgets, expenses, usecasetest.NewSettingsRepo(), clock),
	}
}

func TestMaterializeUsers(t *testing.T) {
	ctx := context.Background()

	t.Run("through an explicit date", func(t *testing.T) {
		f := newCLIFixture(t)
		var out bytes.Buffer
		date := valueobject.MustParseDate("2025-09-10")

		require.NoError(t, materializeUsers(ctx, &out, f.materialize, []uuid.UUID{f.user.ID}, &date))
		assert.Contains(t, out.String(), "Pending created: 1")
	})

	t.Run("rejects a date after today", func(t *testing.T) {
		f := newCLIFixture(t)
		var out bytes.Buffer
		date := valueobject.MustParseDate("2025-12-01")

		err := materializeUsers(ctx, &out, f.materialize, []uuid.UUID{f.user.ID}, &date)
		assert.ErrorIs(t, err, domainerror.ErrFutureMaterializationDate)
		assert.Contains(t, out.String(), "Pending created: 0")
	})

	t.Run("defaults to today and is idempotent", func(t *testing.T) {
		f := newCLIFixture(t)
		var out bytes.Buffer

		require.NoError(t, materializeUsers(ctx, &out, f.materialize, []uuid.UUID{f.user.ID}, nil))
		assert.Contains(t, out.String(), "Pending created: 2")

		out.Reset()
		require.NoError(t, materializeUsers(ctx, &out, f.materialize, []uuid.UUID{f.user.ID}, nil))
		assert.Contains(t, out.String(), "Pending created: 0")
	})

	t.Run("locked users are skipped", func(t *testing.T) {
		f := newCLIFixture(t)
		f.locker.Hold(recurring.MaterializeLockKey(f.user.ID))
		var out bytes.Buffer

		require.NoError(t, materializeUsers(ctx, &out, f.materialize, []uuid.UUID{f.user.ID}, nil))
		assert.Contains(t, out.String(), "Skipped (locked): 1")
	})
}

func TestResolveUser(t *testing.T) {
	ctx := context.Background()
	f := newCLIFixture(t)

	id, err := resolveUser(ctx, f.users, f.user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, id)

	id, err = resolveUser(ctx, f.users, "  ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, f.user.ID, id)

	_, err = resolveUser(ctx, f.users, "nobody@example.com")
	assert.ErrorContains(t, err, "not found")
}

func TestPrintStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("without an active budget", func(t *testing.T) {
		f := newCLIFixture(t)
		var out bytes.Buffer

		require.NoError(t, printStatus(ctx, &out, f.status, f.listPending, f.user.ID))
		assert.Contains(t, out.String(), "none active")
		assert.Contains(t, out.String(), "Pending:  0")
	})

	t.Run("with budget and pending rows", func(t *testing.T) {
		f := newCLIFixture(t)
		b := entity.NewBudget(f.user.ID, "Setembro", decimal.NewFromInt(500000), valueobject.MustParseDate("2025-09-01"), nil)
		require.NoError(t, f.budgets.Create(ctx, b))
		require.NoError(t, f.expenses.Create(ctx, entity.NewExpense(f.user.ID, decimal.NewFromInt(400000), "Comida", valueobject.MustParseDate("2025-09-05"), "")))
		_, err := f.materialize.Execute(ctx, recurring.MaterializePendingInput{UserID: f.user.ID})
		require.NoError(t, err)

		var out bytes.Buffer
		require.NoError(t, printStatus(ctx, &out, f.status, f.listPending, f.user.ID))

		text := out.String()
		assert.Contains(t, text, "Setembro (2025-09-01 to 2025-09-30)")
		assert.Contains(t, text, "400000.00 of 500000.00 (80.0%, warning)")
		assert.Contains(t, text, "20 elapsed, 10 remaining")
		assert.Contains(t, text, "Projected:")
		assert.Contains(t, text, "600000.00")
		assert.Contains(t, text, "Academia")
	})
}
