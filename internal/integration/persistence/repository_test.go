package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.AllModels()...))
	return db
}

func createUser(t *testing.T, db *gorm.DB) *entity.User {
	t.Helper()
	user := entity.NewUser(uuid.NewString()+"@example.com", "Ana", "hash", time.Now().UTC())
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func date(s string) valueobject.Date {
	return valueobject.MustParseDate(s)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewUserRepository(db)
	user := createUser(t, db)

	found, err := repo.FindByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, "Ana", found.Name)

	exists, err := repo.ExistsByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerror.ErrUserNotFound)
}

func TestExpenseRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewExpenseRepository(db)
	user := createUser(t, db)

	seed := []*entity.Expense{
		entity.NewExpense(user.ID, decimal.NewFromInt(100), "Comida", date("2025-09-01"), "Mercado"),
		entity.NewExpense(user.ID, decimal.NewFromInt(50), "Comida", date("2025-09-03"), "mercado"),
		entity.NewExpense(user.ID, decimal.NewFromInt(30), "Casa", date("2025-09-05"), "Mercado"),
		entity.NewExpense(user.ID, decimal.NewFromInt(70), "Transporte", date("2025-10-02"), "Uber"),
	}
	for _, e := range seed {
		require.NoError(t, repo.Create(ctx, e))
	}

	t.Run("filters by range newest first", func(t *testing.T) {
		start, end := date("2025-09-01"), date("2025-09-30")
		got, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{UserID: user.ID, StartDate: &start, EndDate: &end})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "2025-09-05", got[0].Date.String())
		assert.True(t, got[2].Amount.Equal(decimal.NewFromInt(100)))
	})

	t.Run("filters by category", func(t *testing.T) {
		got, err := repo.FindByFilter(ctx, adapter.ExpenseFilter{UserID: user.ID, Category: "Comida"})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("most used category ignores case", func(t *testing.T) {
		category, err := repo.MostUsedCategory(ctx, user.ID, "MERCADO")
		require.NoError(t, err)
		assert.Equal(t, "Comida", category)

		category, err = repo.MostUsedCategory(ctx, user.ID, "Netflix")
		require.NoError(t, err)
		assert.Empty(t, category)
	})

	t.Run("lists distinct categories", func(t *testing.T) {
		categories, err := repo.ListCategories(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"Casa", "Comida", "Transporte"}, categories)
	})

	t.Run("update and soft delete", func(t *testing.T) {
		e := seed[3]
		e.Amount = decimal.NewFromInt(75)
		require.NoError(t, repo.Update(ctx, e))

		found, err := repo.FindByID(ctx, e.ID)
		require.NoError(t, err)
		assert.True(t, found.Amount.Equal(decimal.NewFromInt(75)))

		require.NoError(t, repo.Delete(ctx, e.ID))
		_, err = repo.FindByID(ctx, e.ID)
		assert.ErrorIs(t, err, domainerror.ErrExpenseNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, e.ID), domainerror.ErrExpenseNotFound)

		var count int64
		require.NoError(t, db.Unscoped().Model(&model.ExpenseModel{}).Where("id = ?", e.ID).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestBudgetRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewBudgetRepository(db)
	user := createUser(t, db)

	first := entity.NewBudget(user.ID, "Setembro", decimal.NewFromInt(3000), date("2025-09-01"), nil)
	require.NoError(t, repo.Create(ctx, first))

	second := entity.NewBudget(user.ID, "Outubro", decimal.NewFromInt(3500), date("2025-10-01"), nil)
	require.NoError(t, repo.Create(ctx, second))

	active, err := repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, active.ID)

	old, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, old.IsActive)

	all, err := repo.FindAllActive(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.UpdateAlertStatus(ctx, second.ID, entity.BudgetStatusWarning))
	active, err = repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BudgetStatusWarning, active.LastAlertStatus)

	old.IsActive = true
	require.NoError(t, repo.Update(ctx, old))
	active, err = repo.FindActiveByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, active.ID)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.FindActiveByUser(ctx, user.ID)
	assert.ErrorIs(t, err, domainerror.ErrNoActiveBudget)
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewSettingsRepository(db)
	user := createUser(t, db)

	settings, err := repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, settings)

	saved := entity.DefaultSettings(user.ID)
	saved.EmergencyBufferPercent = 20
	saved.CategoryLimits["Comida"] = decimal.NewFromInt(800)
	saved.CategoryLimits["Lazer"] = decimal.NewFromInt(200)
	require.NoError(t, repo.Save(ctx, saved))

	saved.CategoryLimits = map[string]decimal.Decimal{"Comida": decimal.NewFromInt(900)}
	require.NoError(t, repo.Save(ctx, saved))

	settings, err = repo.FindByUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, settings)
	assert.Equal(t, 20, settings.EmergencyBufferPercent)
	require.Len(t, settings.CategoryLimits, 1)
	assert.True(t, settings.CategoryLimits["Comida"].Equal(decimal.NewFromInt(900)))
}

func TestRecurringRepositories(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	defs := NewRecurringExpenseRepository(db)
	pending := NewPendingExpenseRepository(db)
	user := createUser(t, db)

	def := entity.NewRecurringExpense(
		user.ID, decimal.NewFromInt(120), "Internet", "Casa",
		nil, valueobject.DaySet{5, 20},
		date("2025-09-01"), nil, true, 2,
	)
	def.NextDueDate = date("2025-09-05")
	require.NoError(t, defs.Create(ctx, def))

	t.Run("round trips execution days", func(t *testing.T) {
		found, err := defs.FindByID(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, valueobject.DaySet{5, 20}, found.ExecutionDates)
		assert.Nil(t, found.IntervalDays)
		assert.Equal(t, "2025-09-05", found.NextDueDate.String())
	})

	t.Run("lists users with active definitions", func(t *testing.T) {
		users, err := defs.FindUsersWithActive(ctx)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{user.ID}, users)
	})

	rows := []*entity.PendingRecurringExpense{
		entity.NewPendingRecurringExpense(def, date("2025-09-05")),
		entity.NewPendingRecurringExpense(def, date("2025-09-20")),
	}
	advanced := *def
	advanced.NextDueDate = date("2025-10-05")

	t.Run("materialization is idempotent", func(t *testing.T) {
		inserted, err := pending.SaveMaterialization(ctx, rows, []*entity.RecurringExpense{&advanced})
		require.NoError(t, err)
		assert.Equal(t, rows, inserted)

		again := []*entity.PendingRecurringExpense{
			entity.NewPendingRecurringExpense(def, date("2025-09-05")),
			entity.NewPendingRecurringExpense(def, date("2025-10-05")),
		}
		inserted, err = pending.SaveMaterialization(ctx, again, nil)
		require.NoError(t, err)
		require.Len(t, inserted, 1)
		assert.Equal(t, "2025-10-05", inserted[0].ScheduledDate.String())
		rows = append(rows, inserted[0])

		found, err := defs.FindByID(ctx, def.ID)
		require.NoError(t, err)
		assert.Equal(t, "2025-10-05", found.NextDueDate.String())

		listed, err := pending.FindByUser(ctx, user.ID, entity.PendingStatusPending)
		require.NoError(t, err)
		require.Len(t, listed, 3)
		assert.Equal(t, "2025-09-05", listed[0].ScheduledDate.String())
	})

	t.Run("confirm records the expense", func(t *testing.T) {
		row := rows[0]
		expense := entity.NewExpense(user.ID, row.Amount, row.Category, row.ScheduledDate, row.Description)
		expense.RecurringExpenseID = &def.ID
		row.Confirm(expense.ID)
		require.NoError(t, pending.Confirm(ctx, row, expense))

		stored, err := pending.FindByID(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PendingStatusConfirmed, stored.Status)
		require.NotNil(t, stored.ExpenseID)
		assert.Equal(t, expense.ID, *stored.ExpenseID)

		found, err := defs.FindByID(ctx, def.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LastExecuted)
		assert.Equal(t, "2025-09-05", found.LastExecuted.String())

		err = pending.Confirm(ctx, row, entity.NewExpense(user.ID, row.Amount, row.Category, row.ScheduledDate, ""))
		assert.ErrorIs(t, err, domainerror.ErrPendingExpenseResolved)
	})

	t.Run("reminder marker", func(t *testing.T) {
		require.NoError(t, defs.UpdateLastReminder(ctx, def.ID, date("2025-10-05")))
		found, err := defs.FindByID(ctx, def.ID)
		require.NoError(t, err)
		require.NotNil(t, found.LastReminderFor)
		assert.Equal(t, "2025-10-05", found.LastReminderFor.String())
	})

	t.Run("delete keeps resolved history", func(t *testing.T) {
		require.NoError(t, defs.Delete(ctx, def.ID))

		_, err := defs.FindByID(ctx, def.ID)
		assert.ErrorIs(t, err, domainerror.ErrRecurringExpenseNotFound)

		left, err := pending.FindByUser(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, left, 1)
		assert.Equal(t, entity.PendingStatusConfirmed, left[0].Status)
	})
}

func TestPendingExpenseRepository_Skip(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*gorm.DB, adapter.RecurringExpenseRepository, adapter.PendingExpenseRepository, *entity.RecurringExpense, *entity.PendingRecurringExpense) {
		t.Helper()
		db := newTestDB(t)
		defs := NewRecurringExpenseRepository(db)
		pending := NewPendingExpenseRepository(db)
		user := createUser(t, db)

		def := entity.NewRecurringExpense(
			user.ID, decimal.NewFromInt(80), "Academia", "Saude",
			nil, valueobject.DaySet{10},
			date("2025-09-01"), nil, true, 2,
		)
		require.NoError(t, defs.Create(ctx, def))
		row := entity.NewPendingRecurringExpense(def, date("2025-09-10"))
		_, err := pending.SaveMaterialization(ctx, []*entity.PendingRecurringExpense{row}, nil)
		require.NoError(t, err)
		return db, defs, pending, def, row
	}

	t.Run("skips a pending row once", func(t *testing.T) {
		_, _, pending, _, row := setup(t)

		row.Skip()
		require.NoError(t, pending.Skip(ctx, row))

		stored, err := pending.FindByID(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PendingStatusSkipped, stored.Status)
		assert.NotNil(t, stored.ResolvedAt)

		assert.ErrorIs(t, pending.Skip(ctx, row), domainerror.ErrPendingExpenseResolved)
	})

	t.Run("stale skip does not overwrite a confirmation", func(t *testing.T) {
		db, _, pending, def, row := setup(t)

		stale, err := pending.FindByID(ctx, row.ID)
		require.NoError(t, err)

		expense := entity.NewExpense(row.UserID, row.Amount, row.Category, row.ScheduledDate, row.Description)
		expense.RecurringExpenseID = &def.ID
		row.Confirm(expense.ID)
		require.NoError(t, pending.Confirm(ctx, row, expense))

		stale.Skip()
		assert.ErrorIs(t, pending.Skip(ctx, stale), domainerror.ErrPendingExpenseResolved)

		stored, err := pending.FindByID(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.PendingStatusConfirmed, stored.Status)
		require.NotNil(t, stored.ExpenseID)
		assert.Equal(t, expense.ID, *stored.ExpenseID)

		var expenses int64
		require.NoError(t, db.Model(&model.ExpenseModel{}).Count(&expenses).Error)
		assert.Equal(t, int64(1), expenses)
	})

	t.Run("stale skip does not restore a deleted row", func(t *testing.T) {
		_, defs, pending, def, row := setup(t)

		stale, err := pending.FindByID(ctx, row.ID)
		require.NoError(t, err)
		require.NoError(t, defs.Delete(ctx, def.ID))

		stale.Skip()
		assert.ErrorIs(t, pending.Skip(ctx, stale), domainerror.ErrPendingExpenseResolved)

		_, err = pending.FindByID(ctx, row.ID)
		assert.ErrorIs(t, err, domainerror.ErrPendingExpenseNotFound)
	})
}

func TestRefreshTokenStore(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	store := NewRefreshTokenStore(db)
	user := createUser(t, db)

	require.NoError(t, store.Save(ctx, "live", user.ID, time.Now().UTC().Add(time.Hour)))
	require.NoError(t, store.Save(ctx, "stale", user.ID, time.Now().UTC().Add(-time.Hour)))

	tests := []struct {
		token string
		valid bool
	}{
		{"live", true},
		{"stale", false},
		{"unknown", false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			valid, err := store.IsValid(ctx, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
		})
	}

	require.NoError(t, store.Invalidate(ctx, "live"))
	valid, err := store.IsValid(ctx, "live")
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestEmailQueueRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	repo := NewEmailQueueRepository(db)
	now := time.Now().UTC()

	due := entity.NewEmailJob(entity.TemplateBudgetAlert, "ana@example.com", "Ana", "Alerta", map[string]interface{}{"percentage": "85.0"})
	due.ScheduledAt = now.Add(-time.Minute)
	later := entity.NewEmailJob(entity.TemplateRecurringDue, "ana@example.com", "Ana", "Pendentes", nil)
	later.ScheduledAt = now.Add(time.Hour)
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, later))

	jobs, err := repo.GetPendingJobs(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, due.ID, jobs[0].ID)
	assert.Equal(t, "85.0", jobs[0].TemplateData["percentage"])

	sentAt := now.Add(-48 * time.Hour)
	jobs[0].Status = entity.EmailStatusSent
	jobs[0].ProcessedAt = &sentAt
	require.NoError(t, repo.Update(ctx, jobs[0]))

	removed, err := repo.DeleteSentBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = repo.GetByID(ctx, due.ID)
	assert.ErrorIs(t, err, domainerror.ErrEmailJobNotFound)

	byRecipient, err := repo.GetByRecipient(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Len(t, byRecipient, 1)
}
