package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func newDefinition(interval *int, days valueobject.DaySet, start, next string) *entity.RecurringExpense {
	def := entity.NewRecurringExpense(testUserID, amount("15000"), "Netflix", "Ocio", interval, days, date(start), nil, true, 1)
	def.NextDueDate = date(next)
	return def
}

func scheduledDates(rows []*entity.PendingRecurringExpense) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ScheduledDate.String())
	}
	return out
}

func TestMaterializePending(t *testing.T) {
	t.Run("creates every lapsed occurrence and advances past now", func(t *testing.T) {
		def := newDefinition(intPtr(7), nil, "2025-09-01", "2025-09-08")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-20"))

		assert.Equal(t, []string{"2025-09-08", "2025-09-15"}, scheduledDates(result.Created))
		require.Len(t, result.Advanced, 1)
		assert.Equal(t, "2025-09-22", result.Advanced[0].NextDueDate.String())
		assert.True(t, result.Advanced[0].IsActive)
		// input untouched
		assert.Equal(t, "2025-09-08", def.NextDueDate.String())

		row := result.Created[0]
		assert.Equal(t, def.ID, row.RecurringExpenseID)
		assert.Equal(t, entity.PendingStatusPending, row.Status)
		assert.True(t, def.Amount.Equal(row.Amount))
		assert.Equal(t, "Ocio", row.Category)
		assert.Equal(t, "Netflix", row.Description)
	})

	t.Run("due today is materialized", func(t *testing.T) {
		def := newDefinition(nil, valueobject.DaySet{20}, "2025-09-01", "2025-09-20")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-20"))

		assert.Equal(t, []string{"2025-09-20"}, scheduledDates(result.Created))
		assert.Equal(t, "2025-10-20", result.Advanced[0].NextDueDate.String())
	})

	t.Run("second run with same now creates nothing", func(t *testing.T) {
		def := newDefinition(intPtr(15), nil, "2025-08-01", "2025-08-16")
		now := date("2025-09-20")

		first := MaterializePending([]*entity.RecurringExpense{def}, nil, now)
		require.NotEmpty(t, first.Created)

		second := MaterializePending(first.Advanced, first.Created, now)
		assert.Empty(t, second.Created)
		assert.Empty(t, second.Advanced)

		// a partial retry from the stale definition is still deduplicated
		retry := MaterializePending([]*entity.RecurringExpense{def}, first.Created, now)
		assert.Empty(t, retry.Created)
		require.Len(t, retry.Advanced, 1)
		assert.Equal(t, first.Advanced[0].NextDueDate, retry.Advanced[0].NextDueDate)
	})

	t.Run("skipped and confirmed rows are not recreated", func(t *testing.T) {
		def := newDefinition(intPtr(7), nil, "2025-09-01", "2025-09-08")
		skipped := entity.NewPendingRecurringExpense(def, date("2025-09-08"))
		skipped.Skip()
		confirmed := entity.NewPendingRecurringExpense(def, date("2025-09-15"))
		confirmed.Status = entity.PendingStatusConfirmed

		result := MaterializePending([]*entity.RecurringExpense{def}, []*entity.PendingRecurringExpense{skipped, confirmed}, date("2025-09-20"))

		assert.Empty(t, result.Created)
		assert.Equal(t, "2025-09-22", result.Advanced[0].NextDueDate.String())
	})

	t.Run("not yet due is untouched", func(t *testing.T) {
		def := newDefinition(intPtr(30), nil, "2025-09-01", "2025-10-01")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-20"))

		assert.Empty(t, result.Created)
		assert.Empty(t, result.Advanced)
	})

	t.Run("inactive definitions are skipped", func(t *testing.T) {
		def := newDefinition(intPtr(7), nil, "2025-09-01", "2025-09-08")
		def.IsActive = false

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-20"))

		assert.Empty(t, result.Created)
		assert.Empty(t, result.Advanced)
	})

	t.Run("stops at end date and deactivates", func(t *testing.T) {
		def := newDefinition(intPtr(7), nil, "2025-09-01", "2025-09-08")
		def.EndDate = datePtr("2025-09-10")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-30"))

		assert.Equal(t, []string{"2025-09-08"}, scheduledDates(result.Created))
		require.Len(t, result.Advanced, 1)
		assert.False(t, result.Advanced[0].IsActive)
	})

	t.Run("february clamp materializes on the last day", func(t *testing.T) {
		def := newDefinition(nil, valueobject.DaySet{30}, "2025-02-01", "2025-02-28")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-03-31"))

		assert.Equal(t, []string{"2025-02-28", "2025-03-30"}, scheduledDates(result.Created))
		assert.Equal(t, "2025-04-30", result.Advanced[0].NextDueDate.String())
	})

	t.Run("missing next due date starts from the schedule", func(t *testing.T) {
		def := newDefinition(intPtr(30), nil, "2025-01-31", "2025-01-31")
		def.NextDueDate = valueobject.Date{}

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-03-05"))

		assert.Equal(t, []string{"2025-03-02"}, scheduledDates(result.Created))
		assert.Equal(t, "2025-04-01", result.Advanced[0].NextDueDate.String())
	})

	t.Run("definition without schedule is ignored", func(t *testing.T) {
		def := newDefinition(nil, nil, "2025-09-01", "2025-09-01")

		result := MaterializePending([]*entity.RecurringExpense{def}, nil, date("2025-09-20"))

		assert.Empty(t, result.Created)
		assert.Empty(t, result.Advanced)
	})
}
