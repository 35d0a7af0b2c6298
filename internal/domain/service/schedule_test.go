package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

func TestCalculateNextDueDate(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		interval int
		days     valueobject.DaySet
		expected string
	}{
		{name: "interval crosses short month", start: "2025-01-31", interval: 30, expected: "2025-03-02"},
		{name: "weekly interval", start: "2025-09-01", interval: 7, expected: "2025-09-08"},
		{name: "biweekly interval", start: "2025-09-20", interval: 15, expected: "2025-10-05"},
		{name: "day later this month", start: "2025-09-10", days: valueobject.DaySet{5, 20}, expected: "2025-09-20"},
		{name: "same day counts", start: "2025-09-20", days: valueobject.DaySet{5, 20}, expected: "2025-09-20"},
		{name: "wraps to next month", start: "2025-09-21", days: valueobject.DaySet{5, 20}, expected: "2025-10-05"},
		{name: "day 30 in february clamps", start: "2025-02-01", days: valueobject.DaySet{30}, expected: "2025-02-28"},
		{name: "day 31 in leap february clamps", start: "2024-02-15", days: valueobject.DaySet{31}, expected: "2024-02-29"},
		{name: "wrap into short month clamps", start: "2025-01-31", days: valueobject.DaySet{15, 30}, expected: "2025-02-15"},
		{name: "wrap across year end", start: "2025-12-25", days: valueobject.DaySet{1}, expected: "2026-01-01"},
		{name: "execution dates take precedence", start: "2025-09-01", interval: 7, days: valueobject.DaySet{15}, expected: "2025-09-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateNextDueDate(date(tt.start), tt.interval, tt.days)
			assert.Equal(t, tt.expected, got.String())
		})
	}
}

func TestAdvanceDueDate(t *testing.T) {
	tests := []struct {
		name     string
		previous string
		interval int
		days     valueobject.DaySet
		expected string
	}{
		{name: "interval adds to previous due", previous: "2025-03-02", interval: 30, expected: "2025-04-01"},
		{name: "moves to next day in set", previous: "2025-09-05", days: valueobject.DaySet{5, 20}, expected: "2025-09-20"},
		{name: "wraps after last day in set", previous: "2025-09-20", days: valueobject.DaySet{5, 20}, expected: "2025-10-05"},
		{name: "after clamped february date", previous: "2025-02-28", days: valueobject.DaySet{30}, expected: "2025-03-30"},
		{name: "day 31 walks month ends", previous: "2025-01-31", days: valueobject.DaySet{31}, expected: "2025-02-28"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdvanceDueDate(date(tt.previous), tt.interval, tt.days)
			assert.Equal(t, tt.expected, got.String())
			assert.True(t, got.After(date(tt.previous)))
		})
	}
}

func TestClassifyPending(t *testing.T) {
	def := entity.NewRecurringExpense(testUserID, amount("50"), "Gym", "Salud", intPtr(30), nil, date("2025-08-01"), nil, true, 1)
	today := date("2025-09-20")

	t.Run("pending before today is overdue", func(t *testing.T) {
		view := ClassifyPending(entity.NewPendingRecurringExpense(def, date("2025-09-15")), today)
		assert.Equal(t, entity.PendingStatusOverdue, view.Status)
		assert.Equal(t, 5, view.DaysOverdue)
	})

	t.Run("pending today is not overdue", func(t *testing.T) {
		view := ClassifyPending(entity.NewPendingRecurringExpense(def, today), today)
		assert.Equal(t, entity.PendingStatusPending, view.Status)
		assert.Zero(t, view.DaysOverdue)
	})

	t.Run("resolved rows keep their status", func(t *testing.T) {
		row := entity.NewPendingRecurringExpense(def, date("2025-09-01"))
		row.Skip()
		view := ClassifyPending(row, today)
		assert.Equal(t, entity.PendingStatusSkipped, view.Status)
		assert.Equal(t, entity.PendingStatusSkipped, row.Status)
	})
}
