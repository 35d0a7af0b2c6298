package service

import (
	"time"

	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CalculateNextDueDate returns the first occurrence of a schedule relative to start.
//
// With execution dates, it is the smallest configured day >= start's day in start's
// month, otherwise the smallest configured day in the following month. A day past
// the end of the target month is clamped to its last day (30 in February is Feb 28/29).
// Without execution dates it is start + intervalDays, by plain calendar-day addition.
func CalculateNextDueDate(start valueobject.Date, intervalDays int, executionDates valueobject.DaySet) valueobject.Date {
	if !executionDates.IsEmpty() {
		if day, ok := executionDates.FirstOnOrAfter(start.Day()); ok {
			return dayInMonth(start.Year(), start.Month(), day)
		}
		first, _ := executionDates.First()
		next := start.FirstOfMonth().EndOfMonth().AddDays(1)
		return dayInMonth(next.Year(), next.Month(), first)
	}
	return start.AddDays(intervalDays)
}

// AdvanceDueDate returns the occurrence strictly after previousDue.
// Day-of-month schedules recompute from the following day; interval schedules add the interval.
func AdvanceDueDate(previousDue valueobject.Date, intervalDays int, executionDates valueobject.DaySet) valueobject.Date {
	if !executionDates.IsEmpty() {
		return CalculateNextDueDate(previousDue.AddDays(1), intervalDays, executionDates)
	}
	return previousDue.AddDays(intervalDays)
}

// InitialDueDate is the first due date of a new or rescheduled definition.
func InitialDueDate(def *entity.RecurringExpense) valueobject.Date {
	return CalculateNextDueDate(def.StartDate, def.Interval(), def.ExecutionDates)
}

// hasSchedule reports whether advancing the definition always moves forward.
func hasSchedule(def *entity.RecurringExpense) bool {
	return def.UsesExecutionDates() || def.Interval() > 0
}

func dayInMonth(year int, month time.Month, day int) valueobject.Date {
	first := valueobject.NewDate(year, month, 1)
	if last := first.DaysInMonth(); day > last {
		day = last
	}
	return valueobject.NewDate(year, month, day)
}

// ClassifyPending applies the read-time overdue rule: a pending row scheduled before
// today is overdue by the number of whole days since its scheduled date.
func ClassifyPending(p *entity.PendingRecurringExpense, today valueobject.Date) entity.PendingView {
	view := entity.PendingView{Pending: p, Status: p.Status}
	if p.IsPending() && p.ScheduledDate.Before(today) {
		view.Status = entity.PendingStatusOverdue
		view.DaysOverdue = p.ScheduledDate.DaysUntil(today)
	}
	return view
}
