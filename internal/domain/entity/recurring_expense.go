package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Supported recurrence intervals, in days.
const (
	IntervalWeekly   = 7
	IntervalBiweekly = 15
	IntervalMonthly  = 30
)

// DefaultNotifyDaysBefore is the reminder lead time used when none is given.
const DefaultNotifyDaysBefore = 1

// IsValidInterval reports whether days is a supported recurrence interval.
func IsValidInterval(days int) bool {
	return days == IntervalWeekly || days == IntervalBiweekly || days == IntervalMonthly
}

// RecurringExpense is a recurring expense definition.
// A non-empty ExecutionDates takes precedence over IntervalDays.
type RecurringExpense struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	Amount               decimal.Decimal
	Description          string
	Category             string
	IntervalDays         *int
	ExecutionDates       valueobject.DaySet
	StartDate            valueobject.Date
	EndDate              *valueobject.Date
	NextDueDate          valueobject.Date
	IsActive             bool
	RequiresConfirmation bool
	LastExecuted         *valueobject.Date
	NotifyDaysBefore     int
	LastReminderFor      *valueobject.Date // Due date the last reminder email was queued for
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewRecurringExpense creates an active definition. NextDueDate is left for the schedule engine.
func NewRecurringExpense(
	userID uuid.UUID,
	amount decimal.Decimal,
	description string,
	category string,
	intervalDays *int,
	executionDates valueobject.DaySet,
	startDate valueobject.Date,
	endDate *valueobject.Date,
	requiresConfirmation bool,
	notifyDaysBefore int,
) *RecurringExpense {
	now := time.Now().UTC()

	return &RecurringExpense{
		ID:                   uuid.New(),
		UserID:               userID,
		Amount:               amount,
		Description:          description,
		Category:             category,
		IntervalDays:         intervalDays,
		ExecutionDates:       executionDates,
		StartDate:            startDate,
		EndDate:              endDate,
		IsActive:             true,
		RequiresConfirmation: requiresConfirmation,
		NotifyDaysBefore:     notifyDaysBefore,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// UsesExecutionDates reports whether the day-of-month schedule is in effect.
func (r *RecurringExpense) UsesExecutionDates() bool {
	return !r.ExecutionDates.IsEmpty()
}

// Interval returns the interval in days, or 0 when unset.
func (r *RecurringExpense) Interval() int {
	if r.IntervalDays == nil {
		return 0
	}
	return *r.IntervalDays
}

// EndsBefore reports whether the definition's end date is before d.
func (r *RecurringExpense) EndsBefore(d valueobject.Date) bool {
	return r.EndDate != nil && !r.EndDate.IsZero() && r.EndDate.Before(d)
}
