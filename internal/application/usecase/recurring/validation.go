// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type schedule struct {
	amount         decimal.Decimal
	intervalDays   *int
	executionDates []int
	startDate      valueobject.Date
	endDate        *valueobject.Date
	notifyDays     int
}

// validate checks a definition's fields and returns its execution dates as a DaySet.
func (s schedule) validate() (valueobject.DaySet, error) {
	if s.amount.Sign() <= 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	days, err := valueobject.NewDaySet(s.executionDates)
	if err != nil {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidExecutionDay,
			err.Error(),
			domainerror.ErrInvalidExecutionDay,
		)
	}

	if days.IsEmpty() {
		if s.intervalDays == nil {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeMissingSchedule,
				"an interval or execution dates are required",
				domainerror.ErrMissingSchedule,
			)
		}
		if !entity.IsValidInterval(*s.intervalDays) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidInterval,
				fmt.Sprintf("interval %d is not one of 7, 15 or 30 days", *s.intervalDays),
				domainerror.ErrInvalidInterval,
			)
		}
	} else if s.intervalDays != nil && !entity.IsValidInterval(*s.intervalDays) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidInterval,
			fmt.Sprintf("interval %d is not one of 7, 15 or 30 days", *s.intervalDays),
			domainerror.ErrInvalidInterval,
		)
	}

	if s.startDate.IsZero() {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringDate,
			"start date is required",
			domainerror.ErrInvalidDate,
		)
	}
	if s.endDate != nil && s.endDate.Before(s.startDate) {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurringDate,
			"end date must not be before start date",
			domainerror.ErrInvalidDateRange,
		)
	}
	if s.notifyDays < 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidNotifyDays,
			"notify days before must not be negative",
			domainerror.ErrInvalidNotifyDays,
		)
	}

	return days, nil
}

func definitionNotFound() error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodeRecurringNotFound,
		"recurring expense not found",
		domainerror.ErrRecurringExpenseNotFound,
	)
}

func pendingNotFound() error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodePendingNotFound,
		"pending recurring expense not found",
		domainerror.ErrPendingExpenseNotFound,
	)
}

func findOwnedDefinition(ctx context.Context, repo adapter.RecurringExpenseRepository, id, userID uuid.UUID) (*entity.RecurringExpense, error) {
	def, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrRecurringExpenseNotFound) {
			return nil, definitionNotFound()
		}
		return nil, fmt.Errorf("failed to find recurring expense: %w", err)
	}
	if def.UserID != userID {
		return nil, definitionNotFound()
	}
	return def, nil
}

// findUnresolvedPending loads a pending row owned by the user that is still pending.
func findUnresolvedPending(ctx context.Context, repo adapter.PendingExpenseRepository, id, userID uuid.UUID) (*entity.PendingRecurringExpense, error) {
	pending, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrPendingExpenseNotFound) {
			return nil, pendingNotFound()
		}
		return nil, fmt.Errorf("failed to find pending expense: %w", err)
	}
	if pending.UserID != userID {
		return nil, pendingNotFound()
	}
	if !pending.IsPending() {
		return nil, pendingResolved(fmt.Sprintf("pending expense is already %s", pending.Status))
	}
	return pending, nil
}

// pendingResolved is returned when a row stopped being pending, including when another
// request resolved it between the read and the write.
func pendingResolved(message string) error {
	return domainerror.NewRecurringError(
		domainerror.ErrCodePendingResolved,
		message,
		domainerror.ErrPendingExpenseResolved,
	)
}
