// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// UpdateRecurringExpenseInput represents the input for editing a definition.
// Nil fields are left unchanged. Setting ExecutionDates to an empty slice switches to the interval.
type UpdateRecurringExpenseInput struct {
	RecurringExpenseID   uuid.UUID
	UserID               uuid.UUID
	Amount               *decimal.Decimal
	Description          *string
	Category             *string
	IntervalDays         *int
	ExecutionDates       *[]int
	StartDate            *valueobject.Date
	EndDate              *valueobject.Date
	ClearEndDate         bool
	IsActive             *bool
	RequiresConfirmation *bool
	NotifyDaysBefore     *int
}

// UpdateRecurringExpenseOutput represents the updated definition.
type UpdateRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
}

// UpdateRecurringExpenseUseCase handles definition edits, pausing and resuming.
type UpdateRecurringExpenseUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	clock         adapter.Clock
}

// NewUpdateRecurringExpenseUseCase creates a new UpdateRecurringExpenseUseCase instance.
func NewUpdateRecurringExpenseUseCase(recurringRepo adapter.RecurringExpenseRepository, clock adapter.Clock) *UpdateRecurringExpenseUseCase {
	return &UpdateRecurringExpenseUseCase{
		recurringRepo: recurringRepo,
		clock:         clock,
	}
}

// Execute applies the edit. A schedule change recomputes the next due date from the later
// of the start date and today, so already lapsed dates are not materialized again.
func (uc *UpdateRecurringExpenseUseCase) Execute(ctx context.Context, input UpdateRecurringExpenseInput) (*UpdateRecurringExpenseOutput, error) {
	def, err := findOwnedDefinition(ctx, uc.recurringRepo, input.RecurringExpenseID, input.UserID)
	if err != nil {
		return nil, err
	}

	rescheduled := false
	if input.Amount != nil {
		def.Amount = *input.Amount
	}
	if input.Description != nil {
		def.Description = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil && strings.TrimSpace(*input.Category) != "" {
		def.Category = strings.TrimSpace(*input.Category)
	}
	if input.IntervalDays != nil {
		interval := *input.IntervalDays
		def.IntervalDays = &interval
		rescheduled = true
	}
	executionDates := def.ExecutionDates.Ints()
	if input.ExecutionDates != nil {
		executionDates = *input.ExecutionDates
		rescheduled = true
	}
	if input.StartDate != nil {
		def.StartDate = *input.StartDate
		rescheduled = true
	}
	if input.ClearEndDate {
		def.EndDate = nil
	} else if input.EndDate != nil {
		end := *input.EndDate
		def.EndDate = &end
	}
	if input.RequiresConfirmation != nil {
		def.RequiresConfirmation = *input.RequiresConfirmation
	}
	if input.NotifyDaysBefore != nil {
		def.NotifyDaysBefore = *input.NotifyDaysBefore
	}

	days, err := schedule{
		amount:         def.Amount,
		intervalDays:   def.IntervalDays,
		executionDates: executionDates,
		startDate:      def.StartDate,
		endDate:        def.EndDate,
		notifyDays:     def.NotifyDaysBefore,
	}.validate()
	if err != nil {
		return nil, err
	}
	def.ExecutionDates = days

	today := valueobject.DateOf(uc.clock.Now())
	resumed := input.IsActive != nil && *input.IsActive && !def.IsActive
	if input.IsActive != nil {
		def.IsActive = *input.IsActive
	}
	if rescheduled || resumed {
		from := valueobject.MaxDate(def.StartDate, today)
		def.NextDueDate = service.CalculateNextDueDate(from, def.Interval(), def.ExecutionDates)
	}

	def.UpdatedAt = time.Now().UTC()
	if err := uc.recurringRepo.Update(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to update recurring expense: %w", err)
	}

	return &UpdateRecurringExpenseOutput{RecurringExpense: def}, nil
}
