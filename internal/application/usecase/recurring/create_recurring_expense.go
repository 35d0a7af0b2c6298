// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateRecurringExpenseInput represents the input for creating a definition.
type CreateRecurringExpenseInput struct {
	UserID               uuid.UUID
	Amount               decimal.Decimal
	Description          string
	Category             string
	IntervalDays         *int
	ExecutionDates       []int
	StartDate            valueobject.Date
	EndDate              *valueobject.Date
	RequiresConfirmation *bool // Defaults to true
	NotifyDaysBefore     *int  // Defaults to entity.DefaultNotifyDaysBefore
}

// CreateRecurringExpenseOutput represents the created definition.
type CreateRecurringExpenseOutput struct {
	RecurringExpense *entity.RecurringExpense
}

// CreateRecurringExpenseUseCase handles definition creation.
type CreateRecurringExpenseUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
}

// NewCreateRecurringExpenseUseCase creates a new CreateRecurringExpenseUseCase instance.
func NewCreateRecurringExpenseUseCase(recurringRepo adapter.RecurringExpenseRepository) *CreateRecurringExpenseUseCase {
	return &CreateRecurringExpenseUseCase{recurringRepo: recurringRepo}
}

// Execute validates the schedule and stores the definition with its first due date.
func (uc *CreateRecurringExpenseUseCase) Execute(ctx context.Context, input CreateRecurringExpenseInput) (*CreateRecurringExpenseOutput, error) {
	notifyDays := entity.DefaultNotifyDaysBefore
	if input.NotifyDaysBefore != nil {
		notifyDays = *input.NotifyDaysBefore
	}

	days, err := schedule{
		amount:         input.Amount,
		intervalDays:   input.IntervalDays,
		executionDates: input.ExecutionDates,
		startDate:      input.StartDate,
		endDate:        input.EndDate,
		notifyDays:     notifyDays,
	}.validate()
	if err != nil {
		return nil, err
	}

	category := strings.TrimSpace(input.Category)
	if category == "" {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRecurringFields,
			"category is required",
			domainerror.ErrCategoryRequired,
		)
	}

	requiresConfirmation := true
	if input.RequiresConfirmation != nil {
		requiresConfirmation = *input.RequiresConfirmation
	}

	def := entity.NewRecurringExpense(
		input.UserID,
		input.Amount,
		strings.TrimSpace(input.Description),
		category,
		input.IntervalDays,
		days,
		input.StartDate,
		input.EndDate,
		requiresConfirmation,
		notifyDays,
	)
	def.NextDueDate = service.InitialDueDate(def)

	if err := uc.recurringRepo.Create(ctx, def); err != nil {
		return nil, fmt.Errorf("failed to create recurring expense: %w", err)
	}

	return &CreateRecurringExpenseOutput{RecurringExpense: def}, nil
}
