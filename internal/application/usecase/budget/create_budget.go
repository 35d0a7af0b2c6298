// Package budget contains budget-related use cases.
package budget

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CreateBudgetInput represents the input for budget creation.
// Without StartDate the period is derived from Period (monthly by default) around today.
type CreateBudgetInput struct {
	UserID    uuid.UUID
	Name      string
	Amount    decimal.Decimal
	StartDate *valueobject.Date
	EndDate   *valueobject.Date
	Period    Granularity
	Activate  *bool // Defaults to true
}

// CreateBudgetOutput represents the output of budget creation.
type CreateBudgetOutput struct {
	Budget *entity.Budget
}

// CreateBudgetUseCase handles budget creation logic.
type CreateBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
	clock      adapter.Clock
}

// NewCreateBudgetUseCase creates a new CreateBudgetUseCase instance.
func NewCreateBudgetUseCase(budgetRepo adapter.BudgetRepository, clock adapter.Clock) *CreateBudgetUseCase {
	return &CreateBudgetUseCase{
		budgetRepo: budgetRepo,
		clock:      clock,
	}
}

// Execute creates the budget. An active budget replaces the user's previously active one.
func (uc *CreateBudgetUseCase) Execute(ctx context.Context, input CreateBudgetInput) (*CreateBudgetOutput, error) {
	granularity := input.Period
	if !granularity.IsValid() {
		granularity = GranularityMonthly
	}

	start, end := input.StartDate, input.EndDate
	if start == nil {
		from, to := PeriodBounds(valueobject.DateOf(uc.clock.Now()), granularity)
		start = &from
		if end == nil {
			end = &to
		}
	}

	if err := validateBudget(input.Amount, *start, end); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = PeriodLabel(*start, granularity)
	}

	budget := entity.NewBudget(input.UserID, name, input.Amount, *start, end)
	if input.Activate != nil {
		budget.IsActive = *input.Activate
	}

	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	return &CreateBudgetOutput{Budget: budget}, nil
}
