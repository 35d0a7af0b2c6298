// Package notification contains use cases that queue notification emails.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/budget"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// CheckBudgetAlertInput represents the input for checking a user's active budget.
type CheckBudgetAlertInput struct {
	UserID uuid.UUID
}

// CheckBudgetAlertOutput reports the computed level and whether an email was queued.
type CheckBudgetAlertOutput struct {
	Status entity.BudgetStatusLevel
	Queued bool
}

// CheckBudgetAlertUseCase queues an alert when the active budget escalates to
// warning or exceeded. Each level is alerted once per escalation.
type CheckBudgetAlertUseCase struct {
	budgetRepo   adapter.BudgetRepository
	expenseRepo  adapter.ExpenseRepository
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
	clock        adapter.Clock
}

// NewCheckBudgetAlertUseCase creates a new CheckBudgetAlertUseCase instance.
func NewCheckBudgetAlertUseCase(
	budgetRepo adapter.BudgetRepository,
	expenseRepo adapter.ExpenseRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *CheckBudgetAlertUseCase {
	return &CheckBudgetAlertUseCase{
		budgetRepo:   budgetRepo,
		expenseRepo:  expenseRepo,
		userRepo:     userRepo,
		emailService: emailService,
		clock:        clock,
	}
}

// Execute checks the budget. A user without an active budget yields a nil output.
func (uc *CheckBudgetAlertUseCase) Execute(ctx context.Context, input CheckBudgetAlertInput) (*CheckBudgetAlertOutput, error) {
	active, err := budget.FindActiveBudget(ctx, uc.budgetRepo, input.UserID)
	if err != nil || active == nil {
		return nil, err
	}

	status, err := budget.ComputeBudgetStatus(ctx, uc.expenseRepo, active, valueobject.DateOf(uc.clock.Now()))
	if err != nil {
		return nil, err
	}

	output := &CheckBudgetAlertOutput{Status: status.Status}
	if status.Status == active.LastAlertStatus {
		return output, nil
	}

	if status.Status.Severity() > active.LastAlertStatus.Severity() {
		user, err := uc.userRepo.FindByID(ctx, input.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}

		if user.WantsBudgetAlerts() {
			err = uc.emailService.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
				UserEmail:     user.Email,
				UserName:      user.Name,
				BudgetName:    active.Name,
				Status:        string(status.Status),
				Spent:         status.Spent.StringFixed(2),
				Amount:        active.Amount.StringFixed(2),
				Percentage:    status.Percentage.StringFixed(1),
				DaysRemaining: status.DaysRemaining,
				PeriodEnd:     active.EffectiveEndDate().String(),
			})
			if err != nil {
				return nil, fmt.Errorf("failed to queue budget alert: %w", err)
			}
			output.Queued = true
		}
	}

	// De-escalations are recorded too so a later escalation alerts again.
	if err := uc.budgetRepo.UpdateAlertStatus(ctx, active.ID, status.Status); err != nil {
		return nil, fmt.Errorf("failed to update alert status: %w", err)
	}

	if output.Queued {
		slog.Info("budget alert queued",
			"user_id", input.UserID,
			"budget_id", active.ID,
			"status", status.Status,
		)
	}
	return output, nil
}
