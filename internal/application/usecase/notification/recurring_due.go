// Package notification contains use cases that queue notification emails.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
)

// NotifyRecurringDueInput carries the rows a materialization run just created.
type NotifyRecurringDueInput struct {
	UserID  uuid.UUID
	Created []*entity.PendingRecurringExpense
}

// NotifyRecurringDueUseCase queues one email listing newly materialized pending expenses.
type NotifyRecurringDueUseCase struct {
	userRepo     adapter.UserRepository
	emailService adapter.EmailService
}

// NewNotifyRecurringDueUseCase creates a new NotifyRecurringDueUseCase instance.
func NewNotifyRecurringDueUseCase(userRepo adapter.UserRepository, emailService adapter.EmailService) *NotifyRecurringDueUseCase {
	return &NotifyRecurringDueUseCase{
		userRepo:     userRepo,
		emailService: emailService,
	}
}

// Execute reports whether an email was queued.
func (uc *NotifyRecurringDueUseCase) Execute(ctx context.Context, input NotifyRecurringDueInput) (bool, error) {
	if len(input.Created) == 0 {
		return false, nil
	}

	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.WantsRecurringReminders() {
		return false, nil
	}

	items := make([]adapter.RecurringEmailItem, 0, len(input.Created))
	for _, p := range input.Created {
		items = append(items, adapter.RecurringEmailItem{
			Description:   p.Description,
			Category:      p.Category,
			Amount:        p.Amount.StringFixed(2),
			ScheduledDate: p.ScheduledDate.String(),
		})
	}

	err = uc.emailService.QueueRecurringDueEmail(ctx, adapter.QueueRecurringDueInput{
		UserEmail: user.Email,
		UserName:  user.Name,
		Items:     items,
	})
	if err != nil {
		return false, fmt.Errorf("failed to queue recurring due email: %w", err)
	}
	return true, nil
}
