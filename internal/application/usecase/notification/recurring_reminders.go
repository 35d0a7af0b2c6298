// Package notification contains use cases that queue notification emails.
package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// SendRecurringRemindersInput represents the input for queueing a user's reminders.
type SendRecurringRemindersInput struct {
	UserID uuid.UUID
}

// SendRecurringRemindersUseCase queues a reminder for each active definition whose next
// due date is within its notifyDaysBefore window. One reminder is sent per due date.
type SendRecurringRemindersUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	userRepo      adapter.UserRepository
	emailService  adapter.EmailService
	clock         adapter.Clock
}

// NewSendRecurringRemindersUseCase creates a new SendRecurringRemindersUseCase instance.
func NewSendRecurringRemindersUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	userRepo adapter.UserRepository,
	emailService adapter.EmailService,
	clock adapter.Clock,
) *SendRecurringRemindersUseCase {
	return &SendRecurringRemindersUseCase{
		recurringRepo: recurringRepo,
		userRepo:      userRepo,
		emailService:  emailService,
		clock:         clock,
	}
}

// Execute returns the number of reminders queued.
func (uc *SendRecurringRemindersUseCase) Execute(ctx context.Context, input SendRecurringRemindersInput) (int, error) {
	user, err := uc.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to find user: %w", err)
	}
	if !user.WantsRecurringReminders() {
		return 0, nil
	}

	defs, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return 0, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	today := valueobject.DateOf(uc.clock.Now())
	queued := 0
	for _, def := range defs {
		if !reminderDue(def, today) {
			continue
		}

		err := uc.emailService.QueueRecurringReminderEmail(ctx, adapter.QueueRecurringReminderInput{
			UserEmail:   user.Email,
			UserName:    user.Name,
			Description: def.Description,
			Category:    def.Category,
			Amount:      def.Amount.StringFixed(2),
			DueDate:     def.NextDueDate.String(),
			DaysUntil:   today.DaysUntil(def.NextDueDate),
		})
		if err != nil {
			return queued, fmt.Errorf("failed to queue recurring reminder: %w", err)
		}
		if err := uc.recurringRepo.UpdateLastReminder(ctx, def.ID, def.NextDueDate); err != nil {
			return queued, fmt.Errorf("failed to record reminder: %w", err)
		}
		queued++
	}

	return queued, nil
}

// reminderDue reports whether def's next due date falls in (today, today+notifyDaysBefore]
// and no reminder was queued for it yet.
func reminderDue(def *entity.RecurringExpense, today valueobject.Date) bool {
	if !def.IsActive || def.NotifyDaysBefore <= 0 || def.NextDueDate.IsZero() {
		return false
	}
	if def.EndsBefore(def.NextDueDate) {
		return false
	}
	if def.LastReminderFor != nil && def.LastReminderFor.Equal(def.NextDueDate) {
		return false
	}
	days := today.DaysUntil(def.NextDueDate)
	return days > 0 && days <= def.NotifyDaysBefore
}
