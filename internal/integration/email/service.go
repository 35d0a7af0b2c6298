// Package email provides email sending functionality.
package email

import (
	"context"
	"fmt"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Service queues notification emails for the worker to deliver.
type Service struct {
	queue      adapter.EmailQueueRepository
	appBaseURL string
}

// NewService creates a new email service.
func NewService(queue adapter.EmailQueueRepository, appBaseURL string) *Service {
	return &Service{
		queue:      queue,
		appBaseURL: appBaseURL,
	}
}

// QueueBudgetAlertEmail queues an alert for a budget that reached warning or exceeded.
func (s *Service) QueueBudgetAlertEmail(ctx context.Context, input adapter.QueueBudgetAlertInput) error {
	subject := fmt.Sprintf("Orcamento %s: %s%% utilizado", input.BudgetName, input.Percentage)
	if input.Status == string(entity.BudgetStatusExceeded) {
		subject = fmt.Sprintf("Orcamento %s ultrapassado", input.BudgetName)
	}

	return s.enqueue(ctx, entity.TemplateBudgetAlert, input.UserEmail, input.UserName, subject, map[string]interface{}{
		"user_name":      input.UserName,
		"budget_name":    input.BudgetName,
		"status":         input.Status,
		"spent":          input.Spent,
		"amount":         input.Amount,
		"percentage":     input.Percentage,
		"days_remaining": input.DaysRemaining,
		"period_end":     input.PeriodEnd,
		"app_url":        s.appBaseURL + "/budgets",
	})
}

// QueueRecurringDueEmail queues a summary of newly materialized pending expenses.
func (s *Service) QueueRecurringDueEmail(ctx context.Context, input adapter.QueueRecurringDueInput) error {
	subject := "Voce tem despesas recorrentes para confirmar"
	if len(input.Items) == 1 {
		subject = fmt.Sprintf("Despesa recorrente para confirmar: %s", input.Items[0].Description)
	}

	items := make([]map[string]interface{}, len(input.Items))
	for i, item := range input.Items {
		items[i] = map[string]interface{}{
			"description":    item.Description,
			"category":       item.Category,
			"amount":         item.Amount,
			"scheduled_date": item.ScheduledDate,
		}
	}

	return s.enqueue(ctx, entity.TemplateRecurringDue, input.UserEmail, input.UserName, subject, map[string]interface{}{
		"user_name": input.UserName,
		"items":     items,
		"app_url":   s.appBaseURL + "/recurring-expenses/pending",
	})
}

// QueueRecurringReminderEmail queues a reminder ahead of a recurring expense due date.
func (s *Service) QueueRecurringReminderEmail(ctx context.Context, input adapter.QueueRecurringReminderInput) error {
	subject := fmt.Sprintf("Lembrete: %s vence em %d dia(s)", input.Description, input.DaysUntil)

	return s.enqueue(ctx, entity.TemplateRecurringReminder, input.UserEmail, input.UserName, subject, map[string]interface{}{
		"user_name":   input.UserName,
		"description": input.Description,
		"category":    input.Category,
		"amount":      input.Amount,
		"due_date":    input.DueDate,
		"days_until":  input.DaysUntil,
		"app_url":     s.appBaseURL + "/recurring-expenses",
	})
}

func (s *Service) enqueue(
	ctx context.Context,
	templateType entity.EmailTemplateType,
	email, name, subject string,
	data map[string]interface{},
) error {
	job := entity.NewEmailJob(templateType, email, name, subject, data)
	if err := s.queue.Create(ctx, job); err != nil {
		return domainerror.NewEmailError(
			domainerror.ErrCodeEmailQueueFailed,
			fmt.Sprintf("failed to queue %s email", templateType),
			err,
		)
	}
	return nil
}

// Ensure Service implements adapter.EmailService.
var _ adapter.EmailService = (*Service)(nil)
