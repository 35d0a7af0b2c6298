// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// EmailService defines the interface for queueing notification emails.
type EmailService interface {
	QueueBudgetAlertEmail(ctx context.Context, input QueueBudgetAlertInput) error
	QueueRecurringDueEmail(ctx context.Context, input QueueRecurringDueInput) error
	QueueRecurringReminderEmail(ctx context.Context, input QueueRecurringReminderInput) error
}

// QueueBudgetAlertInput represents a budget reaching warning or exceeded.
type QueueBudgetAlertInput struct {
	UserEmail     string
	UserName      string
	BudgetName    string
	Status        string
	Spent         string
	Amount        string
	Percentage    string
	DaysRemaining int
	PeriodEnd     string
}

// QueueRecurringDueInput represents newly materialized pending expenses awaiting confirmation.
type QueueRecurringDueInput struct {
	UserEmail string
	UserName  string
	Items     []RecurringEmailItem
}

// QueueRecurringReminderInput represents an upcoming recurring expense.
type QueueRecurringReminderInput struct {
	UserEmail   string
	UserName    string
	Description string
	Category    string
	Amount      string
	DueDate     string
	DaysUntil   int
}

// RecurringEmailItem is one line in a recurring expense email.
type RecurringEmailItem struct {
	Description   string
	Category      string
	Amount        string
	ScheduledDate string
}
