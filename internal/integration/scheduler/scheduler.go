// Package scheduler runs the periodic recurring expense and notification jobs.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/notification"
	"github.com/expense-tracker/backend/internal/application/usecase/recurring"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Config holds configuration for the scheduler.
type Config struct {
	PollInterval time.Duration
}

// DefaultConfig returns the default scheduler configuration.
func DefaultConfig() Config {
	return Config{PollInterval: time.Hour}
}

// Stats summarizes one scheduler run.
type Stats struct {
	Users        int
	Materialized int
	DueEmails    int
	Reminders    int
	Alerts       int
	Failures     int
}

// Scheduler materializes pending recurring expenses for every user and queues
// the resulting notification emails.
type Scheduler struct {
	recurringRepo adapter.RecurringExpenseRepository
	budgetRepo    adapter.BudgetRepository
	materialize   *recurring.MaterializePendingUseCase
	notifyDue     *notification.NotifyRecurringDueUseCase
	reminders     *notification.SendRecurringRemindersUseCase
	budgetAlert   *notification.CheckBudgetAlertUseCase
	pollInterval  time.Duration
	logger        *slog.Logger
}

// NewScheduler creates a new scheduler.
func NewScheduler(
	recurringRepo adapter.RecurringExpenseRepository,
	budgetRepo adapter.BudgetRepository,
	materialize *recurring.MaterializePendingUseCase,
	notifyDue *notification.NotifyRecurringDueUseCase,
	reminders *notification.SendRecurringRemindersUseCase,
	budgetAlert *notification.CheckBudgetAlertUseCase,
	config Config,
) *Scheduler {
	return &Scheduler{
		recurringRepo: recurringRepo,
		budgetRepo:    budgetRepo,
		materialize:   materialize,
		notifyDue:     notifyDue,
		reminders:     reminders,
		budgetAlert:   budgetAlert,
		pollInterval:  config.PollInterval,
		logger:        slog.With("component", "scheduler"),
	}
}

// Start runs the scheduler immediately and then every poll interval until ctx is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Scheduler started", "poll_interval", s.pollInterval)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler shutting down")
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	stats, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.Error("Scheduler run failed", "error", err)
		return
	}
	s.logger.Info("Scheduler run finished",
		"users", stats.Users,
		"materialized", stats.Materialized,
		"due_emails", stats.DueEmails,
		"reminders", stats.Reminders,
		"alerts", stats.Alerts,
		"failures", stats.Failures,
	)
}

// RunOnce performs a single pass. Per-user failures are logged and counted; only
// failures to list the work abort the run.
func (s *Scheduler) RunOnce(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	userIDs, err := s.recurringRepo.FindUsersWithActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with recurring expenses: %w", err)
	}
	stats.Users = len(userIDs)

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		logger := s.logger.With("user_id", userID)

		out, err := s.materialize.Execute(ctx, recurring.MaterializePendingInput{UserID: userID})
		switch {
		case errors.Is(err, domainerror.ErrMaterializationInProgress):
			logger.Debug("Materialization already running, skipping user")
		case err != nil:
			logger.Error("Failed to materialize recurring expenses", "error", err)
			stats.Failures++
		default:
			stats.Materialized += out.Inserted
			if len(out.Created) > 0 {
				queued, err := s.notifyDue.Execute(ctx, notification.NotifyRecurringDueInput{
					UserID:  userID,
					Created: out.Created,
				})
				if err != nil {
					logger.Error("Failed to queue recurring due email", "error", err)
					stats.Failures++
				} else if queued {
					stats.DueEmails++
				}
			}
		}

		sent, err := s.reminders.Execute(ctx, notification.SendRecurringRemindersInput{UserID: userID})
		if err != nil {
			logger.Error("Failed to queue recurring reminders", "error", err)
			stats.Failures++
		}
		stats.Reminders += sent
	}

	budgets, err := s.budgetRepo.FindAllActive(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to list active budgets: %w", err)
	}
	for _, budget := range budgets {
		if ctx.Err() != nil {
			return stats, ctx.Err()
		}
		out, err := s.budgetAlert.Execute(ctx, notification.CheckBudgetAlertInput{UserID: budget.UserID})
		if err != nil {
			s.logger.Error("Failed to check budget alert", "user_id", budget.UserID, "error", err)
			stats.Failures++
			continue
		}
		if out != nil && out.Queued {
			stats.Alerts++
		}
	}

	return stats, nil
}
