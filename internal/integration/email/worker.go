// Package email provides email sending functionality.
package email

import (
	"context"
	"log/slog"
	"time"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

// Worker processes the email queue and sends emails.
type Worker struct {
	queue        adapter.EmailQueueRepository
	sender       adapter.EmailSender
	renderer     *templates.Renderer
	pollInterval time.Duration
	batchSize    int
	retention    time.Duration
	lastCleanup  time.Time
	now          func() time.Time
	logger       *slog.Logger
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	PollInterval time.Duration
	BatchSize    int
	// Retention is how long sent jobs are kept. Zero disables cleanup.
	Retention time.Duration
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		PollInterval: 5 * time.Second,
		BatchSize:    10,
		Retention:    30 * 24 * time.Hour,
	}
}

const cleanupInterval = time.Hour

// NewWorker creates a new email worker.
func NewWorker(queue adapter.EmailQueueRepository, sender adapter.EmailSender, renderer *templates.Renderer, config WorkerConfig) *Worker {
	return &Worker{
		queue:        queue,
		sender:       sender,
		renderer:     renderer,
		pollInterval: config.PollInterval,
		batchSize:    config.BatchSize,
		retention:    config.Retention,
		now:          func() time.Time { return time.Now().UTC() },
		logger:       slog.With("component", "email_worker"),
	}
}

// Start begins the worker loop. It blocks until the context is cancelled.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Email worker started",
		"poll_interval", w.pollInterval,
		"batch_size", w.batchSize,
	)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Email worker shutting down")
			return
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Worker) tick(ctx context.Context) {
	w.processBatch(ctx)
	w.cleanup(ctx)
}

// processBatch fetches and processes a batch of pending emails.
func (w *Worker) processBatch(ctx context.Context) {
	jobs, err := w.queue.GetPendingJobs(ctx, w.now(), w.batchSize)
	if err != nil {
		w.logger.Error("Failed to get pending email jobs", "error", err)
		return
	}

	if len(jobs) == 0 {
		return
	}

	w.logger.Debug("Processing email batch", "count", len(jobs))

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
			w.processJob(ctx, job)
		}
	}
}

// cleanup removes old sent jobs at most once per cleanupInterval.
func (w *Worker) cleanup(ctx context.Context) {
	if w.retention <= 0 {
		return
	}
	now := w.now()
	if !w.lastCleanup.IsZero() && now.Sub(w.lastCleanup) < cleanupInterval {
		return
	}
	w.lastCleanup = now

	removed, err := w.queue.DeleteSentBefore(ctx, now.Add(-w.retention))
	if err != nil {
		w.logger.Error("Failed to delete old sent emails", "error", err)
		return
	}
	if removed > 0 {
		w.logger.Info("Deleted old sent emails", "count", removed)
	}
}

// processJob processes a single email job.
func (w *Worker) processJob(ctx context.Context, job *entity.EmailJob) {
	logger := w.logger.With(
		"job_id", job.ID,
		"template", job.TemplateType,
		"recipient", job.RecipientEmail,
	)

	job.MarkProcessing()
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as processing", "error", err)
		return
	}

	html, text, err := w.renderTemplate(job)
	if err != nil {
		logger.Error("Failed to render email template", "error", err)
		// Template errors never succeed on retry.
		w.handleFailure(ctx, logger, job, err, true)
		return
	}

	result, err := w.sender.Send(ctx, adapter.SendEmailInput{
		To:      job.RecipientEmail,
		Name:    job.RecipientName,
		Subject: job.Subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		logger.Error("Failed to send email", "error", err)

		w.handleFailure(ctx, logger, job, err, domainerror.IsPermanentEmailFailure(err))
		return
	}

	job.MarkSent(result.ResendID)
	if err := w.queue.Update(ctx, job); err != nil {
		logger.Error("Failed to mark job as sent", "error", err)
		return
	}

	logger.Info("Email sent successfully", "resend_id", result.ResendID)
}

// renderTemplate renders the appropriate template for the job.
func (w *Worker) renderTemplate(job *entity.EmailJob) (html string, text string, err error) {
	d := job.TemplateData

	var data interface{}
	switch job.TemplateType {
	case entity.TemplateBudgetAlert:
		data = templates.BudgetAlertData{
			UserName:      getString(d, "user_name"),
			BudgetName:    getString(d, "budget_name"),
			Exceeded:      getString(d, "status") == string(entity.BudgetStatusExceeded),
			Spent:         getString(d, "spent"),
			Amount:        getString(d, "amount"),
			Percentage:    getString(d, "percentage"),
			DaysRemaining: getInt(d, "days_remaining"),
			PeriodEnd:     getString(d, "period_end"),
			AppURL:        getString(d, "app_url"),
		}
	case entity.TemplateRecurringDue:
		data = templates.RecurringDueData{
			UserName: getString(d, "user_name"),
			Items:    getItems(d, "items"),
			AppURL:   getString(d, "app_url"),
		}
	case entity.TemplateRecurringReminder:
		data = templates.RecurringReminderData{
			UserName:    getString(d, "user_name"),
			Description: getString(d, "description"),
			Category:    getString(d, "category"),
			Amount:      getString(d, "amount"),
			DueDate:     getString(d, "due_date"),
			DaysUntil:   getInt(d, "days_until"),
			AppURL:      getString(d, "app_url"),
		}
	default:
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"unknown template type",
			domainerror.ErrInvalidTemplate,
		)
	}

	html, text, err = w.renderer.Render(string(job.TemplateType), data)
	if err != nil {
		return "", "", domainerror.NewEmailError(
			domainerror.ErrCodeTemplateRenderFailed,
			"failed to render template",
			err,
		)
	}
	return html, text, nil
}

// handleFailure handles a failed email job.
func (w *Worker) handleFailure(ctx context.Context, logger *slog.Logger, job *entity.EmailJob, err error, permanent bool) {
	job.MarkFailed(err, permanent)

	if updateErr := w.queue.Update(ctx, job); updateErr != nil {
		logger.Error("Failed to update job after failure", "error", updateErr)
	}

	if job.Status == entity.EmailStatusFailed {
		logger.Warn("Email job permanently failed",
			"attempts", job.Attempts,
			"last_error", job.LastError,
		)
	} else {
		logger.Info("Email job scheduled for retry",
			"attempts", job.Attempts,
			"scheduled_at", job.ScheduledAt,
		)
	}
}

// getString safely extracts a string from a map.
func getString(data map[string]interface{}, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// getInt reads a number that may have gone through a JSON round trip.
func getInt(data map[string]interface{}, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// getItems reads the recurring item list, both as queued and as decoded from JSON.
func getItems(data map[string]interface{}, key string) []templates.RecurringItem {
	var raw []map[string]interface{}
	switch v := data[key].(type) {
	case []map[string]interface{}:
		raw = v
	case []interface{}:
		for _, item := range v {
			if m, ok := item.(map[string]interface{}); ok {
				raw = append(raw, m)
			}
		}
	}

	items := make([]templates.RecurringItem, 0, len(raw))
	for _, m := range raw {
		items = append(items, templates.RecurringItem{
			Description:   getString(m, "description"),
			Category:      getString(m, "category"),
			Amount:        getString(m, "amount"),
			ScheduledDate: getString(m, "scheduled_date"),
		})
	}
	return items
}

// ProcessNow processes all pending emails immediately.
func (w *Worker) ProcessNow(ctx context.Context) {
	w.processBatch(ctx)
}
