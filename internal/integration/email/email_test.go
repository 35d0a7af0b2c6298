package email

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
)

type memoryQueue struct {
	mu          sync.Mutex
	jobs        map[uuid.UUID]*entity.EmailJob
	deleteCalls int
}

func newMemoryQueue() *memoryQueue {
	return &memoryQueue{jobs: map[uuid.UUID]*entity.EmailJob{}}
}

func (q *memoryQueue) Create(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs[job.ID] = job
	return nil
}

func (q *memoryQueue) GetPendingJobs(_ context.Context, now time.Time, limit int) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, job := range q.jobs {
		if job.IsReadyToProcess(now) && len(out) < limit {
			copied := *job
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (q *memoryQueue) Update(_ context.Context, job *entity.EmailJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	copied := *job
	q.jobs[job.ID] = &copied
	return nil
}

func (q *memoryQueue) GetByID(_ context.Context, id uuid.UUID) (*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	job, ok := q.jobs[id]
	if !ok {
		return nil, domainerror.ErrEmailJobNotFound
	}
	return job, nil
}

func (q *memoryQueue) GetByRecipient(_ context.Context, email string) ([]*entity.EmailJob, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var out []*entity.EmailJob
	for _, job := range q.jobs {
		if job.RecipientEmail == email {
			out = append(out, job)
		}
	}
	return out, nil
}

func (q *memoryQueue) DeleteSentBefore(_ context.Context, cutoff time.Time) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.deleteCalls++
	var removed int64
	for id, job := range q.jobs {
		if job.Status == entity.EmailStatusSent && job.ProcessedAt != nil && job.ProcessedAt.Before(cutoff) {
			delete(q.jobs, id)
			removed++
		}
	}
	return removed, nil
}

func (q *memoryQueue) only(t *testing.T) *entity.EmailJob {
	t.Helper()
	q.mu.Lock()
	defer q.mu.Unlock()
	require.Len(t, q.jobs, 1)
	for _, job := range q.jobs {
		return job
	}
	return nil
}

func TestServiceQueuesTemplates(t *testing.T) {
	ctx := context.Background()

	t.Run("budget alert", func(t *testing.T) {
		queue := newMemoryQueue()
		svc := NewService(queue, "https://app.example.com")
		require.NoError(t, svc.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{
			UserEmail: "ana@example.com", UserName: "Ana", BudgetName: "Setembro",
			Status: "warning", Percentage: "80.0", DaysRemaining: 10,
		}))

		job := queue.only(t)
		assert.Equal(t, entity.TemplateBudgetAlert, job.TemplateType)
		assert.Equal(t, "Orcamento Setembro: 80.0% utilizado", job.Subject)
		assert.Equal(t, "https://app.example.com/budgets", job.TemplateData["app_url"])
	})

	t.Run("budget exceeded subject", func(t *testing.T) {
		queue := newMemoryQueue()
		svc := NewService(queue, "")
		require.NoError(t, svc.QueueBudgetAlertEmail(ctx, adapter.QueueBudgetAlertInput{BudgetName: "Setembro", Status: "exceeded"}))
		assert.Equal(t, "Orcamento Setembro ultrapassado", queue.only(t).Subject)
	})

	t.Run("recurring due", func(t *testing.T) {
		queue := newMemoryQueue()
		svc := NewService(queue, "")
		require.NoError(t, svc.QueueRecurringDueEmail(ctx, adapter.QueueRecurringDueInput{
			UserEmail: "ana@example.com",
			Items:     []adapter.RecurringEmailItem{{Description: "Internet", Amount: "120.00"}},
		}))
		job := queue.only(t)
		assert.Equal(t, entity.TemplateRecurringDue, job.TemplateType)
		assert.Contains(t, job.Subject, "Internet")
	})

	t.Run("recurring reminder", func(t *testing.T) {
		queue := newMemoryQueue()
		svc := NewService(queue, "")
		require.NoError(t, svc.QueueRecurringReminderEmail(ctx, adapter.QueueRecurringReminderInput{
			Description: "Aluguel", DaysUntil: 3,
		}))
		assert.Equal(t, "Lembrete: Aluguel vence em 3 dia(s)", queue.only(t).Subject)
	})
}

func newTestWorker(t *testing.T, queue *memoryQueue, sender adapter.EmailSender) *Worker {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	return NewWorker(queue, sender, renderer, DefaultWorkerConfig())
}

func TestWorkerDeliversQueuedEmails(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	sender := NewMockEmailSender()
	svc := NewService(queue, "https://app.example.com")
	worker := newTestWorker(t, queue, sender)

	require.NoError(t, svc.QueueRecurringDueEmail(ctx, adapter.QueueRecurringDueInput{
		UserEmail: "ana@example.com",
		UserName:  "Ana",
		Items: []adapter.RecurringEmailItem{
			{Description: "Internet", Category: "Casa", Amount: "120.00", ScheduledDate: "2025-09-05"},
		},
	}))

	worker.ProcessNow(ctx)

	sent := sender.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "ana@example.com", sent[0].To)
	assert.Contains(t, sent[0].HTML, "Internet")
	assert.Contains(t, sent[0].Text, "2025-09-05")

	job := queue.only(t)
	assert.Equal(t, entity.EmailStatusSent, job.Status)
	assert.Equal(t, "mock-1", job.ResendID)
}

func TestWorkerFailures(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		permanent  bool
		wantStatus entity.EmailStatus
	}{
		{"temporary failure is retried", false, entity.EmailStatusPending},
		{"permanent failure stops", true, entity.EmailStatusFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue := newMemoryQueue()
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("boom"), tt.permanent)
			worker := newTestWorker(t, queue, sender)
			require.NoError(t, NewService(queue, "").QueueRecurringReminderEmail(ctx, adapter.QueueRecurringReminderInput{Description: "Aluguel"}))

			worker.ProcessNow(ctx)

			job := queue.only(t)
			assert.Equal(t, tt.wantStatus, job.Status)
			assert.Equal(t, 1, job.Attempts)
			assert.Contains(t, job.LastError, "boom")
		})
	}

	t.Run("unknown template fails permanently", func(t *testing.T) {
		queue := newMemoryQueue()
		worker := newTestWorker(t, queue, NewMockEmailSender())
		require.NoError(t, queue.Create(ctx, entity.NewEmailJob("password_reset", "a@example.com", "", "x", nil)))

		worker.ProcessNow(ctx)
		assert.Equal(t, entity.EmailStatusFailed, queue.only(t).Status)
	})
}

func TestWorkerCleanup(t *testing.T) {
	ctx := context.Background()
	queue := newMemoryQueue()
	worker := newTestWorker(t, queue, NewMockEmailSender())
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	worker.now = func() time.Time { return now }

	old := now.AddDate(0, -2, 0)
	job := entity.NewEmailJob(entity.TemplateBudgetAlert, "a@example.com", "", "x", nil)
	job.Status = entity.EmailStatusSent
	job.ProcessedAt = &old
	require.NoError(t, queue.Create(ctx, job))

	worker.tick(ctx)
	assert.Empty(t, queue.jobs)

	worker.tick(ctx)
	assert.Equal(t, 1, queue.deleteCalls, "cleanup runs at most once per interval")
}

func TestGetItemsAfterJSONRoundTrip(t *testing.T) {
	data := map[string]interface{}{
		"items": []interface{}{
			map[string]interface{}{"description": "Internet", "amount": "120.00"},
		},
		"days_until": float64(2),
	}
	items := getItems(data, "items")
	require.Len(t, items, 1)
	assert.Equal(t, "Internet", items[0].Description)
	assert.Equal(t, 2, getInt(data, "days_until"))
}
