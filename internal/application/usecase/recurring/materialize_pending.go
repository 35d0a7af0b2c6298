// Package recurring contains recurring expense use cases.
package recurring

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/service"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// DefaultMaterializeLockTTL bounds how long one materialization run may hold a user's lock.
const DefaultMaterializeLockTTL = 30 * time.Second

// MaterializeLockKey returns the lock key guarding a user's materialization.
func MaterializeLockKey(userID uuid.UUID) string {
	return "materialize:" + userID.String()
}

// MaterializePendingInput represents the input for materializing a user's definitions.
// A nil Date means today. A Date may only move the run back in time.
type MaterializePendingInput struct {
	UserID uuid.UUID
	Date   *valueobject.Date
}

// MaterializePendingOutput reports what a run created. Created holds only rows this run
// inserted; rows another run stored first are left out.
type MaterializePendingOutput struct {
	Created  []*entity.PendingRecurringExpense
	Inserted int
	Advanced int
}

// MaterializePendingUseCase turns lapsed due dates into pending rows.
type MaterializePendingUseCase struct {
	recurringRepo adapter.RecurringExpenseRepository
	pendingRepo   adapter.PendingExpenseRepository
	locker        adapter.Locker
	clock         adapter.Clock
	lockTTL       time.Duration
	logger        *slog.Logger
}

// NewMaterializePendingUseCase creates a new MaterializePendingUseCase instance.
func NewMaterializePendingUseCase(
	recurringRepo adapter.RecurringExpenseRepository,
	pendingRepo adapter.PendingExpenseRepository,
	locker adapter.Locker,
	clock adapter.Clock,
) *MaterializePendingUseCase {
	return &MaterializePendingUseCase{
		recurringRepo: recurringRepo,
		pendingRepo:   pendingRepo,
		locker:        locker,
		clock:         clock,
		lockTTL:       DefaultMaterializeLockTTL,
		logger:        slog.With("component", "materializer"),
	}
}

// WithLockTTL overrides how long the per-user lock is held. Non-positive values are ignored.
func (uc *MaterializePendingUseCase) WithLockTTL(ttl time.Duration) *MaterializePendingUseCase {
	if ttl > 0 {
		uc.lockTTL = ttl
	}
	return uc
}

// Execute materializes every lapsed occurrence of the user's active definitions.
// Running it twice for the same date creates nothing the second time.
func (uc *MaterializePendingUseCase) Execute(ctx context.Context, input MaterializePendingInput) (*MaterializePendingOutput, error) {
	today := valueobject.DateOf(uc.clock.Now())
	now := today
	if input.Date != nil {
		if input.Date.After(today) {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeInvalidRecurringDate,
				fmt.Sprintf("cannot materialize through %s, after today %s", *input.Date, today),
				domainerror.ErrFutureMaterializationDate,
			)
		}
		now = *input.Date
	}

	release, ok, err := uc.locker.TryLock(ctx, MaterializeLockKey(input.UserID), uc.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire materialization lock: %w", err)
	}
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMaterializationInProgress,
			"materialization already running for this user",
			domainerror.ErrMaterializationInProgress,
		)
	}
	defer release()

	defs, err := uc.recurringRepo.FindByUser(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load recurring expenses: %w", err)
	}

	active := make([]*entity.RecurringExpense, 0, len(defs))
	ids := make([]uuid.UUID, 0, len(defs))
	for _, def := range defs {
		if def.IsActive {
			active = append(active, def)
			ids = append(ids, def.ID)
		}
	}
	if len(active) == 0 {
		return &MaterializePendingOutput{}, nil
	}

	existing, err := uc.pendingRepo.FindByDefinitions(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending expenses: %w", err)
	}

	result := service.MaterializePending(active, existing, now)
	if len(result.Created) == 0 && len(result.Advanced) == 0 {
		return &MaterializePendingOutput{}, nil
	}

	inserted, err := uc.pendingRepo.SaveMaterialization(ctx, result.Created, result.Advanced)
	if err != nil {
		return nil, fmt.Errorf("failed to save materialization: %w", err)
	}

	uc.logger.Info("materialized recurring expenses",
		"user_id", input.UserID,
		"date", now.String(),
		"created", len(result.Created),
		"inserted", len(inserted),
		"advanced", len(result.Advanced),
	)

	return &MaterializePendingOutput{
		Created:  inserted,
		Inserted: len(inserted),
		Advanced: len(result.Advanced),
	}, nil
}
