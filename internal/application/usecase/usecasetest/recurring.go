package usecasetest

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

type recurringStore struct {
	mu       sync.Mutex
	defs     map[uuid.UUID]*entity.RecurringExpense
	pending  map[uuid.UUID]*entity.PendingRecurringExpense
	expenses *ExpenseRepo
}

// RecurringRepo is an in-memory adapter.RecurringExpenseRepository.
type RecurringRepo struct{ s *recurringStore }

// PendingRepo is an in-memory adapter.PendingExpenseRepository sharing state with a RecurringRepo.
type PendingRepo struct{ s *recurringStore }

// NewRecurringRepos creates a connected pair of repositories. Confirmed expenses go to expenses.
func NewRecurringRepos(expenses *ExpenseRepo) (*RecurringRepo, *PendingRepo) {
	s := &recurringStore{
		defs:     make(map[uuid.UUID]*entity.RecurringExpense),
		pending:  make(map[uuid.UUID]*entity.PendingRecurringExpense),
		expenses: expenses,
	}
	return &RecurringRepo{s: s}, &PendingRepo{s: s}
}

func (r *RecurringRepo) Create(_ context.Context, def *entity.RecurringExpense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.defs[def.ID] = def
	return nil
}

func (r *RecurringRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.RecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	def, ok := r.s.defs[id]
	if !ok {
		return nil, domainerror.ErrRecurringExpenseNotFound
	}
	return def, nil
}

func (r *RecurringRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.RecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.RecurringExpense, 0)
	for _, def := range r.s.defs {
		if def.UserID == userID {
			out = append(out, def)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDueDate.Before(out[j].NextDueDate) })
	return out, nil
}

func (r *RecurringRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.RecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.RecurringExpense, 0, len(ids))
	for _, id := range ids {
		if def, ok := r.s.defs[id]; ok {
			out = append(out, def)
		}
	}
	return out, nil
}

func (r *RecurringRepo) FindUsersWithActive(_ context.Context) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	seen := make(map[uuid.UUID]bool)
	out := make([]uuid.UUID, 0)
	for _, def := range r.s.defs {
		if def.IsActive && !seen[def.UserID] {
			seen[def.UserID] = true
			out = append(out, def.UserID)
		}
	}
	return out, nil
}

func (r *RecurringRepo) Update(_ context.Context, def *entity.RecurringExpense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.defs[def.ID]; !ok {
		return domainerror.ErrRecurringExpenseNotFound
	}
	r.s.defs[def.ID] = def
	return nil
}

func (r *RecurringRepo) UpdateLastReminder(_ context.Context, id uuid.UUID, dueDate valueobject.Date) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	def, ok := r.s.defs[id]
	if !ok {
		return domainerror.ErrRecurringExpenseNotFound
	}
	def.LastReminderFor = &dueDate
	return nil
}

func (r *RecurringRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.defs[id]; !ok {
		return domainerror.ErrRecurringExpenseNotFound
	}
	delete(r.s.defs, id)
	for pid, p := range r.s.pending {
		if p.RecurringExpenseID == id && p.IsPending() {
			delete(r.s.pending, pid)
		}
	}
	return nil
}

// Remove deletes a definition but keeps its pending rows, leaving them orphaned.
func (r *RecurringRepo) Remove(id uuid.UUID) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.defs, id)
}

func (r *PendingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PendingRecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pending[id]
	if !ok {
		return nil, domainerror.ErrPendingExpenseNotFound
	}
	return p, nil
}

func (r *PendingRepo) FindByUser(_ context.Context, userID uuid.UUID, statuses ...entity.PendingStatus) ([]*entity.PendingRecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.PendingRecurringExpense, 0)
	for _, p := range r.s.pending {
		if p.UserID != userID || !hasStatus(p.Status, statuses) {
			continue
		}
		out = append(out, p)
	}
	sortPending(out)
	return out, nil
}

func (r *PendingRepo) FindByDefinitions(_ context.Context, ids []uuid.UUID) ([]*entity.PendingRecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	out := make([]*entity.PendingRecurringExpense, 0)
	for _, p := range r.s.pending {
		if wanted[p.RecurringExpenseID] {
			out = append(out, p)
		}
	}
	sortPending(out)
	return out, nil
}

func (r *PendingRepo) SaveMaterialization(_ context.Context, created []*entity.PendingRecurringExpense, advanced []*entity.RecurringExpense) ([]*entity.PendingRecurringExpense, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inserted := make([]*entity.PendingRecurringExpense, 0, len(created))
	for _, p := range created {
		if r.exists(p.RecurringExpenseID, p.ScheduledDate) {
			continue
		}
		r.s.pending[p.ID] = p
		inserted = append(inserted, p)
	}
	for _, def := range advanced {
		r.s.defs[def.ID] = def
	}
	return inserted, nil
}

func (r *PendingRepo) exists(defID uuid.UUID, date valueobject.Date) bool {
	for _, p := range r.s.pending {
		if p.RecurringExpenseID == defID && p.ScheduledDate.Equal(date) {
			return true
		}
	}
	return false
}

func (r *PendingRepo) Confirm(ctx context.Context, p *entity.PendingRecurringExpense, expense *entity.Expense) error {
	if err := r.s.expenses.Create(ctx, expense); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.pending[p.ID] = p
	if def, ok := r.s.defs[p.RecurringExpenseID]; ok {
		date := p.ScheduledDate
		def.LastExecuted = &date
	}
	return nil
}

func (r *PendingRepo) Skip(_ context.Context, p *entity.PendingRecurringExpense) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.pending[p.ID]
	if !ok || (stored != p && !stored.IsPending()) {
		return domainerror.ErrPendingExpenseResolved
	}
	r.s.pending[p.ID] = p
	return nil
}

// Add stores rows directly, bypassing materialization.
func (r *PendingRepo) Add(rows ...*entity.PendingRecurringExpense) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range rows {
		r.s.pending[p.ID] = p
	}
}

func hasStatus(status entity.PendingStatus, statuses []entity.PendingStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func sortPending(rows []*entity.PendingRecurringExpense) {
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ScheduledDate.Equal(rows[j].ScheduledDate) {
			return rows[i].ScheduledDate.Before(rows[j].ScheduledDate)
		}
		return rows[i].Description < rows[j].Description
	})
}
