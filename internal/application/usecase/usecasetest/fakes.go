// Package usecasetest provides in-memory adapters for use case tests.
package usecasetest

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/domain/entity"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/domain/valueobject"
)

// Clock is a fixed clock.
type Clock struct {
	T time.Time
}

// NewClock returns a clock stopped at noon UTC on date (YYYY-MM-DD).
func NewClock(date string) *Clock {
	return &Clock{T: valueobject.MustParseDate(date).Time().Add(12 * time.Hour)}
}

// Now returns the fixed time.
func (c *Clock) Now() time.Time { return c.T }

// Set moves the clock to noon UTC on date.
func (c *Clock) Set(date string) {
	c.T = valueobject.MustParseDate(date).Time().Add(12 * time.Hour)
}

// ExpenseRepo is an in-memory adapter.ExpenseRepository.
type ExpenseRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Expense
}

// NewExpenseRepo creates an empty ExpenseRepo.
func NewExpenseRepo() *ExpenseRepo {
	return &ExpenseRepo{items: make(map[uuid.UUID]*entity.Expense)}
}

func (r *ExpenseRepo) Create(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
	return nil
}

func (r *ExpenseRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrExpenseNotFound
	}
	return e, nil
}

func (r *ExpenseRepo) FindByFilter(_ context.Context, f adapter.ExpenseFilter) ([]*entity.Expense, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Expense, 0)
	for _, e := range r.items {
		if e.UserID != f.UserID {
			continue
		}
		if f.StartDate != nil && e.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && e.Date.After(*f.EndDate) {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ExpenseRepo) Update(_ context.Context, e *entity.Expense) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[e.ID]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	r.items[e.ID] = e
	return nil
}

func (r *ExpenseRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrExpenseNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ExpenseRepo) ListCategories(_ context.Context, userID uuid.UUID) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, e := range r.items {
		if e.UserID == userID && !seen[e.Category] {
			seen[e.Category] = true
			out = append(out, e.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *ExpenseRepo) MostUsedCategory(_ context.Context, userID uuid.UUID, description string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, e := range r.items {
		if e.UserID == userID && strings.EqualFold(e.Description, description) {
			counts[e.Category]++
		}
	}
	best, bestCount := "", 0
	for category, count := range counts {
		if count > bestCount || (count == bestCount && category < best) {
			best, bestCount = category, count
		}
	}
	return best, nil
}

// All returns every stored expense.
func (r *ExpenseRepo) All() []*entity.Expense {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Expense, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	return out
}

// BudgetRepo is an in-memory adapter.BudgetRepository.
type BudgetRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Budget
}

// NewBudgetRepo creates an empty BudgetRepo.
func NewBudgetRepo() *BudgetRepo {
	return &BudgetRepo{items: make(map[uuid.UUID]*entity.Budget)}
}

func (r *BudgetRepo) deactivateOthers(b *entity.Budget) {
	if !b.IsActive {
		return
	}
	for id, other := range r.items {
		if id != b.ID && other.UserID == b.UserID {
			other.IsActive = false
		}
	}
}

func (r *BudgetRepo) Create(_ context.Context, b *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deactivateOthers(b)
	r.items[b.ID] = b
	return nil
}

func (r *BudgetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (r *BudgetRepo) FindByUser(_ context.Context, userID uuid.UUID) ([]*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Budget, 0)
	for _, b := range r.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *BudgetRepo) FindActiveByUser(_ context.Context, userID uuid.UUID) (*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.items {
		if b.UserID == userID && b.IsActive {
			return b, nil
		}
	}
	return nil, domainerror.ErrNoActiveBudget
}

func (r *BudgetRepo) FindAllActive(_ context.Context) ([]*entity.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Budget, 0)
	for _, b := range r.items {
		if b.IsActive {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BudgetRepo) Update(_ context.Context, b *entity.Budget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	r.deactivateOthers(b)
	r.items[b.ID] = b
	return nil
}

func (r *BudgetRepo) UpdateAlertStatus(_ context.Context, id uuid.UUID, status entity.BudgetStatusLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return domainerror.ErrBudgetNotFound
	}
	b.LastAlertStatus = status
	return nil
}

func (r *BudgetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domainerror.ErrBudgetNotFound
	}
	delete(r.items, id)
	return nil
}

// SettingsRepo is an in-memory adapter.SettingsRepository.
type SettingsRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Settings
}

// NewSettingsRepo creates an empty SettingsRepo.
func NewSettingsRepo() *SettingsRepo {
	return &SettingsRepo{items: make(map[uuid.UUID]*entity.Settings)}
}

func (r *SettingsRepo) FindByUser(_ context.Context, userID uuid.UUID) (*entity.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[userID], nil
}

func (r *SettingsRepo) Save(_ context.Context, s *entity.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[s.UserID] = s
	return nil
}

// UserRepo is an in-memory adapter.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.User
}

// NewUserRepo creates a UserRepo holding users.
func NewUserRepo(users ...*entity.User) *UserRepo {
	r := &UserRepo{items: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		r.items[u.ID] = u
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = u
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.items[id]
	if !ok {
		return nil, domainerror.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.items {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[u.ID] = u
	return nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return false, nil
	}
	return err == nil, err
}

var (
	_ adapter.ExpenseRepository          = (*ExpenseRepo)(nil)
	_ adapter.BudgetRepository           = (*BudgetRepo)(nil)
	_ adapter.SettingsRepository         = (*SettingsRepo)(nil)
	_ adapter.UserRepository             = (*UserRepo)(nil)
	_ adapter.RecurringExpenseRepository = (*RecurringRepo)(nil)
	_ adapter.PendingExpenseRepository   = (*PendingRepo)(nil)
	_ adapter.Locker                     = (*Locker)(nil)
	_ adapter.EmailService               = (*EmailService)(nil)
	_ adapter.PasswordService            = PasswordService{}
	_ adapter.TokenService               = (*TokenService)(nil)
	_ adapter.CategorySuggester          = (*Suggester)(nil)
	_ adapter.Clock                      = (*Clock)(nil)
)
