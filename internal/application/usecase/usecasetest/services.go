package usecasetest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/expense-tracker/backend/internal/application/adapter"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

// Locker is an in-process adapter.Locker.
type Locker struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewLocker creates a Locker with nothing held.
func NewLocker() *Locker {
	return &Locker{held: make(map[string]bool)}
}

func (l *Locker) TryLock(_ context.Context, key string, _ time.Duration) (func(), bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return nil, false, nil
	}
	l.held[key] = true
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.held, key)
	}, true, nil
}

// Hold marks key as taken by someone else.
func (l *Locker) Hold(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.held[key] = true
}

// EmailService records queued emails instead of sending them.
type EmailService struct {
	mu        sync.Mutex
	Alerts    []adapter.QueueBudgetAlertInput
	Due       []adapter.QueueRecurringDueInput
	Reminders []adapter.QueueRecurringReminderInput
	FailWith  error
}

func (s *EmailService) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Alerts = append(s.Alerts, input)
	return nil
}

func (s *EmailService) QueueRecurringDueEmail(_ context.Context, input adapter.QueueRecurringDueInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Due = append(s.Due, input)
	return nil
}

func (s *EmailService) QueueRecurringReminderEmail(_ context.Context, input adapter.QueueRecurringReminderInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}
	s.Reminders = append(s.Reminders, input)
	return nil
}

// PasswordService stores passwords with a "hashed:" prefix.
type PasswordService struct{}

func (PasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (PasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return domainerror.ErrInvalidCredentials
	}
	return nil
}

func (PasswordService) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

// TokenService issues opaque tokens and tracks revoked refresh tokens.
type TokenService struct {
	mu      sync.Mutex
	issued  map[string]adapter.TokenClaims
	revoked map[string]bool
}

// NewTokenService creates an empty TokenService.
func NewTokenService() *TokenService {
	return &TokenService{
		issued:  make(map[string]adapter.TokenClaims),
		revoked: make(map[string]bool),
	}
}

func (s *TokenService) GenerateTokenPair(_ context.Context, userID uuid.UUID, email string, _ bool) (*adapter.TokenPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	access, refresh := "access-"+uuid.NewString(), "refresh-"+uuid.NewString()
	claims := adapter.TokenClaims{UserID: userID, Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	s.issued[access] = claims
	s.issued[refresh] = claims
	return &adapter.TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: 15 * time.Minute}, nil
}

func (s *TokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.issued[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return &claims, nil
}

func (s *TokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	claims, ok := s.issued[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	if s.revoked[token] {
		return nil, domainerror.ErrRefreshTokenRevoked
	}
	return &claims, nil
}

func (s *TokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.issued[token]; !ok {
		return domainerror.ErrInvalidToken
	}
	s.revoked[token] = true
	return nil
}

// Suggester returns a fixed suggestion, or Err when set.
type Suggester struct {
	Suggestion *adapter.CategorySuggestion
	Err        error
	Calls      int
}

func (s *Suggester) Suggest(_ context.Context, _ string, _ []string) (*adapter.CategorySuggestion, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Suggestion == nil {
		return nil, errors.New("no suggestion configured")
	}
	return s.Suggestion, nil
}

func (s *Suggester) IsAvailable() bool { return true }
