// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/integration/persistence/model"
)

// refreshTokenStore keeps refresh tokens in the database when Redis is not configured.
type refreshTokenStore struct {
	db *gorm.DB
}

// NewRefreshTokenStore creates a database-backed refresh token store.
func NewRefreshTokenStore(db *gorm.DB) adapter.RefreshTokenStore {
	return &refreshTokenStore{db: db}
}

// Save records an issued refresh token.
func (s *refreshTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	refreshToken := &model.RefreshTokenModel{
		ID:        uuid.New(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Create(refreshToken).Error
}

// IsValid reports whether the token exists, is not invalidated and has not expired.
func (s *refreshTokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	var refreshToken model.RefreshTokenModel
	result := s.db.WithContext(ctx).
		Where("token = ? AND invalidated = ? AND expires_at > ?", token, false, time.Now().UTC()).
		First(&refreshToken)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, result.Error
	}
	return true, nil
}

// Invalidate marks the token as revoked. Unknown tokens are ignored.
func (s *refreshTokenStore) Invalidate(ctx context.Context, token string) error {
	return s.db.WithContext(ctx).
		Model(&model.RefreshTokenModel{}).
		Where("token = ?", token).
		Update("invalidated", true).Error
}
