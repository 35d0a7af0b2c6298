// Package cache implements Redis-backed adapters and their in-process fallbacks.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/internal/application/adapter"
)

const refreshTokenPrefix = "refresh_token:"

// refreshTokenStore keeps refresh tokens as Redis keys that expire with the token.
type refreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a Redis-backed refresh token store.
func NewRefreshTokenStore(client *redis.Client) adapter.RefreshTokenStore {
	return &refreshTokenStore{client: client}
}

func (s *refreshTokenStore) Save(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, tokenKey(token), userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *refreshTokenStore) IsValid(ctx context.Context, token string) (bool, error) {
	err := s.client.Get(ctx, tokenKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read refresh token: %w", err)
	}
	return true, nil
}

func (s *refreshTokenStore) Invalidate(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, tokenKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// tokenKey hashes the token so raw JWTs never appear in Redis keys.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return refreshTokenPrefix + hex.EncodeToString(sum[:])
}
