// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

const (
	// DefaultMaxAttempts is the number of allowed attempts per window.
	DefaultMaxAttempts = 5
	// DefaultWindow is the fixed window for counting attempts.
	DefaultWindow = time.Minute
)

type window struct {
	attempts int
	resetAt  time.Time
}

// RateLimiter limits requests per client IP within a fixed window.
type RateLimiter struct {
	mu          sync.Mutex
	windows     map[string]*window
	maxAttempts int
	period      time.Duration
	now         func() time.Time
}

// NewRateLimiter creates a rate limiter. Non-positive values fall back to the defaults.
func NewRateLimiter(maxAttempts int, period time.Duration) *RateLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if period <= 0 {
		period = DefaultWindow
	}
	return &RateLimiter{
		windows:     make(map[string]*window),
		maxAttempts: maxAttempts,
		period:      period,
		now:         time.Now,
	}
}

// Middleware returns a Gin handler that rejects clients over the limit with 429.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if key == "" {
			key = c.Request.RemoteAddr
		}

		if !rl.allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error:     "Too many requests. Please try again later.",
				Code:      string(domainerror.ErrCodeRateLimited),
				RequestID: requestid.Get(c),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.After(w.resetAt) {
		rl.windows[key] = &window{attempts: 1, resetAt: now.Add(rl.period)}
		return true
	}
	if w.attempts >= rl.maxAttempts {
		return false
	}
	w.attempts++
	return true
}

// Cleanup drops expired windows.
func (rl *RateLimiter) Cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for key, w := range rl.windows {
		if now.After(w.resetAt) {
			delete(rl.windows, key)
		}
	}
}

// StartCleanup runs Cleanup once per window until ctx is done.
func (rl *RateLimiter) StartCleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Cleanup()
		}
	}
}
