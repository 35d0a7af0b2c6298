package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func newLimitedEngine(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func post(engine *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter(t *testing.T) {
	t.Run("rejects attempts over the limit per client", func(t *testing.T) {
		rl := NewRateLimiter(2, time.Minute)
		engine := newLimitedEngine(rl)

		assert.Equal(t, http.StatusOK, post(engine, "10.0.0.1:1000").Code)
		assert.Equal(t, http.StatusOK, post(engine, "10.0.0.1:1001").Code)

		rec := post(engine, "10.0.0.1:1002")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeRateLimited))

		assert.Equal(t, http.StatusOK, post(engine, "10.0.0.2:1000").Code)
	})

	t.Run("window resets after the period", func(t *testing.T) {
		now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, time.Minute)
		rl.now = func() time.Time { return now }

		assert.True(t, rl.allow("a"))
		assert.False(t, rl.allow("a"))

		now = now.Add(time.Minute + time.Second)
		assert.True(t, rl.allow("a"))
	})

	t.Run("cleanup drops expired windows", func(t *testing.T) {
		now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(1, time.Minute)
		rl.now = func() time.Time { return now }

		rl.allow("a")
		now = now.Add(30 * time.Second)
		rl.allow("b")
		now = now.Add(45 * time.Second)
		rl.Cleanup()

		assert.NotContains(t, rl.windows, "a")
		assert.Contains(t, rl.windows, "b")
	})

	t.Run("non-positive settings use defaults", func(t *testing.T) {
		rl := NewRateLimiter(0, -time.Second)
		assert.Equal(t, DefaultMaxAttempts, rl.maxAttempts)
		assert.Equal(t, DefaultWindow, rl.period)
	})
}
