package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/dto"
)

func TestStatusForCode(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{"EXP-010001", http.StatusBadRequest},
		{"BUD-020002", http.StatusNotFound},
		{"REC-030001", http.StatusConflict},
		{"REC-030002", http.StatusConflict},
		{"AUTH-020001", http.StatusUnauthorized},
		{"AUTH-030004", http.StatusUnauthorized},
		{string(domainerror.ErrCodeEmailExists), http.StatusConflict},
		{string(domainerror.ErrCodeRateLimited), http.StatusTooManyRequests},
		{string(domainerror.ErrCodeSuggestionUnavailable), http.StatusServiceUnavailable},
		{string(domainerror.ErrCodeOrphanPendingExpense), http.StatusInternalServerError},
		{"EMAIL-990001", http.StatusInternalServerError},
		{"garbage", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForCode(tt.code))
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody string
	}{
		{
			name: "wrapped domain error",
			err: fmt.Errorf("outer: %w", domainerror.NewBudgetError(
				domainerror.ErrCodeNoActiveBudget, "no active budget", domainerror.ErrNoActiveBudget,
			)),
			expectedCode: http.StatusNotFound,
			expectedBody: string(domainerror.ErrCodeNoActiveBudget),
		},
		{
			name: "pending already resolved",
			err: domainerror.NewRecurringError(
				domainerror.ErrCodePendingResolved, "already resolved", domainerror.ErrPendingExpenseResolved,
			),
			expectedCode: http.StatusConflict,
			expectedBody: string(domainerror.ErrCodePendingResolved),
		},
		{
			name:         "unknown error hides details",
			err:          errors.New("connection refused"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.Use(requestid.New())
			engine.GET("/", func(c *gin.Context) { respondError(c, tt.err) })

			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, tt.expectedCode, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedBody, body.Code)
			assert.NotEmpty(t, body.RequestID)
			assert.NotContains(t, body.Error, "connection refused")
		})
	}
}

func TestRequireUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.GET("/", func(c *gin.Context) {
		if _, ok := requireUser(c); ok {
			c.Status(http.StatusNoContent)
		}
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeMissingToken))
}
