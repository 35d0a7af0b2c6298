package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/usecase/usecasetest"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

func TestAuthenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tokens := usecasetest.NewTokenService()
	userID := uuid.New()
	pair, err := tokens.GenerateTokenPair(context.Background(), userID, "ana@example.com", false)
	require.NoError(t, err)

	engine := gin.New()
	engine.GET("/me", NewAuthMiddleware(tokens).Authenticate(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		email, _ := GetUserEmailFromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "email": email})
	})

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedBody string
	}{
		{"valid token", "Bearer " + pair.AccessToken, http.StatusOK, userID.String()},
		{"missing header", "", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
		{"empty token", "Bearer   ", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"unknown token", "Bearer nope", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)
		})
	}
}

func TestGetUserIDFromContext_WrongType(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(string(UserIDKey), "not-a-uuid")

	_, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
}
