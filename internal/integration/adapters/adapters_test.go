package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type memoryStore struct {
	tokens map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{tokens: map[string]bool{}}
}

func (m *memoryStore) Save(_ context.Context, token string, _ uuid.UUID, _ time.Time) error {
	m.tokens[token] = true
	return nil
}

func (m *memoryStore) IsValid(_ context.Context, token string) (bool, error) {
	return m.tokens[token], nil
}

func (m *memoryStore) Invalidate(_ context.Context, token string) error {
	delete(m.tokens, token)
	return nil
}

func newTestTokenService(store *memoryStore) *tokenService {
	return NewTokenService(TokenConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	}, store).(*tokenService)
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := newTestTokenService(store)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, pair.ExpiresIn)

	t.Run("access token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "ana@example.com", claims.Email)
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		_, err := svc.ValidateAccessToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
		_, err = svc.ValidateRefreshToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("refresh token is revocable", func(t *testing.T) {
		claims, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)

		require.NoError(t, svc.InvalidateRefreshToken(ctx, pair.RefreshToken))
		_, err = svc.ValidateRefreshToken(ctx, pair.RefreshToken)
		assert.ErrorIs(t, err, domainerror.ErrRefreshTokenRevoked)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService(TokenConfig{Secret: "other", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour}, store)
		_, err := other.ValidateAccessToken(ctx, pair.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		svc.now = func() time.Time { return time.Now().UTC().Add(-time.Hour) }
		defer func() { svc.now = func() time.Time { return time.Now().UTC() } }()

		old, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", false)
		require.NoError(t, err)
		_, err = svc.ValidateAccessToken(ctx, old.AccessToken)
		assert.ErrorIs(t, err, domainerror.ErrInvalidToken)
		assert.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("remember me stretches lifetimes", func(t *testing.T) {
		long, err := svc.GenerateTokenPair(ctx, userID, "ana@example.com", true)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, long.ExpiresIn)
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(bcrypt.MinCost)

	hash, err := svc.HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.NoError(t, svc.VerifyPassword(hash, "correct horse"))
	assert.Error(t, svc.VerifyPassword(hash, "wrong horse"))

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"too short", "1234567", true},
		{"minimum length", "12345678", false},
		{"too long", string(make([]byte, 73)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrWeakPassword)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []genai.Part{genai.Text(text)}},
		}},
	}
}

func TestParseSuggestResponse(t *testing.T) {
	known := []string{"Comida", "Transporte"}

	tests := []struct {
		name       string
		resp       *genai.GenerateContentResponse
		want       string
		confidence float64
		wantErr    bool
	}{
		{
			name:       "matches known category case-insensitively",
			resp:       textResponse(`{"category":"comida","confidence":0.9,"reasoning":"mercado"}`),
			want:       "Comida",
			confidence: 0.9,
		},
		{
			name:       "fenced new category with clamped confidence",
			resp:       textResponse("```json\n{\"category\":\"Streaming\",\"confidence\":1.4}\n```"),
			want:       "Streaming",
			confidence: 1,
		},
		{name: "empty category", resp: textResponse(`{"category":" "}`), wantErr: true},
		{name: "not json", resp: textResponse("Comida"), wantErr: true},
		{name: "no candidates", resp: &genai.GenerateContentResponse{}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSuggestResponse(tt.resp, known)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Category)
			assert.InDelta(t, tt.confidence, got.Confidence, 1e-9)
		})
	}
}

func TestBuildSuggestPrompt(t *testing.T) {
	prompt := buildSuggestPrompt("Uber para o trabalho", []string{"Transporte"})
	assert.Contains(t, prompt, "- Transporte\n")
	assert.Contains(t, prompt, `"Uber para o trabalho"`)

	assert.Contains(t, buildSuggestPrompt("x", nil), "(Nenhuma categoria existente)")
}

func TestGeminiServiceUnavailable(t *testing.T) {
	svc := NewGeminiService("", "")
	assert.False(t, svc.IsAvailable())
	_, err := svc.Suggest(context.Background(), "Uber", nil)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, context.Canceled))
}
