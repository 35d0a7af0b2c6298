package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expense-tracker/backend/internal/application/usecase/usecasetest"
	domainerror "github.com/expense-tracker/backend/internal/domain/error"
)

type authFixture struct {
	users    *usecasetest.UserRepo
	tokens   *usecasetest.TokenService
	register *RegisterUserUseCase
	login    *LoginUserUseCase
	refresh  *RefreshTokenUseCase
	logout   *LogoutUserUseCase
}

func newAuthFixture() *authFixture {
	users := usecasetest.NewUserRepo()
	tokens := usecasetest.NewTokenService()
	passwords := usecasetest.PasswordService{}
	return &authFixture{
		users:    users,
		tokens:   tokens,
		register: NewRegisterUserUseCase(users, passwords, tokens, usecasetest.NewClock("2025-09-01")),
		login:    NewLoginUserUseCase(users, passwords, tokens),
		refresh:  NewRefreshTokenUseCase(users, tokens),
		logout:   NewLogoutUserUseCase(tokens),
	}
}

func TestRegisterUserUseCase(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		input    RegisterUserInput
		wantCode domainerror.AuthErrorCode
	}{
		{name: "terms not accepted", input: RegisterUserInput{Email: "a@b.com", Name: "A", Password: "password1"}, wantCode: domainerror.ErrCodeTermsNotAccepted},
		{name: "invalid email", input: RegisterUserInput{Email: "nope", Name: "A", Password: "password1", TermsAccepted: true}, wantCode: domainerror.ErrCodeInvalidEmail},
		{name: "blank name", input: RegisterUserInput{Email: "a@b.com", Name: " ", Password: "password1", TermsAccepted: true}, wantCode: domainerror.ErrCodeMissingFields},
		{name: "weak password", input: RegisterUserInput{Email: "a@b.com", Name: "A", Password: "short", TermsAccepted: true}, wantCode: domainerror.ErrCodeWeakPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newAuthFixture().register.Execute(ctx, tt.input)
			var authErr *domainerror.AuthError
			require.ErrorAs(t, err, &authErr)
			assert.Equal(t, tt.wantCode, authErr.Code)
		})
	}

	t.Run("normalizes email and rejects duplicates", func(t *testing.T) {
		f := newAuthFixture()
		out, err := f.register.Execute(ctx, RegisterUserInput{Email: " Ana@Example.com ", Name: "Ana", Password: "password1", TermsAccepted: true})
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", out.User.Email)
		assert.NotEmpty(t, out.AccessToken)
		assert.Equal(t, int64(900), out.ExpiresIn)
		assert.True(t, out.User.WantsBudgetAlerts())

		_, err = f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "password1", TermsAccepted: true})
		assert.ErrorIs(t, err, domainerror.ErrEmailAlreadyExists)
	})
}

func TestLoginRefreshLogout(t *testing.T) {
	ctx := context.Background()
	f := newAuthFixture()
	_, err := f.register.Execute(ctx, RegisterUserInput{Email: "ana@example.com", Name: "Ana", Password: "password1", TermsAccepted: true})
	require.NoError(t, err)

	_, err = f.login.Execute(ctx, LoginUserInput{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidCredentials)
	_, err = f.login.Execute(ctx, LoginUserInput{Email: "ghost@example.com", Password: "password1"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidCredentials)

	session, err := f.login.Execute(ctx, LoginUserInput{Email: "ANA@example.com", Password: "password1"})
	require.NoError(t, err)

	rotated, err := f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: session.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: session.RefreshToken})
	assert.ErrorIs(t, err, domainerror.ErrRefreshTokenRevoked)

	require.NoError(t, f.logout.Execute(ctx, LogoutUserInput{RefreshToken: rotated.RefreshToken}))
	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: rotated.RefreshToken})
	assert.ErrorIs(t, err, domainerror.ErrRefreshTokenRevoked)

	_, err = f.refresh.Execute(ctx, RefreshTokenInput{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, domainerror.ErrInvalidToken)

	assert.NoError(t, f.logout.Execute(ctx, LogoutUserInput{RefreshToken: "garbage"}))
}
