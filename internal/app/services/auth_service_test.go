package services

import (
	"context"
	"testing"
	"time"

	"github.com/mvillegas/unicatalog/internal/app/models/dto"
	"github.com/mvillegas/unicatalog/internal/pkg/apperrors"
	"github.com/mvillegas/unicatalog/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*fakeUserStore, AuthService) {
	t.Helper()

	store := newFakeUserStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret-key-test-secret-key!",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "unicatalog-test",
	})
	return store, NewAuthService(store, jwtService, zerolog.Nop())
}

func TestRegister(t *testing.T) {
	t.Run("defaults role to STAFF and never stores the plain password", func(t *testing.T) {
		store, service := newAuthService(t)

		user, err := service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "staff@universidad.edu",
			Password: "s3cret-password",
		})

		require.NoError(t, err)
		assert.Equal(t, "STAFF", user.Role)

		stored, err := store.GetByEmail(context.Background(), "staff@universidad.edu")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotEqual(t, "s3cret-password", stored.PasswordHash)
		assert.True(t, auth.CheckPassword(stored.PasswordHash, "s3cret-password"))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, service := newAuthService(t)

		_, err := service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "staff@universidad.edu",
			Password: "s3cret-password",
		})
		require.NoError(t, err)

		_, err = service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "staff@universidad.edu",
			Password: "another-password",
		})
		assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
	})
}

func TestLogin(t *testing.T) {
	t.Run("issues a verifiable token", func(t *testing.T) {
		_, service := newAuthService(t)

		_, err := service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "admin@universidad.edu",
			Password: "s3cret-password",
			Role:     "ADMIN",
		})
		require.NoError(t, err)

		token, err := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "admin@universidad.edu",
			Password: "s3cret-password",
		})

		require.NoError(t, err)
		assert.Equal(t, "Bearer", token.TokenType)
		assert.NotEmpty(t, token.AccessToken)
		assert.Equal(t, 3600, token.ExpiresIn)
	})

	t.Run("wrong password and unknown email fail identically", func(t *testing.T) {
		_, service := newAuthService(t)

		_, err := service.Register(context.Background(), &dto.RegisterRequest{
			Email:    "staff@universidad.edu",
			Password: "s3cret-password",
		})
		require.NoError(t, err)

		_, wrongPassword := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "staff@universidad.edu",
			Password: "not-the-password",
		})
		_, unknownEmail := service.Login(context.Background(), &dto.LoginRequest{
			Email:    "ghost@universidad.edu",
			Password: "s3cret-password",
		})

		assert.ErrorIs(t, wrongPassword, apperrors.ErrInvalidCredentials)
		assert.ErrorIs(t, unknownEmail, apperrors.ErrInvalidCredentials)
	})
}
