package application

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danuartha/go-commerce-api/internal/domain/entity"
	"github.com/danuartha/go-commerce-api/pkg/helpers"
)

func newAuthService() (*AuthService, *userRepoMock) {
	users := newUserRepoMock()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	jwt := helpers.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(users, jwt, logger), users
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, token, exp, err := svc.Register(ctx, "Dina", "dina@example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))
	assert.NotEqual(t, "secret123", u.Password, "password must be stored hashed")

	got, token2, _, err := svc.Login(ctx, "dina@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Dina", "dina@example.com", "secret123")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "Other", "dina@example.com", "different1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "Dina", "dina@example.com", "secret123")
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "dina@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, _, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProfile(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, _, _, err := svc.Register(ctx, "Dina", "dina@example.com", "secret123")
	require.NoError(t, err)

	got, err := svc.Profile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "dina@example.com", got.Email)

	_, err = svc.Profile(ctx, "missing-id")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestTokenRoundTrip(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	u, token, _, err := svc.Register(ctx, "Dina", "dina@example.com", "secret123")
	require.NoError(t, err)

	claims, err := svc.JWT.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
}
