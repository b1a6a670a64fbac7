package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/config"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, repository.UserRepository, *clock.Fake) {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))

	hash, err := auth.HashPassword("secret123", 4)
	require.NoError(t, err)

	users := repository.NewMemoryUserRepository(clk,
		domain.User{
			ID:           "u1",
			Name:         "Maria Quispe",
			Email:        "U1234567@utp.edu.pe",
			PasswordHash: hash,
			Role:         domain.RoleUser,
			IsActive:     true,
		},
		domain.User{
			ID:           "u2",
			Name:         "Dormant",
			Email:        "U7654321@utp.edu.pe",
			PasswordHash: hash,
			Role:         domain.RoleUser,
			IsActive:     false,
		},
	)

	svc := NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		BcryptCost:            4,
	}, AuthDependencies{UserRepo: users, Clock: clk})
	return svc, users, clk
}

func TestLoginSuccess(t *testing.T) {
	svc, users, clk := newAuthFixture(t)
	ctx := context.Background()

	user, token, expiresAt, err := svc.Login(ctx, "U1234567@utp.edu.pe", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.NotEmpty(t, token)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)

	stored, err := users.GetByID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.Equal(t, clk.Now(), *stored.LastLogin)
}

func TestLoginFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, _, err := svc.Login(ctx, "U1234567@utp.edu.pe", "wrong")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "UNAUTHORIZED"))

	_, _, _, err = svc.Login(ctx, "missing@utp.edu.pe", "secret123")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "UNAUTHORIZED"))

	// deactivated accounts cannot log in even with the right password
	_, _, _, err = svc.Login(ctx, "U7654321@utp.edu.pe", "secret123")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "UNAUTHORIZED"))
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	err := svc.ChangePassword(ctx, "u1", "wrong", "newpass456")
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "UNAUTHORIZED"))

	require.NoError(t, svc.ChangePassword(ctx, "u1", "secret123", "newpass456"))

	_, _, _, err = svc.Login(ctx, "U1234567@utp.edu.pe", "secret123")
	assert.Error(t, err)

	_, _, _, err = svc.Login(ctx, "U1234567@utp.edu.pe", "newpass456")
	assert.NoError(t, err)
}
