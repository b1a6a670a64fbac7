package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

func newUserRepo(seed ...domain.User) (UserRepository, *clock.Fake) {
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	return NewMemoryUserRepository(clk, seed...), clk
}

func TestUserRepositoryCRUD(t *testing.T) {
	repo, clk := newUserRepo()
	ctx := context.Background()

	user := &domain.User{
		Name:     "Maria Quispe",
		Email:    "U1234567@utp.edu.pe",
		Role:     domain.RoleUser,
		IsActive: true,
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, clk.Now(), user.CreatedAt)

	byEmail, err := repo.GetByEmail(ctx, "U1234567@utp.edu.pe")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	clk.Advance(time.Minute)
	byEmail.Name = "Maria Q."
	require.NoError(t, repo.Update(ctx, byEmail))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Q.", updated.Name)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	require.NoError(t, repo.Delete(ctx, user.ID))
	_, err = repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestUserRepositoryMissingRows(t *testing.T) {
	repo, _ := newUserRepo()
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	_, err = repo.GetByEmail(ctx, "nobody@utp.edu.pe")
	assert.ErrorIs(t, err, pgx.ErrNoRows)

	assert.ErrorIs(t, repo.Delete(ctx, "nope"), pgx.ErrNoRows)
	assert.ErrorIs(t, repo.Update(ctx, &domain.User{ID: "nope"}), pgx.ErrNoRows)
}

func TestUserRepositorySeedAndListByRole(t *testing.T) {
	repo, _ := newUserRepo(
		domain.User{Name: "Root", Email: "D0000001@utp.edu.pe", Role: domain.RoleSuperuser, IsActive: true},
		domain.User{Name: "Guard", Email: "S001@utp.edu.pe", Role: domain.RoleSecurity, AssignedZones: []string{"Cafeteria"}, IsActive: true},
	)
	ctx := context.Background()

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	supers, err := repo.ListByRole(ctx, domain.RoleSuperuser)
	require.NoError(t, err)
	require.Len(t, supers, 1)
	assert.Equal(t, "Root", supers[0].Name)

	none, err := repo.ListByRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepositoryClonesOnRead(t *testing.T) {
	repo, _ := newUserRepo(
		domain.User{ID: "s1", Name: "Guard", Email: "S001@utp.edu.pe", Role: domain.RoleSecurity, AssignedZones: []string{"Cafeteria"}, IsActive: true},
	)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	got.AssignedZones[0] = "tampered"

	fresh, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cafeteria"}, fresh.AssignedZones)
}
