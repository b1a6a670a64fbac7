package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
)

// memoryUserRepository keeps the roster in process memory. Used when no
// Postgres DSN is configured and as the test fixture. Initial state is
// constructor-injected, never ambient.
type memoryUserRepository struct {
	mu    sync.RWMutex
	clk   clock.Clock
	users map[string]domain.User
}

// NewMemoryUserRepository builds an in-memory roster seeded with the given users.
func NewMemoryUserRepository(clk clock.Clock, seed ...domain.User) UserRepository {
	repo := &memoryUserRepository{
		clk:   clk,
		users: make(map[string]domain.User, len(seed)),
	}
	for _, user := range seed {
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.CreatedAt.IsZero() {
			user.CreatedAt = clk.Now()
		}
		user.UpdatedAt = user.CreatedAt
		repo.users[user.ID] = user
	}
	return repo
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = uuid.NewString()
	user.CreatedAt = r.clk.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	user.UpdatedAt = r.clk.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return cloneUser(user), nil
}

func (r *memoryUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *cloneUser(user))
	}
	sortUsersByCreation(result)
	return result, nil
}

func (r *memoryUserRepository) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var result []domain.User
	for _, user := range r.users {
		if user.Role == role {
			result = append(result, *cloneUser(user))
		}
	}
	sortUsersByCreation(result)
	return result, nil
}

func sortUsersByCreation(users []domain.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID < users[j].ID
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
}

func cloneUser(user domain.User) *domain.User {
	if user.AssignedZones != nil {
		user.AssignedZones = append([]string(nil), user.AssignedZones...)
	}
	if user.UserType != nil {
		ut := *user.UserType
		user.UserType = &ut
	}
	if user.LastLogin != nil {
		ll := *user.LastLogin
		user.LastLogin = &ll
	}
	return &user
}
