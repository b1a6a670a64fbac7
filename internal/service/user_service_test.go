package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/pkg/util"
)

func newUserService(t *testing.T) *UserService {
	t.Helper()
	clk := clock.NewFake(time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC))
	return NewUserService(UserDependencies{
		UserRepo:    repository.NewMemoryUserRepository(clk),
		BcryptCost:  4, // min cost keeps the suite fast
		EmailDomain: "utp.edu.pe",
	})
}

func userType(ut domain.UserType) *domain.UserType {
	return &ut
}

func studentInput(email string) UserCreateInput {
	return UserCreateInput{
		Name:     "Maria Quispe",
		Email:    email,
		Password: "secret123",
		Role:     domain.RoleUser,
		UserType: userType(domain.UserTypeStudent),
	}
}

func TestEmailValidationByRole(t *testing.T) {
	cases := []struct {
		name  string
		email string
		role  domain.Role
		ut    *domain.UserType
		valid bool
	}{
		{"student ok", "U1234567@utp.edu.pe", domain.RoleUser, userType(domain.UserTypeStudent), true},
		{"student local too short", "U123456@utp.edu.pe", domain.RoleUser, userType(domain.UserTypeStudent), false},
		{"student wrong prefix", "C1234567@utp.edu.pe", domain.RoleUser, userType(domain.UserTypeStudent), false},
		{"student wrong domain", "U1234567@gmail.com", domain.RoleUser, userType(domain.UserTypeStudent), false},
		{"teacher ok", "C12345@utp.edu.pe", domain.RoleUser, userType(domain.UserTypeTeacher), true},
		{"teacher too long", "C123456@utp.edu.pe", domain.RoleUser, userType(domain.UserTypeTeacher), false},
		{"end-user without type", "U1234567@utp.edu.pe", domain.RoleUser, nil, false},
		{"admin ok", "D1234567@utp.edu.pe", domain.RoleAdmin, nil, true},
		{"admin student format", "U1234567@utp.edu.pe", domain.RoleAdmin, nil, false},
		{"security ok", "S123@utp.edu.pe", domain.RoleSecurity, nil, true},
		{"security too long", "S1234@utp.edu.pe", domain.RoleSecurity, nil, false},
		{"domain case-insensitive", "S123@UTP.EDU.PE", domain.RoleSecurity, nil, true},
		{"missing at sign", "U1234567utp.edu.pe", domain.RoleUser, userType(domain.UserTypeStudent), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newUserService(t)
			input := UserCreateInput{
				Name:     "Test User",
				Email:    tc.email,
				Password: "secret123",
				Role:     tc.role,
				UserType: tc.ut,
			}
			if tc.role == domain.RoleSecurity {
				input.AssignedZones = []string{"Biblioteca"}
			}
			_, err := svc.CreateUser(context.Background(), input)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))
			}
		})
	}
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, studentInput("U1234567@utp.edu.pe"))
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, studentInput("U1234567@utp.edu.pe"))
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "CONFLICT"))
}

func TestSecurityUserRequiresAssignedZone(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	input := UserCreateInput{
		Name:     "Guard One",
		Email:    "S001@utp.edu.pe",
		Password: "secret123",
		Role:     domain.RoleSecurity,
	}
	_, err := svc.CreateUser(ctx, input)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))

	input.AssignedZones = []string{"Estacionamiento"}
	created, err := svc.CreateUser(ctx, input)
	require.NoError(t, err)

	// updates cannot strip the last zone either
	_, err = svc.UpdateUser(ctx, created.ID, UserUpdateInput{AssignedZones: []string{}})
	assert.Error(t, err)
}

func TestSuperuserInvariant(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	root, err := svc.EnsureSuperuser(ctx, "Root", "D0000001@utp.edu.pe", "rootpass")
	require.NoError(t, err)
	require.Equal(t, domain.RoleSuperuser, root.Role)

	// idempotent: a second call returns the existing account
	again, err := svc.EnsureSuperuser(ctx, "Other", "D0000002@utp.edu.pe", "otherpass")
	require.NoError(t, err)
	assert.Equal(t, root.ID, again.ID)

	// a second superuser can never be provisioned through CreateUser
	_, err = svc.CreateUser(ctx, UserCreateInput{
		Name:     "Pretender",
		Email:    "D9999999@utp.edu.pe",
		Password: "secret123",
		Role:     domain.RoleSuperuser,
	})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "CONFLICT"))

	// the superuser cannot be deactivated
	inactive := false
	_, err = svc.UpdateUser(ctx, root.ID, UserUpdateInput{IsActive: &inactive})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "FORBIDDEN"))

	// and cannot be deleted
	err = svc.DeleteUser(ctx, root.ID)
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "FORBIDDEN"))

	listed, err := svc.ListUsers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestUpdateUserRevalidatesEmail(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, studentInput("U1234567@utp.edu.pe"))
	require.NoError(t, err)

	bad := "C12345@utp.edu.pe" // teacher format on a student account
	_, err = svc.UpdateUser(ctx, created.ID, UserUpdateInput{Email: &bad})
	require.Error(t, err)
	assert.True(t, util.IsCode(err, "VALIDATION_FAILED"))

	good := "U7654321@utp.edu.pe"
	updated, err := svc.UpdateUser(ctx, created.ID, UserUpdateInput{Email: &good})
	require.NoError(t, err)
	assert.Equal(t, good, updated.Email)
}

func TestDeleteUserRemovesRegularAccount(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, studentInput("U1234567@utp.edu.pe"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, created.ID))

	_, err = svc.GetUserByID(ctx, created.ID)
	assert.Error(t, err)
}

func TestListUsersFilteredByRole(t *testing.T) {
	svc := newUserService(t)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, studentInput("U1234567@utp.edu.pe"))
	require.NoError(t, err)
	_, err = svc.CreateUser(ctx, UserCreateInput{
		Name:          "Guard One",
		Email:         "S001@utp.edu.pe",
		Password:      "secret123",
		Role:          domain.RoleSecurity,
		AssignedZones: []string{"Cafeteria"},
	})
	require.NoError(t, err)

	role := domain.RoleSecurity
	guards, err := svc.ListUsers(ctx, &role)
	require.NoError(t, err)
	require.Len(t, guards, 1)
	assert.Equal(t, "S001@utp.edu.pe", guards[0].Email)
}
