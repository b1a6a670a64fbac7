package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/pkg/util"
)

// Institutional email local-part patterns, one per audience.
var (
	studentLocalRe  = regexp.MustCompile(`^U\d{7}$`)
	teacherLocalRe  = regexp.MustCompile(`^C\d{5}$`)
	adminLocalRe    = regexp.MustCompile(`^D\d{7}$`)
	securityLocalRe = regexp.MustCompile(`^S\d{3}$`)
)

// UserService manages the user roster: role-dependent email validation,
// the single-superuser invariant, and the security zone-assignment rule.
type UserService struct {
	users       repository.UserRepository
	bcryptCost  int
	emailDomain string
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo    repository.UserRepository
	BcryptCost  int
	EmailDomain string
}

// UserCreateInput describes a new roster entry.
type UserCreateInput struct {
	Name          string
	Email         string
	Phone         string
	Password      string
	Role          domain.Role
	UserType      *domain.UserType
	Campus        string
	AssignedZones []string
}

// UserUpdateInput describes editable roster fields. Nil pointers leave the
// current value untouched.
type UserUpdateInput struct {
	Name          *string
	Email         *string
	Phone         *string
	Campus        *string
	AssignedZones []string
	IsActive      *bool
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:       deps.UserRepo,
		bcryptCost:  deps.BcryptCost,
		emailDomain: deps.EmailDomain,
	}
}

// CreateUser provisions a roster entry. Creating a second superuser is
// always rejected; superusers come only from EnsureSuperuser.
func (s *UserService) CreateUser(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	if input.Role == domain.RoleSuperuser {
		return nil, util.NewConflict("superuser already provisioned", nil)
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, util.NewValidationError("name and password required", nil)
	}
	if err := s.validateEmail(input.Email, input.Role, input.UserType); err != nil {
		return nil, err
	}
	if input.Role == domain.RoleSecurity && len(input.AssignedZones) == 0 {
		return nil, util.NewValidationError("security users require at least one assigned zone", nil)
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, util.NewConflict("email already registered", map[string]any{"email": input.Email})
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:          strings.TrimSpace(input.Name),
		Email:         input.Email,
		Phone:         strings.TrimSpace(input.Phone),
		PasswordHash:  hash,
		Role:          input.Role,
		UserType:      input.UserType,
		Campus:        strings.TrimSpace(input.Campus),
		AssignedZones: input.AssignedZones,
		IsActive:      true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser edits a roster entry. The superuser can never be deactivated,
// and role changes are out of scope for updates.
func (s *UserService) UpdateUser(ctx context.Context, id string, input UserUpdateInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.IsActive != nil && !*input.IsActive && user.Role == domain.RoleSuperuser {
		return nil, util.NewForbidden("superuser cannot be deactivated")
	}
	if input.Email != nil && *input.Email != user.Email {
		if err := s.validateEmail(*input.Email, user.Role, user.UserType); err != nil {
			return nil, err
		}
		if _, err := s.users.GetByEmail(ctx, *input.Email); err == nil {
			return nil, util.NewConflict("email already registered", map[string]any{"email": *input.Email})
		} else if err != pgx.ErrNoRows {
			return nil, err
		}
		user.Email = *input.Email
	}
	if input.Name != nil {
		user.Name = strings.TrimSpace(*input.Name)
	}
	if input.Phone != nil {
		user.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Campus != nil {
		user.Campus = strings.TrimSpace(*input.Campus)
	}
	if input.AssignedZones != nil {
		user.AssignedZones = input.AssignedZones
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if user.Role == domain.RoleSecurity && len(user.AssignedZones) == 0 {
		return nil, util.NewValidationError("security users require at least one assigned zone", nil)
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a roster entry. The superuser is protected.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == domain.RoleSuperuser {
		return util.NewForbidden("superuser cannot be deleted")
	}
	return s.users.Delete(ctx, id)
}

// GetUserByID fetches a single roster entry.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetUserByEmail fetches a roster entry by email.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByEmail(ctx, email)
}

// ListUsers returns the roster, optionally filtered by role.
func (s *UserService) ListUsers(ctx context.Context, role *domain.Role) ([]domain.User, error) {
	if role != nil {
		return s.users.ListByRole(ctx, *role)
	}
	return s.users.List(ctx)
}

// EnsureSuperuser creates the single superuser account when the roster does
// not contain one yet. Called once at startup.
func (s *UserService) EnsureSuperuser(ctx context.Context, name, email, password string) (*domain.User, error) {
	existing, err := s.users.ListByRole(ctx, domain.RoleSuperuser)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return &existing[0], nil
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleSuperuser,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// validateEmail enforces the role-dependent institutional address format:
// students U#######, teachers C#####, admins D#######, security S###, all at
// the configured domain.
func (s *UserService) validateEmail(email string, role domain.Role, userType *domain.UserType) error {
	local, domainPart, ok := strings.Cut(email, "@")
	if !ok || local == "" || domainPart == "" {
		return util.NewValidationError("invalid email format", map[string]any{"email": email})
	}
	if !strings.EqualFold(domainPart, s.emailDomain) {
		return util.NewValidationError(fmt.Sprintf("email must belong to %s", s.emailDomain), map[string]any{"email": email})
	}

	var pattern *regexp.Regexp
	switch role {
	case domain.RoleUser:
		if userType == nil {
			return util.NewValidationError("user_type required for end-users", nil)
		}
		switch *userType {
		case domain.UserTypeStudent:
			pattern = studentLocalRe
		case domain.UserTypeTeacher:
			pattern = teacherLocalRe
		default:
			return util.NewValidationError("unknown user_type", map[string]any{"user_type": *userType})
		}
	case domain.RoleAdmin:
		pattern = adminLocalRe
	case domain.RoleSecurity:
		pattern = securityLocalRe
	default:
		return util.NewValidationError("unknown role", map[string]any{"role": role})
	}

	if !pattern.MatchString(local) {
		return util.NewValidationError("email does not match the institutional format for the role", map[string]any{
			"email": email,
			"role":  role,
		})
	}
	return nil
}
