package dto

import (
	"time"

	"github.com/utp-plus/report-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// CreateUserRequest payload for admin user provisioning.
type CreateUserRequest struct {
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone"`
	Password      string           `json:"password"`
	Role          domain.Role      `json:"role"`
	UserType      *domain.UserType `json:"user_type,omitempty"`
	Campus        string           `json:"campus"`
	AssignedZones []string         `json:"assigned_zones,omitempty"`
}

// UpdateUserRequest payload. Omitted fields keep their current values.
type UpdateUserRequest struct {
	Name          *string  `json:"name,omitempty"`
	Email         *string  `json:"email,omitempty"`
	Phone         *string  `json:"phone,omitempty"`
	Campus        *string  `json:"campus,omitempty"`
	AssignedZones []string `json:"assigned_zones,omitempty"`
	IsActive      *bool    `json:"is_active,omitempty"`
}

// UserResponse response.
type UserResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Phone         string           `json:"phone,omitempty"`
	Role          domain.Role      `json:"role"`
	UserType      *domain.UserType `json:"user_type,omitempty"`
	Campus        string           `json:"campus,omitempty"`
	AssignedZones []string         `json:"assigned_zones,omitempty"`
	IsActive      bool             `json:"is_active"`
	CreatedAt     time.Time        `json:"created_at"`
	LastLogin     *time.Time       `json:"last_login,omitempty"`
}
