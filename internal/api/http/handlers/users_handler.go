package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/utp-plus/report-service/internal/api/dto"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/service"
	apperrors "github.com/utp-plus/report-service/pkg/util"
)

// UsersHandler exposes admin roster management endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// Create POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.CreateUser(c.Context(), service.UserCreateInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Password:      req.Password,
		Role:          req.Role,
		UserType:      req.UserType,
		Campus:        req.Campus,
		AssignedZones: req.AssignedZones,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": userResponse(user)})
}

// List GET /users?role=.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var role *domain.Role
	if raw := c.Query("role"); raw != "" {
		parsed := domain.Role(raw)
		role = &parsed
	}
	users, err := h.service.ListUsers(c.Context(), role)
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, userResponse(&users[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.service.GetUserByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Update PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.UpdateUser(c.Context(), c.Params("id"), service.UserUpdateInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Campus:        req.Campus,
		AssignedZones: req.AssignedZones,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

// Delete DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            user.ID,
		Name:          user.Name,
		Email:         user.Email,
		Phone:         user.Phone,
		Role:          user.Role,
		UserType:      user.UserType,
		Campus:        user.Campus,
		AssignedZones: user.AssignedZones,
		IsActive:      user.IsActive,
		CreatedAt:     user.CreatedAt,
		LastLogin:     user.LastLogin,
	}
}
