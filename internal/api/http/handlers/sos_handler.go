package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/utp-plus/report-service/internal/api/dto"
	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/service"
	apperrors "github.com/utp-plus/report-service/pkg/util"
)

// SOSHandler exposes the emergency panic-button endpoint.
type SOSHandler struct {
	service *service.SOSService
}

// NewSOSHandler constructs handler.
func NewSOSHandler(sosService *service.SOSService) *SOSHandler {
	return &SOSHandler{service: sosService}
}

// Trigger POST /sos.
func (h *SOSHandler) Trigger(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.SOSRequest
	// an empty body is a valid panic-button press
	_ = c.BodyParser(&req)

	alert, err := h.service.Trigger(c.Context(), principal.User, service.SOSInput{Zone: req.Zone})
	if err != nil {
		return err
	}
	return c.Status(http.StatusAccepted).JSON(fiber.Map{"data": dto.SOSResponse{
		ID:        alert.ID,
		Campus:    alert.Campus,
		Zone:      alert.Zone,
		CreatedAt: alert.CreatedAt,
	}})
}
