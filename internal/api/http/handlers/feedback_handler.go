package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/utp-plus/report-service/internal/api/dto"
	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/service"
	apperrors "github.com/utp-plus/report-service/pkg/util"
)

// FeedbackHandler manages the post-first-report rating endpoints.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler constructs handler.
func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: feedbackService}
}

// Create POST /feedback.
func (h *FeedbackHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	feedback, err := h.service.SubmitFeedback(c.Context(), principal.User, service.FeedbackInput{
		Rating:   req.Rating,
		Comment:  req.Comment,
		ReportID: req.ReportID,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": feedbackResponse(feedback)})
}

// Mine GET /feedback/mine.
func (h *FeedbackHandler) Mine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	feedbacks, err := h.service.GetUserFeedback(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedbackResponses(feedbacks)})
}

// ListAll GET /feedback. Admin only via route guard.
func (h *FeedbackHandler) ListAll(c *fiber.Ctx) error {
	feedbacks, err := h.service.GetAllFeedbacks(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": feedbackResponses(feedbacks)})
}

func feedbackResponses(feedbacks []domain.Feedback) []dto.FeedbackResponse {
	items := make([]dto.FeedbackResponse, 0, len(feedbacks))
	for i := range feedbacks {
		items = append(items, feedbackResponse(&feedbacks[i]))
	}
	return items
}

func feedbackResponse(feedback *domain.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:            feedback.ID,
		UserID:        feedback.UserID,
		UserName:      feedback.UserName,
		UserEmail:     feedback.UserEmail,
		Rating:        feedback.Rating,
		Comment:       feedback.Comment,
		ReportID:      feedback.ReportID,
		IsFirstReport: feedback.IsFirstReport,
		CreatedAt:     feedback.CreatedAt,
	}
}
