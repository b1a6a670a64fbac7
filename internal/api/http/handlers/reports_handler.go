package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/utp-plus/report-service/internal/api/dto"
	"github.com/utp-plus/report-service/internal/auth"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/internal/service"
	apperrors "github.com/utp-plus/report-service/pkg/util"
)

// ReportsHandler manages incident report endpoints.
type ReportsHandler struct {
	service *service.ReportService
}

// NewReportsHandler constructs handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{service: reportService}
}

// Create POST /reports. Submitting with is_anonymous discards the caller's
// identity before the report is stored.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.Submit(c.Context(), principal.User, service.ReportSubmission{
		IncidentType: req.IncidentType,
		Zone:         req.Zone,
		Description:  req.Description,
		IsAnonymous:  req.IsAnonymous,
		ContactInfo:  req.ContactInfo,
		PhotoName:    req.PhotoName,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.SubmitReportResponse{
		Report:          reportResponse(result.Report),
		TodayCount:      result.TodayCount,
		LastReportToday: result.LastReportToday,
		PromptFeedback:  result.PromptFeedback,
	}})
}

// List GET /reports.
func (h *ReportsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	reports, err := h.service.ListReports(c.Context(), principal.User, parseReportQuery(c))
	if err != nil {
		return err
	}
	items := make([]dto.ReportResponse, 0, len(reports))
	for i := range reports {
		items = append(items, reportResponse(&reports[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Get GET /reports/:id.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	report, err := h.service.GetReport(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": reportResponse(report)})
}

// Quota GET /reports/quota.
func (h *ReportsHandler) Quota(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	status, err := h.service.GetQuotaStatus(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.QuotaStatusResponse{
		TodayCount:        status.TodayCount,
		Limit:             status.Limit,
		Remaining:         status.Remaining,
		LastReportWarning: status.LastReportWarning,
		Blocked:           status.Blocked,
	}})
}

func parseReportQuery(c *fiber.Ctx) repository.ReportFilter {
	filter := repository.ReportFilter{}
	if zones := c.Query("zone"); zones != "" {
		for _, part := range strings.Split(zones, ",") {
			filter.Zones = append(filter.Zones, strings.TrimSpace(part))
		}
	}
	if types := c.Query("incident_type"); types != "" {
		for _, part := range strings.Split(types, ",") {
			filter.IncidentTypes = append(filter.IncidentTypes, strings.TrimSpace(part))
		}
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func reportResponse(report *domain.Report) dto.ReportResponse {
	resp := dto.ReportResponse{
		ID:           report.ID,
		IncidentType: report.IncidentType,
		Zone:         report.Zone,
		Description:  report.Description,
		IsAnonymous:  report.IsAnonymous,
		ContactInfo:  report.ContactInfo,
		HasPhoto:     report.HasPhoto,
		PhotoName:    report.PhotoName,
		CreatedAt:    report.CreatedAt,
	}
	if report.ReportedBy != nil {
		resp.ReportedBy = &dto.ReporterResponse{
			UserID:    report.ReportedBy.UserID,
			UserName:  report.ReportedBy.UserName,
			UserEmail: report.ReportedBy.UserEmail,
			UserRole:  report.ReportedBy.UserRole,
		}
	}
	return resp
}
