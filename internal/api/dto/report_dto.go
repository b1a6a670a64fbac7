package dto

import (
	"time"

	"github.com/utp-plus/report-service/internal/domain"
)

// CreateReportRequest payload.
type CreateReportRequest struct {
	IncidentType string  `json:"incident_type"`
	Zone         string  `json:"zone"`
	Description  string  `json:"description"`
	IsAnonymous  bool    `json:"is_anonymous"`
	ContactInfo  *string `json:"contact_info,omitempty"`
	PhotoName    *string `json:"photo_name,omitempty"`
}

// ReporterResponse is the identity snapshot on identified reports.
type ReporterResponse struct {
	UserID    string      `json:"user_id"`
	UserName  string      `json:"user_name"`
	UserEmail string      `json:"user_email"`
	UserRole  domain.Role `json:"user_role"`
}

// ReportResponse response.
type ReportResponse struct {
	ID           string            `json:"id"`
	IncidentType string            `json:"incident_type"`
	Zone         string            `json:"zone"`
	Description  string            `json:"description"`
	IsAnonymous  bool              `json:"is_anonymous"`
	ContactInfo  *string           `json:"contact_info,omitempty"`
	HasPhoto     bool              `json:"has_photo"`
	PhotoName    *string           `json:"photo_name,omitempty"`
	ReportedBy   *ReporterResponse `json:"reported_by,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// SubmitReportResponse wraps the stored report with the quota and feedback
// decisions the client renders after submission.
type SubmitReportResponse struct {
	Report          ReportResponse `json:"report"`
	TodayCount      int            `json:"today_count"`
	LastReportToday bool           `json:"last_report_today"`
	PromptFeedback  bool           `json:"prompt_feedback"`
}

// QuotaStatusResponse response for the quota endpoint.
type QuotaStatusResponse struct {
	TodayCount        int  `json:"today_count"`
	Limit             int  `json:"limit"`
	Remaining         int  `json:"remaining"`
	LastReportWarning bool `json:"last_report_warning"`
	Blocked           bool `json:"blocked"`
}
