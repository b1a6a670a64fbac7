package events

import (
	"time"

	"github.com/utp-plus/report-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated     EventType = "report_created"
	EventReportProgress    EventType = "report_progress"
	EventZoneDanger        EventType = "zone_danger"
	EventSOSTriggered      EventType = "sos_triggered"
	EventFeedbackSubmitted EventType = "feedback_submitted"
)

// Progress stages surfaced to the submitter after a report is accepted.
const (
	StageReceived = "RECIBIDO"
	StageNotified = "NOTIFICADO"
)

// Actor encapsulates actor metadata for an event. Anonymous submissions
// carry no user reference at all.
type Actor struct {
	Anonymous bool         `json:"anonymous"`
	UserID    *string      `json:"user_id,omitempty"`
	Role      *domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload. TargetRole is the audience the alert is
// addressed to; report creation alerts go to administrators.
type ReportCreatedPayload struct {
	IncidentType string      `json:"incident_type"`
	Zone         string      `json:"zone"`
	HasPhoto     bool        `json:"has_photo"`
	TargetRole   domain.Role `json:"target_role"`
}

// ReportProgressPayload payload.
type ReportProgressPayload struct {
	Stage      string      `json:"stage"`
	TargetRole domain.Role `json:"target_role"`
}

// ZoneDangerPayload payload for a zone crossing the configured threshold.
type ZoneDangerPayload struct {
	Zone        string `json:"zone"`
	Count       int    `json:"count"`
	WindowHours int    `json:"window_hours"`
}

// SOSPayload payload.
type SOSPayload struct {
	Campus string  `json:"campus"`
	Zone   *string `json:"zone,omitempty"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Rating        int  `json:"rating"`
	IsFirstReport bool `json:"is_first_report"`
}

// AnonymousActor builds the actor for anonymous submissions.
func AnonymousActor() Actor {
	return Actor{Anonymous: true}
}

// UserActor builds the actor for an identified user.
func UserActor(userID string, role domain.Role) Actor {
	return Actor{UserID: &userID, Role: &role}
}
