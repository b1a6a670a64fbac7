package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/events"
	"github.com/utp-plus/report-service/internal/repository"
	"github.com/utp-plus/report-service/pkg/util"
)

// ReportService coordinates the report submission workflow: validation,
// daily-quota check, persistence, notification fan-out, and the first-report
// feedback decision.
type ReportService struct {
	reports    repository.ReportRepository
	feedback   repository.FeedbackRepository
	dispatcher events.Dispatcher
	danger     DangerZonePolicy
	clk        clock.Clock
	dailyLimit int
}

// ReportDependencies bundles collaborators for the report service.
type ReportDependencies struct {
	ReportRepo   repository.ReportRepository
	FeedbackRepo repository.FeedbackRepository
	Dispatcher   events.Dispatcher
	DangerPolicy DangerZonePolicy
	Clock        clock.Clock
	DailyLimit   int
}

// ReportSubmission describes the incident form payload.
type ReportSubmission struct {
	IncidentType string
	Zone         string
	Description  string
	IsAnonymous  bool
	ContactInfo  *string
	PhotoName    *string
}

// SubmitResult carries the stored report plus the quota and feedback
// decisions the presentation layer renders after a successful submission.
type SubmitResult struct {
	Report *domain.Report
	// TodayCount is the post-submission identified count; zero for anonymous.
	TodayCount int
	// LastReportToday is set when this submission consumed the final slot of
	// the daily quota.
	LastReportToday bool
	// PromptFeedback is true exactly once per user: on their first identified
	// report when no feedback was given yet.
	PromptFeedback bool
}

// QuotaStatus reflects the caller's position against the daily cap.
type QuotaStatus struct {
	TodayCount int
	Limit      int
	Remaining  int
	// LastReportWarning escalates when only one slot remains today.
	LastReportWarning bool
	Blocked           bool
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	limit := deps.DailyLimit
	if limit <= 0 {
		limit = 3
	}
	return &ReportService{
		reports:    deps.ReportRepo,
		feedback:   deps.FeedbackRepo,
		dispatcher: deps.Dispatcher,
		danger:     deps.DangerPolicy,
		clk:        deps.Clock,
		dailyLimit: limit,
	}
}

// Submit runs the full submission workflow. The quota and first-report
// checks are evaluated against store state before the new report is
// appended; anonymous submissions skip the quota entirely and never carry a
// reporter snapshot.
func (s *ReportService) Submit(ctx context.Context, reporter *domain.User, input ReportSubmission) (*SubmitResult, error) {
	if err := validateSubmission(input); err != nil {
		return nil, err
	}

	var (
		preCount       int
		promptFeedback bool
	)
	if !input.IsAnonymous {
		if reporter == nil {
			return nil, util.NewUnauthorized("identified report requires an authenticated user")
		}
		var err error
		preCount, err = s.todayCount(ctx, reporter.ID)
		if err != nil {
			return nil, err
		}
		if preCount >= s.dailyLimit {
			return nil, util.NewDailyLimitExceeded(preCount, s.dailyLimit)
		}

		firstReport, err := s.IsUserFirstReport(ctx, reporter.ID)
		if err != nil {
			return nil, err
		}
		hasFeedback, err := s.feedback.ExistsByUser(ctx, reporter.ID)
		if err != nil {
			return nil, err
		}
		promptFeedback = firstReport && !hasFeedback
	}

	report := buildReport(reporter, input)
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	actor := events.AnonymousActor()
	if report.Identified() {
		actor = events.UserActor(report.ReportedBy.UserID, report.ReportedBy.UserRole)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    actor,
		Payload: events.ReportCreatedPayload{
			IncidentType: report.IncidentType,
			Zone:         report.Zone,
			HasPhoto:     report.HasPhoto,
			TargetRole:   domain.RoleAdmin,
		},
	})
	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportProgress,
		ReportID: report.ID,
		Actor:    actor,
		Payload: events.ReportProgressPayload{
			Stage:      events.StageReceived,
			TargetRole: domain.RoleUser,
		},
	})
	s.scanZone(ctx, report, actor)

	result := &SubmitResult{
		Report:         report,
		PromptFeedback: promptFeedback,
	}
	if !input.IsAnonymous {
		result.TodayCount = preCount + 1
		result.LastReportToday = preCount == s.dailyLimit-1
	}
	return result, nil
}

// CanCreateReport reports whether the user still has quota left today.
// The anonymous path never calls this.
func (s *ReportService) CanCreateReport(ctx context.Context, userID string) (bool, error) {
	count, err := s.todayCount(ctx, userID)
	if err != nil {
		return false, err
	}
	return count < s.dailyLimit, nil
}

// GetUserTodayReportsCount counts the user's identified reports submitted on
// the current calendar day in the service timezone. The count is always
// recomputed from the clock, so the quota resets implicitly at day rollover.
func (s *ReportService) GetUserTodayReportsCount(ctx context.Context, userID string) (int, error) {
	return s.todayCount(ctx, userID)
}

// IsUserFirstReport is true while the user has no identified reports.
func (s *ReportService) IsUserFirstReport(ctx context.Context, userID string) (bool, error) {
	total, err := s.reports.CountByReporter(ctx, userID)
	if err != nil {
		return false, err
	}
	return total == 0, nil
}

// GetQuotaStatus summarizes the caller's position against the daily cap.
func (s *ReportService) GetQuotaStatus(ctx context.Context, userID string) (*QuotaStatus, error) {
	count, err := s.todayCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	remaining := s.dailyLimit - count
	if remaining < 0 {
		remaining = 0
	}
	return &QuotaStatus{
		TodayCount:        count,
		Limit:             s.dailyLimit,
		Remaining:         remaining,
		LastReportWarning: count == s.dailyLimit-1,
		Blocked:           count >= s.dailyLimit,
	}, nil
}

// ListReports returns reports scoped to the viewer's role: end-users see
// their own submissions, security staff see their assigned zones, and
// administrators see everything.
func (s *ReportService) ListReports(ctx context.Context, viewer *domain.User, filter repository.ReportFilter) ([]domain.Report, error) {
	if viewer == nil {
		return nil, util.NewUnauthorized("user required")
	}
	switch viewer.Role {
	case domain.RoleAdmin, domain.RoleSuperuser:
	case domain.RoleSecurity:
		filter.Zones = intersectZones(filter.Zones, viewer.AssignedZones)
		if len(filter.Zones) == 0 {
			return nil, nil
		}
	default:
		viewerID := viewer.ID
		filter.ReporterID = &viewerID
	}
	return s.reports.ListWithFilter(ctx, filter)
}

// GetReport fetches a single report enforcing the same scoping as ListReports.
func (s *ReportService) GetReport(ctx context.Context, viewer *domain.User, id string) (*domain.Report, error) {
	if viewer == nil {
		return nil, util.NewUnauthorized("user required")
	}
	report, err := s.reports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch viewer.Role {
	case domain.RoleAdmin, domain.RoleSuperuser:
	case domain.RoleSecurity:
		if !viewer.HasZone(report.Zone) {
			return nil, util.NewForbidden("zone not assigned")
		}
	default:
		if !report.Identified() || report.ReportedBy.UserID != viewer.ID {
			return nil, util.NewForbidden("access denied")
		}
	}
	return report, nil
}

func (s *ReportService) todayCount(ctx context.Context, userID string) (int, error) {
	from, to := clock.DayBounds(s.clk.Now(), s.clk.Location())
	return s.reports.CountByReporterBetween(ctx, userID, from, to)
}

func (s *ReportService) scanZone(ctx context.Context, report *domain.Report, actor events.Actor) {
	if s.danger == nil {
		return
	}
	assessment, err := s.danger.Evaluate(ctx, report.Zone)
	if err != nil || !assessment.Flagged {
		return
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventZoneDanger,
		ReportID: report.ID,
		Actor:    actor,
		Payload: events.ZoneDangerPayload{
			Zone:        assessment.Zone,
			Count:       assessment.Count,
			WindowHours: assessment.WindowHours,
		},
	})
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.clk.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func validateSubmission(input ReportSubmission) error {
	var missing []string
	if strings.TrimSpace(input.IncidentType) == "" {
		missing = append(missing, "incident_type")
	}
	if strings.TrimSpace(input.Zone) == "" {
		missing = append(missing, "zone")
	}
	if strings.TrimSpace(input.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return util.NewValidationError("required fields missing", map[string]any{"fields": missing})
	}
	return nil
}

func buildReport(reporter *domain.User, input ReportSubmission) *domain.Report {
	report := &domain.Report{
		IncidentType: strings.TrimSpace(input.IncidentType),
		Zone:         strings.TrimSpace(input.Zone),
		Description:  strings.TrimSpace(input.Description),
		IsAnonymous:  input.IsAnonymous,
		ContactInfo:  input.ContactInfo,
	}
	if input.PhotoName != nil && strings.TrimSpace(*input.PhotoName) != "" {
		name := strings.TrimSpace(*input.PhotoName)
		report.PhotoName = &name
		report.HasPhoto = true
	}
	if !input.IsAnonymous && reporter != nil {
		report.ReportedBy = &domain.Reporter{
			UserID:    reporter.ID,
			UserName:  reporter.Name,
			UserEmail: reporter.Email,
			UserRole:  reporter.Role,
		}
	}
	return report
}

func intersectZones(requested, assigned []string) []string {
	if len(requested) == 0 {
		return append([]string(nil), assigned...)
	}
	var result []string
	for _, zone := range requested {
		for _, have := range assigned {
			if zone == have {
				result = append(result, zone)
				break
			}
		}
	}
	return result
}
