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

// FeedbackService manages the one-time post-first-report rating.
type FeedbackService struct {
	feedback   repository.FeedbackRepository
	reports    repository.ReportRepository
	dispatcher events.Dispatcher
	clk        clock.Clock
}

// FeedbackDependencies bundles collaborators for the feedback service.
type FeedbackDependencies struct {
	FeedbackRepo repository.FeedbackRepository
	ReportRepo   repository.ReportRepository
	Dispatcher   events.Dispatcher
	Clock        clock.Clock
}

// FeedbackInput describes the rating form payload.
type FeedbackInput struct {
	Rating   int
	Comment  string
	ReportID *string
}

// NewFeedbackService constructs the service.
func NewFeedbackService(deps FeedbackDependencies) *FeedbackService {
	return &FeedbackService{
		feedback:   deps.FeedbackRepo,
		reports:    deps.ReportRepo,
		dispatcher: deps.Dispatcher,
		clk:        deps.Clock,
	}
}

// SubmitFeedback validates and stores the user's rating. A second submission
// by the same user is rejected with a conflict; feedback is append-once.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, user *domain.User, input FeedbackInput) (*domain.Feedback, error) {
	if user == nil {
		return nil, util.NewUnauthorized("user required")
	}
	if input.Rating < domain.MinRating || input.Rating > domain.MaxRating {
		return nil, util.NewValidationError("rating must be between 1 and 5", map[string]any{"rating": input.Rating})
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, util.NewValidationError("comment required", nil)
	}

	exists, err := s.feedback.ExistsByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.NewConflict("feedback already submitted", nil)
	}

	reportCount, err := s.reports.CountByReporter(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	feedback := &domain.Feedback{
		UserID:        user.ID,
		UserName:      user.Name,
		UserEmail:     user.Email,
		Rating:        input.Rating,
		Comment:       strings.TrimSpace(input.Comment),
		ReportID:      input.ReportID,
		IsFirstReport: reportCount == 1,
	}
	if err := s.feedback.Create(ctx, feedback); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:  events.EventFeedbackSubmitted,
		Actor: events.UserActor(user.ID, user.Role),
		Payload: events.FeedbackSubmittedPayload{
			Rating:        feedback.Rating,
			IsFirstReport: feedback.IsFirstReport,
		},
	})
	return feedback, nil
}

// HasUserProvidedFeedback gates the feedback prompt in the workflow.
func (s *FeedbackService) HasUserProvidedFeedback(ctx context.Context, userID string) (bool, error) {
	return s.feedback.ExistsByUser(ctx, userID)
}

// GetUserFeedback returns the user's own feedback records.
func (s *FeedbackService) GetUserFeedback(ctx context.Context, userID string) ([]domain.Feedback, error) {
	return s.feedback.ListByUser(ctx, userID)
}

// GetAllFeedbacks returns every feedback record, newest first. Admin only;
// the route guard enforces the role.
func (s *FeedbackService) GetAllFeedbacks(ctx context.Context) ([]domain.Feedback, error) {
	return s.feedback.ListAll(ctx)
}

func (s *FeedbackService) publishEvent(ctx context.Context, event events.Event) {
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
