package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/utp-plus/report-service/internal/clock"
	"github.com/utp-plus/report-service/internal/domain"
	"github.com/utp-plus/report-service/internal/events"
	"github.com/utp-plus/report-service/pkg/util"
)

// SOSService turns a panic-button press into an emergency broadcast event.
// The alert is not persisted; delivery happens through the dispatcher and
// the Redis broadcast channel subscribed by the notification handlers.
type SOSService struct {
	dispatcher events.Dispatcher
	clk        clock.Clock
}

// SOSInput optionally narrows the alert to a zone.
type SOSInput struct {
	Zone *string
}

// NewSOSService constructs the service.
func NewSOSService(dispatcher events.Dispatcher, clk clock.Clock) *SOSService {
	return &SOSService{dispatcher: dispatcher, clk: clk}
}

// Trigger broadcasts an emergency alert on behalf of the caller.
func (s *SOSService) Trigger(ctx context.Context, user *domain.User, input SOSInput) (*domain.SOSAlert, error) {
	if user == nil {
		return nil, util.NewUnauthorized("user required")
	}

	alert := &domain.SOSAlert{
		ID:     uuid.NewString(),
		Campus: user.Campus,
		Zone:   input.Zone,
		TriggeredBy: domain.Reporter{
			UserID:    user.ID,
			UserName:  user.Name,
			UserEmail: user.Email,
			UserRole:  user.Role,
		},
		CreatedAt: s.clk.Now(),
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventSOSTriggered,
			Actor:     events.UserActor(user.ID, user.Role),
			Timestamp: alert.CreatedAt,
			Payload: events.SOSPayload{
				Campus: alert.Campus,
				Zone:   alert.Zone,
			},
		})
	}
	return alert, nil
}
