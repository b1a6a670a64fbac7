package service

import (
	"context"
	"encoding/json"
	"strings"

	"go.uber.org/zap"

	"github.com/utp-plus/report-service/internal/config"
	"github.com/utp-plus/report-service/internal/events"
	"github.com/utp-plus/report-service/internal/persistence"
)

// NotificationService handles emitting notifications for domain events.
// Email and webhook delivery remain stubs; emergency alerts additionally go
// out on the Redis broadcast channel when Redis is reachable.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
	broadcast  *persistence.Redis
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig, broadcast *persistence.Redis) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
		broadcast:  broadcast,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventReportCreated, n.handleReportCreated)
	n.dispatcher.Subscribe(events.EventReportProgress, n.handleReportProgress)
	n.dispatcher.Subscribe(events.EventZoneDanger, n.handleZoneDanger)
	n.dispatcher.Subscribe(events.EventSOSTriggered, n.handleSOSTriggered)
	n.dispatcher.Subscribe(events.EventFeedbackSubmitted, n.handleFeedbackSubmitted)
}

func (n *NotificationService) handleReportCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportCreated", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleReportProgress(ctx context.Context, event events.Event) error {
	n.logger.Info("ReportProgress", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) handleZoneDanger(ctx context.Context, event events.Event) error {
	n.logger.Warn("ZoneDanger", zap.String("report_id", event.ReportID), zap.Any("payload", event.Payload))
	n.publishBroadcast(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleSOSTriggered(ctx context.Context, event events.Event) error {
	n.logger.Warn("SOSTriggered", zap.Any("payload", event.Payload))
	n.publishBroadcast(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleFeedbackSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("FeedbackSubmitted", zap.Any("payload", event.Payload))
	return nil
}

func (n *NotificationService) publishBroadcast(ctx context.Context, event events.Event) {
	if n.broadcast == nil || strings.TrimSpace(n.cfg.BroadcastChannel) == "" {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("marshal broadcast event", zap.Error(err))
		return
	}
	if err := n.broadcast.Publish(ctx, n.cfg.BroadcastChannel, payload); err != nil {
		n.logger.Warn("broadcast publish failed",
			zap.String("channel", n.cfg.BroadcastChannel),
			zap.Error(err))
	}
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("report_id", event.ReportID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("report_id", event.ReportID),
		zap.String("event_type", string(event.Type)))
}
