package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/sponsorship-portal/internal/config"
	"github.com/spec-kit/sponsorship-portal/internal/events"
)

// NotificationService handles emitting notifications for quote lifecycle
// events. Subscription wiring lives in the worker package.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// HandleQuoteSubmitted notifies the institution that a vendor submitted a quote.
func (n *NotificationService) HandleQuoteSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("QuoteSubmitted", zap.String("quote_id", event.QuoteID), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

// HandleQuoteStatusChanged notifies the vendor of an accept/reject decision.
func (n *NotificationService) HandleQuoteStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("QuoteStatusChanged", zap.String("quote_id", event.QuoteID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("quote_id", event.QuoteID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("quote_id", event.QuoteID),
		zap.String("event_type", string(event.Type)))
}
