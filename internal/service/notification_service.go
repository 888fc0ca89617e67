package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/pinktech/kounty-api/internal/config"
	"github.com/pinktech/kounty-api/internal/events"
)

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserSignedUp, n.handleUserSignedUp)
	n.dispatcher.Subscribe(events.EventPasswordRecoveryRequested, n.handlePasswordRecoveryRequested)
	n.dispatcher.Subscribe(events.EventCredentialStatusChanged, n.handleCredentialStatusChanged)
}

func (n *NotificationService) handleUserSignedUp(ctx context.Context, event events.Event) error {
	n.logger.Info("UserSignedUp", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handlePasswordRecoveryRequested(ctx context.Context, event events.Event) error {
	n.logger.Info("PasswordRecoveryRequested", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleCredentialStatusChanged(ctx context.Context, event events.Event) error {
	n.logger.Info("CredentialStatusChanged", zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("email notification stub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("event", string(event.Type)),
	)
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("webhook notification stub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event", string(event.Type)),
	)
}
