package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/alert"
	"github.com/Behnamfe76/directory-console/internal/events"
	"github.com/Behnamfe76/directory-console/internal/store"
)

// NotificationService turns store events into toasts. Only failed loads are
// shown here; mutation failures are reported by the screen that issued them
// with entity-specific wording.
type NotificationService struct {
	dispatcher events.Dispatcher
	alerts     *alert.Store
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, alerts *alert.Store, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		dispatcher: dispatcher,
		alerts:     alerts,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventRequestFailed, n.handleRequestFailed)
	n.dispatcher.Subscribe(events.EventEntityLoaded, n.handleEntityLoaded)
}

func (n *NotificationService) handleRequestFailed(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RequestFailedPayload)
	if !ok {
		return nil
	}
	n.logger.Info("RequestFailed",
		zap.String("resource", event.Resource),
		zap.String("command", event.Command),
		zap.String("message", payload.Message))
	if event.Command != string(store.CommandLoad) || n.alerts == nil {
		return nil
	}
	n.alerts.ShowError(payload.Message)
	return nil
}

func (n *NotificationService) handleEntityLoaded(_ context.Context, event events.Event) error {
	n.logger.Debug("EntityLoaded", zap.String("resource", event.Resource), zap.Any("payload", event.Payload))
	return nil
}
