package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/Behnamfe76/directory-console/internal/alert"
	"github.com/Behnamfe76/directory-console/internal/events"
	"github.com/Behnamfe76/directory-console/internal/service"
)

// StartWorkspaceWorkers registers the event handlers every workspace runs:
// load-failure toasts and the mutation audit log.
func StartWorkspaceWorkers(dispatcher events.Dispatcher, alerts *alert.Store, logger *zap.Logger) {
	if dispatcher == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	service.NewNotificationService(dispatcher, alerts, logger).RegisterHandlers()

	audit := &auditLog{logger: logger.Named("audit")}
	dispatcher.Subscribe(events.EventEntityCreated, audit.record)
	dispatcher.Subscribe(events.EventEntityUpdated, audit.record)
	dispatcher.Subscribe(events.EventEntityDeleted, audit.record)
}

// auditLog writes one line per applied mutation.
type auditLog struct {
	logger *zap.Logger
}

func (a *auditLog) record(_ context.Context, event events.Event) error {
	a.logger.Info("record changed",
		zap.String("event", string(event.Type)),
		zap.String("resource", event.Resource),
		zap.String("entity_id", event.EntityID),
		zap.Time("at", event.Timestamp))
	return nil
}
