package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/trattoria-labs/restaurant-service/internal/events"
)

// StartAuditWorker subscribes a structured audit logger to every change event.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")
	events.SubscribeAll(dispatcher, events.AllTypes, func(_ context.Context, e events.Event) error {
		audit.Info("document changed",
			zap.String("event_id", e.ID),
			zap.String("event_type", string(e.Type)),
			zap.String("resource_id", e.ResourceID),
			zap.String("actor_id", e.Actor.UserID),
			zap.String("actor", e.Actor.Username),
			zap.Strings("changed", e.Changed),
			zap.Time("at", e.Timestamp),
		)
		return nil
	})
}
