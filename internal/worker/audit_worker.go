package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-api/internal/events"
	"github.com/spec-kit/storefront-api/internal/observability"
)

// StartAuditWorker subscribes an audit logger to every event type.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) {
	if dispatcher == nil {
		return
	}
	audit := logger.Named("audit")
	for _, eventType := range events.AllEventTypes {
		dispatcher.Subscribe(eventType, func(_ context.Context, e events.Event) error {
			metrics.RecordAuthEvent(string(e.Type))
			audit.Info("event",
				zap.String("event_id", e.ID),
				zap.String("type", string(e.Type)),
				zap.String("user_id", e.Actor.UserID),
				zap.String("role", string(e.Actor.UserRole)),
				zap.Time("at", e.Timestamp),
				zap.Any("payload", e.Payload),
			)
			return nil
		})
	}
}
