package event

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/pkg/messaging"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
)

// Emitter publishes domain events after a write has been committed. A failed
// publish is logged and counted; it never fails the write.
type Emitter struct {
	publisher messaging.Publisher
	metrics   *metrics.Metrics
}

func NewEmitter(publisher messaging.Publisher, m *metrics.Metrics) *Emitter {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	if m == nil {
		m = metrics.NewNop()
	}
	return &Emitter{publisher: publisher, metrics: m}
}

func (e *Emitter) Emit(ctx context.Context, eventType string, payload interface{}) {
	if err := e.publisher.Publish(ctx, messaging.NewEvent(eventType, payload)); err != nil {
		e.metrics.EventsFailed.WithLabelValues(eventType).Inc()
		log.Ctx(ctx).Warn().
			Err(err).
			Str("event_type", eventType).
			Msg("failed to publish event")
	}
}
