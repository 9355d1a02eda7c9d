package metrics

import (
	"context"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// EventMetricsCollector subscribes to hive events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to every hive event type
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range event.Types {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.NotificationRaised:
		n, err := event.DecodePayload[domain.Notification](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		Notifications.WithLabelValues(string(n.Kind), string(n.Variant)).Inc()

	case event.StateChanged:
		p, err := event.DecodePayload[event.StatePayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		StateChanges.WithLabelValues(p.Source).Inc()
		if p.BeesBorn > 0 {
			BeesBorn.Add(float64(p.BeesBorn))
		}

	case event.ActionApplied:
		p, err := event.DecodePayload[event.ActionPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		outcome := OutcomeRejected
		if p.Accepted {
			outcome = OutcomeAccepted
		}
		Actions.WithLabelValues(p.Action, outcome).Inc()

	case event.SessionOpened:
		p, err := event.DecodePayload[event.SessionPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
			return nil
		}
		SessionsOpened.WithLabelValues(p.Origin).Inc()
		ActiveSessions.Inc()

	case event.SessionClosed:
		ActiveSessions.Dec()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
