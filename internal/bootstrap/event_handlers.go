package bootstrap

import (
	"log/slog"

	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/metrics"
	"github.com/osse101/BuzzHive_Go/internal/notify"
	"github.com/osse101/BuzzHive_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	Hub      *sse.Hub
	// Discord receives hive notifications; nil disables the relay
	Discord event.Publisher
}

// RegisterEventHandlers sets up all event subscribers:
// - SSE subscriber (pushes hive events to connected clients)
// - Metrics collector (counts events by type)
// - Discord relay (mirrors notifications when configured)
func RegisterEventHandlers(deps EventHandlerDependencies) {
	sse.NewSubscriber(deps.Hub, deps.EventBus).Subscribe()
	slog.Info(LogMsgSSESubscriberRegistered)

	metrics.NewEventMetricsCollector().Register(deps.EventBus)
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.Discord != nil {
		notify.NewRelay(deps.Discord).Subscribe(deps.EventBus)
	}
}
