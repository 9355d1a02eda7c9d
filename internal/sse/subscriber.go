package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{hub: hub, bus: bus}
}

// Subscribe forwards every hive-scoped bus event a stream client can filter on
func (s *Subscriber) Subscribe() {
	routes := []struct {
		from    event.Type
		handler event.Handler
	}{
		{event.NotificationRaised, forward(s.hub, EventTypeNotification, func(n domain.Notification) any { return n })},
		{event.StateChanged, forward(s.hub, EventTypeState, func(p event.StatePayloadV1) any { return p.State })},
		{event.MarketUpdated, forward(s.hub, EventTypeMarket, func(p event.MarketPayloadV1) any { return p.Prices })},
		{event.SessionClosed, forward(s.hub, EventTypeSessionClosed, func(p event.SessionPayloadV1) any { return p })},
	}

	types := make([]string, 0, len(routes))
	for _, r := range routes {
		s.bus.Subscribe(r.from, r.handler)
		types = append(types, string(r.from))
	}
	slog.Info(LogMsgSubscribed, "types", types)
}

// forward decodes the bus payload as T and broadcasts what project returns
// to the event's hive under sseType. Undecodable payloads are logged and
// dropped.
func forward[T any](hub *Hub, sseType string, project func(T) any) event.Handler {
	return func(_ context.Context, evt event.Event) error {
		payload, err := event.DecodePayload[T](evt.Payload)
		if err != nil {
			slog.Warn(LogMsgInvalidPayload, "type", evt.Type, "error", err)
			return nil
		}

		hub.Broadcast(evt.HiveID(), sseType, project(payload))
		slog.Debug(LogMsgEventBroadcast, "event_type", sseType, logger.AttrKeyHiveID, evt.HiveID())
		return nil
	}
}
