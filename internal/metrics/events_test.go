package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()

	tests := []struct {
		name    string
		publish event.Event
		counter func() float64
		delta   float64
	}{
		{
			name:    "notification by kind",
			publish: event.NewNotificationEvent(domain.Notification{Kind: domain.NotificationUpgrade, Variant: domain.VariantDestructive}),
			counter: func() float64 {
				return testutil.ToFloat64(Notifications.WithLabelValues(string(domain.NotificationUpgrade), string(domain.VariantDestructive)))
			},
			delta: 1,
		},
		{
			name:    "state change by source",
			publish: event.NewStateEvent("h1", event.SourceMarket, domain.HiveState{}, 0),
			counter: func() float64 { return testutil.ToFloat64(StateChanges.WithLabelValues(event.SourceMarket)) },
			delta:   1,
		},
		{
			name:    "births are summed",
			publish: event.NewStateEvent("h1", event.SourceCatchUp, domain.HiveState{}, 3),
			counter: func() float64 { return testutil.ToFloat64(BeesBorn) },
			delta:   3,
		},
		{
			name:    "rejected action",
			publish: event.NewActionEvent("h1", "upgrade", false),
			counter: func() float64 { return testutil.ToFloat64(Actions.WithLabelValues("upgrade", OutcomeRejected)) },
			delta:   1,
		},
		{
			name:    "session opened",
			publish: event.NewSessionOpenedEvent("h1", "restored"),
			counter: func() float64 { return testutil.ToFloat64(SessionsOpened.WithLabelValues("restored")) },
			delta:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.counter()

			require.NoError(t, bus.Publish(ctx, tt.publish))

			assert.InDelta(t, tt.delta, tt.counter()-before, 1e-9)
		})
	}
}

func TestEventMetricsCollector_SessionGauge(t *testing.T) {
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)
	ctx := context.Background()
	before := testutil.ToFloat64(ActiveSessions)

	require.NoError(t, bus.Publish(ctx, event.NewSessionOpenedEvent("h1", "new")))
	assert.InDelta(t, before+1, testutil.ToFloat64(ActiveSessions), 1e-9)

	require.NoError(t, bus.Publish(ctx, event.NewSessionClosedEvent("h1", "idle")))
	assert.InDelta(t, before, testutil.ToFloat64(ActiveSessions), 1e-9)
}
