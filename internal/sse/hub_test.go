package sse

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/testing/leaktest"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func receive(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		return e
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func assertNoEvent(t *testing.T, c *Client) {
	t.Helper()
	select {
	case e := <-c.EventChannel:
		t.Fatalf("unexpected event %s for hive %s", e.Type, e.HiveID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_RoutesByHive(t *testing.T) {
	hub := startHub(t)
	a := hub.Register("hive-a", nil)
	b := hub.Register("hive-b", nil)
	waitForClients(t, hub, 2)

	hub.Broadcast("hive-a", EventTypeNotification, "for a")

	got := receive(t, a)
	assert.Equal(t, "hive-a", got.HiveID)
	assert.Equal(t, "for a", got.Payload)
	assertNoEvent(t, b)
}

func TestHub_GlobalEventReachesEveryone(t *testing.T) {
	hub := startHub(t)
	a := hub.Register("hive-a", nil)
	b := hub.Register("hive-b", nil)
	waitForClients(t, hub, 2)

	hub.Broadcast("", EventTypeMarket, nil)

	assert.Equal(t, EventTypeMarket, receive(t, a).Type)
	assert.Equal(t, EventTypeMarket, receive(t, b).Type)
}

func TestHub_TypeFilter(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("h1", []string{EventTypeNotification})
	waitForClients(t, hub, 1)

	hub.Broadcast("h1", EventTypeState, nil)
	hub.Broadcast("h1", EventTypeNotification, nil)

	assert.Equal(t, EventTypeNotification, receive(t, c).Type)
	assertNoEvent(t, c)
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("h1", nil)
	waitForClients(t, hub, 1)

	hub.Unregister(c.ID)
	waitForClients(t, hub, 0)

	_, ok := <-c.EventChannel
	assert.False(t, ok)
}

func TestFormatSSEMessage(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "1", Type: EventTypeNotification, HiveID: "h1", Payload: map[string]string{"title": "New Bee!"}})

	require.NoError(t, err)
	text := string(msg)
	assert.True(t, strings.HasPrefix(text, "id: 1\nevent: notification\ndata: {"))
	assert.Contains(t, text, `"hive_id":"h1"`)
	assert.True(t, strings.HasSuffix(text, "\n\n"))
}

func TestSubscriber_BridgesBusToHive(t *testing.T) {
	hub := startHub(t)
	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()
	c := hub.Register("h1", nil)
	other := hub.Register("h2", nil)
	waitForClients(t, hub, 2)

	n := domain.Notification{HiveID: "h1", Title: "New Bee!"}
	require.NoError(t, bus.Publish(context.Background(), event.NewNotificationEvent(n)))

	got := receive(t, c)
	assert.Equal(t, EventTypeNotification, got.Type)
	assert.Equal(t, n, got.Payload)
	assertNoEvent(t, other)
}

func TestHandler_StreamsHiveEvents(t *testing.T) {
	hub := startHub(t)
	srv := httptest.NewServer(Handler(hub, func(r *http.Request) string { return r.URL.Query().Get("hive") }))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?hive=h1&types=notification", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		var lines []string
		for {
			line, err := reader.ReadString('\n')
			require.NoError(t, err)
			if line == "\n" {
				return strings.Join(lines, "")
			}
			lines = append(lines, line)
		}
	}

	assert.Contains(t, readEvent(), "event: connected")
	waitForClients(t, hub, 1)

	hub.Broadcast("h2", EventTypeNotification, "not mine")
	hub.Broadcast("h1", EventTypeNotification, "mine")

	msg := readEvent()
	assert.Contains(t, msg, "event: notification")
	assert.Contains(t, msg, `"payload":"mine"`)
}

func TestHandler_MissingHiveID(t *testing.T) {
	hub := startHub(t)
	rec := httptest.NewRecorder()

	Handler(hub, func(*http.Request) string { return "" })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHub_StopClosesClients(t *testing.T) {
	checker := leaktest.New(t)

	hub := NewHub()
	hub.Start()
	client := hub.Register("h1", nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.Stop()

	_, open := <-client.EventChannel
	assert.False(t, open)
	checker.Check(0)
}

func TestFormatSSEMessage_Retry(t *testing.T) {
	msg, err := FormatSSEMessage(Event{ID: "c1", Type: EventTypeConnected, Retry: ClientRetryInterval})

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(msg), "id: c1\nretry: 3000\nevent: connected\n"))
	assert.NotContains(t, string(msg), `"Retry"`)
}

func TestParseTypes(t *testing.T) {
	tests := []struct {
		name    string
		param   string
		want    []string
		wantErr string
	}{
		{"empty means all", "", nil, ""},
		{"trims and skips blanks", " state, ,market ", []string{"state", "market"}, ""},
		{"unknown type", "state,keepalive", nil, `unknown event type "keepalive"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTypes(tt.param)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHandler_RejectsUnknownFilter(t *testing.T) {
	hub := startHub(t)
	rec := httptest.NewRecorder()

	Handler(hub, func(*http.Request) string { return "h1" })(rec, httptest.NewRequest(http.MethodGet, "/?types=gossip", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gossip")
	assert.Zero(t, hub.ClientCount())
}

func TestHub_WatchersPerHive(t *testing.T) {
	hub := startHub(t)
	a1 := hub.Register("hive-a", nil)
	hub.Register("hive-a", nil)
	hub.Register("hive-b", nil)
	waitForClients(t, hub, 3)

	assert.Equal(t, 2, hub.Watchers("hive-a"))
	assert.Equal(t, 1, hub.Watchers("hive-b"))
	assert.Zero(t, hub.Watchers("hive-c"))

	hub.Unregister(a1.ID)
	waitForClients(t, hub, 2)
	assert.Equal(t, 1, hub.Watchers("hive-a"))
}

func TestHub_SlowClientDropsOverflow(t *testing.T) {
	hub := startHub(t)
	c := hub.Register("h1", nil)
	waitForClients(t, hub, 1)

	for i := 0; i < ClientEventBuffer+5; i++ {
		hub.Broadcast("h1", EventTypeState, i)
	}

	require.Eventually(t, func() bool { return c.Dropped() == 5 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, receive(t, c).Payload, "the oldest events are kept")
}

func TestHub_RegisterAfterStop(t *testing.T) {
	hub := NewHub()
	hub.Start()
	hub.Stop()

	c := hub.Register("h1", nil)

	_, open := <-c.EventChannel
	assert.False(t, open)
	assert.NotPanics(t, hub.Stop)
}
