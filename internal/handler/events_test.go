package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/sse"
)

// readEvent reads one SSE frame
func readEvent(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	var lines []string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		if line == "\n" {
			return strings.Join(lines, "")
		}
		lines = append(lines, line)
	}
}

func TestHandleHiveEvents(t *testing.T) {
	m := newTestManager(t)
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	srv := httptest.NewServer(newTestRouter(m, nil, hub))
	t.Cleanup(srv.Close)

	t.Run("unknown hive is not streamed", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v1/hives/ghost/events")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, 0, hub.ClientCount())
	})

	t.Run("known hive opens a stream", func(t *testing.T) {
		id := createHive(t, m)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/hives/"+id+"/events", nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

		msg := readEvent(t, bufio.NewReader(resp.Body))
		assert.Contains(t, msg, "event: "+sse.EventTypeConnected)
		assert.Contains(t, msg, id)
	})
}

func TestHandleHiveEvents_WatchedHiveIsNotReaped(t *testing.T) {
	var clock atomic.Int64
	clock.Store(testNow.UnixNano())
	m := newTestManagerAt(t, func() time.Time { return time.Unix(0, clock.Load()) })
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)
	srv := httptest.NewServer(newTestRouter(m, nil, hub))
	t.Cleanup(srv.Close)

	id := createHive(t, m)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/hives/"+id+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	readEvent(t, bufio.NewReader(resp.Body))
	require.Equal(t, 1, m.Watchers(id))

	clock.Add(int64(20 * time.Minute))

	assert.Equal(t, 0, m.ReapIdle(context.Background(), 15*time.Minute))
	assert.Equal(t, 1, m.Count())

	cancel()
	require.Eventually(t, func() bool { return m.Watchers(id) == 0 }, time.Second, 5*time.Millisecond)

	// leaving the stream counts as activity
	assert.Equal(t, 0, m.ReapIdle(context.Background(), 15*time.Minute))
	clock.Add(int64(20 * time.Minute))
	assert.Equal(t, 1, m.ReapIdle(context.Background(), 15*time.Minute))
	assert.Equal(t, 0, m.Count())
}
