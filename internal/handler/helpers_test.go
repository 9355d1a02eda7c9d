package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/session"
	"github.com/osse101/BuzzHive_Go/internal/snapshot"
	"github.com/osse101/BuzzHive_Go/internal/sse"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type memoryBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.data[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return blob, nil
}

func (m *memoryBlobs) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

// newTestManager returns a manager on a frozen clock whose timers never fire
// during a test
func newTestManager(t *testing.T) *session.Manager {
	t.Helper()
	return newTestManagerAt(t, func() time.Time { return testNow })
}

func newTestManagerAt(t *testing.T, now func() time.Time) *session.Manager {
	t.Helper()
	tuning := hive.DefaultTuning()
	store := snapshot.NewStore(&memoryBlobs{data: make(map[string][]byte)}, snapshot.NewCodec(tuning), 0, 0)
	m := session.NewManager(store, session.Deps{}, session.Options{
		Tuning:         tuning,
		TickInterval:   time.Hour,
		MarketInterval: time.Hour,
		SaveInterval:   time.Hour,
		Now:            now,
		Rand:           func() float64 { return 0.99 },
	})
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })
	return m
}

func createHive(t *testing.T, m *session.Manager) string {
	t.Helper()
	s, err := m.Create(context.Background())
	require.NoError(t, err)
	return s.ID()
}

func newTestRouter(hives HiveService, advisor aitips.Advisor, hub *sse.Hub) http.Handler {
	hh := NewHiveHandler(hives)
	th := NewTipsHandler(hives, advisor)

	r := chi.NewRouter()
	r.Post("/api/v1/tips", th.HandleOptimize)
	r.Post("/api/v1/hives", hh.HandleCreate)
	r.Route("/api/v1/hives/{hiveID}", func(r chi.Router) {
		r.Get("/", hh.HandleGet)
		r.Post("/bonus", hh.HandleBonus)
		r.Post("/upgrade", hh.HandleUpgrade)
		r.Post("/workers", hh.HandleWorkers)
		r.Post("/sell", hh.HandleSell)
		r.Post("/buy", hh.HandleBuy)
		r.Post("/tips", th.HandleHiveTips)
		if hub != nil {
			r.Get("/events", HandleHiveEvents(hives, hub))
		}
	})
	return r
}

func serve(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}
