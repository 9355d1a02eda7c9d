package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/notify"
	"github.com/osse101/BuzzHive_Go/internal/snapshot"
)

var testStart = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testStart}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// memoryBlobs is an in-memory BlobStore that counts writes
type memoryBlobs struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
	err  error
}

func newMemoryBlobs() *memoryBlobs {
	return &memoryBlobs{data: make(map[string][]byte)}
}

func (m *memoryBlobs) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	blob, ok := m.data[key]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *memoryBlobs) Set(_ context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sets++
	m.data[key] = append([]byte(nil), blob...)
	return nil
}

func (m *memoryBlobs) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *memoryBlobs) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.data[key]
	return ok
}

// eventLog records every event published on it
type eventLog struct {
	mu     sync.Mutex
	events []event.Event
}

func (l *eventLog) Publish(_ context.Context, e event.Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
	return nil
}

func (l *eventLog) OfType(t event.Type) []event.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []event.Event
	for _, e := range l.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

type fixedMarket struct {
	prices domain.Prices
}

func (m fixedMarket) Fluctuate(s domain.HiveState) domain.HiveState {
	s = s.Clone()
	s.Prices = m.prices
	return s
}

type harness struct {
	clock  *testClock
	blobs  *memoryBlobs
	store  *snapshot.Store
	events *eventLog
	notes  *notify.Recorder
	opts   Options
}

// newHarness returns options with timers far enough apart that only
// explicit commands change state
func newHarness(t *testing.T) *harness {
	t.Helper()
	clock := newTestClock()
	blobs := newMemoryBlobs()
	tuning := hive.DefaultTuning()
	return &harness{
		clock:  clock,
		blobs:  blobs,
		store:  snapshot.NewStore(blobs, snapshot.NewCodec(tuning), 0, 0),
		events: &eventLog{},
		notes:  &notify.Recorder{},
		opts: Options{
			Tuning:         tuning,
			TickInterval:   time.Hour,
			MarketInterval: time.Hour,
			SaveInterval:   time.Hour,
			Now:            clock.Now,
			Rand:           func() float64 { return 0.99 },
		},
	}
}

func (h *harness) deps() Deps {
	return Deps{Saver: h.store, Market: fixedMarket{prices: domain.Prices{Honey: 20, Pollen: 8, Propolis: 25}}, Sink: h.notes, Events: h.events}
}

func (h *harness) open(t *testing.T, id string, state domain.HiveState) *Session {
	t.Helper()
	s := Open(context.Background(), id, state, h.deps(), h.opts)
	t.Cleanup(func() { _ = s.Stop(context.Background(), ReasonClosed) })
	return s
}

func (h *harness) saved(t *testing.T, id string) domain.HiveState {
	t.Helper()
	st, origin := h.store.Load(context.Background(), id, h.clock.Now())
	require.Equal(t, snapshot.OriginRestored, origin)
	return st
}
