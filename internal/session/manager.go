package session

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BuzzHive_Go/internal/concurrency"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/snapshot"
	"github.com/osse101/BuzzHive_Go/internal/worker"
)

var hiveIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateHiveID rejects IDs that cannot be used as storage keys
func ValidateHiveID(id string) error {
	if id == "" || len(id) > MaxHiveIDLength || !hiveIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidHiveID, id)
	}
	return nil
}

// Store loads and saves hive snapshots
type Store interface {
	Saver
	Load(ctx context.Context, hiveID string, now time.Time) (domain.HiveState, snapshot.Origin)
}

// Manager keeps one running session per active hive
type Manager struct {
	store Store
	deps  Deps
	opts  Options
	locks *concurrency.KeyedMutex

	mu       sync.RWMutex
	sessions map[string]*Session
	watchers map[string]int // open event streams per hive
	closed   bool
}

// NewManager creates a manager. deps.Saver is replaced by store.
func NewManager(store Store, deps Deps, opts Options) *Manager {
	deps.Saver = store
	return &Manager{
		store:    store,
		deps:     deps,
		opts:     opts.withDefaults(),
		locks:    concurrency.NewKeyedMutex(),
		sessions: make(map[string]*Session),
		watchers: make(map[string]int),
	}
}

// Tuning returns the balance the sessions run with
func (m *Manager) Tuning() hive.Tuning {
	return m.opts.Tuning
}

// Count returns the number of running sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) lookup(hiveID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[hiveID]
}

// Create starts a brand new hive with a generated ID and saves it at once
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	return m.open(ctx, uuid.NewString(), true)
}

// Get returns the running session for hiveID, loading and catching it up if
// needed. A hive that was never saved yields domain.ErrHiveNotFound.
func (m *Manager) Get(ctx context.Context, hiveID string) (*Session, error) {
	if err := ValidateHiveID(hiveID); err != nil {
		return nil, err
	}
	return m.open(ctx, hiveID, false)
}

// GetOrCreate is Get, except that an unknown hive is started fresh under hiveID
func (m *Manager) GetOrCreate(ctx context.Context, hiveID string) (*Session, error) {
	if err := ValidateHiveID(hiveID); err != nil {
		return nil, err
	}
	return m.open(ctx, hiveID, true)
}

func (m *Manager) open(ctx context.Context, hiveID string, create bool) (*Session, error) {
	if s := m.lookup(hiveID); s != nil {
		return s, nil
	}

	unlock := m.locks.Lock(hiveID)
	defer unlock()

	if s := m.lookup(hiveID); s != nil {
		return s, nil
	}
	if m.isClosed() {
		return nil, domain.ErrSessionClosed
	}

	state, origin := m.store.Load(ctx, hiveID, m.opts.Now())
	if origin == snapshot.OriginNew {
		if !create {
			return nil, fmt.Errorf("%w: %s", domain.ErrHiveNotFound, hiveID)
		}
		if err := m.store.Save(ctx, hiveID, state); err != nil {
			return nil, err
		}
	}

	s := Open(ctx, hiveID, state, m.deps, m.opts)

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		_ = s.Stop(ctx, ReasonShutdown)
		return nil, domain.ErrSessionClosed
	}
	m.sessions[hiveID] = s
	m.mu.Unlock()

	s.publish(ctx, event.NewSessionOpenedEvent(hiveID, string(origin)))
	logger.FromContext(ctx).Info(LogMsgSessionOpened, logger.AttrKeyHiveID, hiveID, "origin", origin)
	return s, nil
}

func (m *Manager) isClosed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.closed
}

// Apply runs an action against hiveID. A session reaped between lookup and
// dispatch is reopened once.
func (m *Manager) Apply(ctx context.Context, hiveID string, act func(context.Context, *Session) (hive.Result, error)) (hive.Result, error) {
	for attempt := 0; ; attempt++ {
		s, err := m.Get(ctx, hiveID)
		if err != nil {
			return hive.Result{}, err
		}
		res, err := act(ctx, s)
		if errors.Is(err, domain.ErrSessionClosed) && attempt == 0 {
			continue
		}
		return res, err
	}
}

// Snapshot returns a copy of the current state of hiveID
func (m *Manager) Snapshot(ctx context.Context, hiveID string) (domain.HiveState, error) {
	res, err := m.Apply(ctx, hiveID, func(ctx context.Context, s *Session) (hive.Result, error) {
		st, err := s.Snapshot(ctx)
		return hive.Result{State: st}, err
	})
	return res.State, err
}

// Close stops the session of hiveID, if running, and flushes its state
func (m *Manager) Close(ctx context.Context, hiveID, reason string) error {
	unlock := m.locks.Lock(hiveID)
	defer unlock()

	m.mu.Lock()
	s, ok := m.sessions[hiveID]
	delete(m.sessions, hiveID)
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return s.Stop(ctx, reason)
}

// ReapIdle stops every session idle for longer than maxIdle and returns how
// many were stopped
func (m *Manager) ReapIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.opts.Now().Add(-maxIdle)

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if m.watchers[id] == 0 && s.LastActive().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	reaped := 0
	for _, id := range idle {
		closed, err := m.closeIfIdle(ctx, id, cutoff)
		if err != nil {
			logger.FromContext(ctx).Error(LogMsgStopFailed, logger.AttrKeyHiveID, id, "error", err)
		}
		if closed {
			reaped++
		}
	}
	if reaped > 0 {
		logger.FromContext(ctx).Info(LogMsgReapedIdle, "count", reaped, "remaining", m.Count())
	}
	return reaped
}

// closeIfIdle re-checks activity and watchers under the hive lock so a
// session that just served a request or gained a stream survives
func (m *Manager) closeIfIdle(ctx context.Context, hiveID string, cutoff time.Time) (bool, error) {
	unlock := m.locks.Lock(hiveID)
	defer unlock()

	m.mu.Lock()
	s, ok := m.sessions[hiveID]
	if !ok || m.watchers[hiveID] > 0 || !s.LastActive().Before(cutoff) {
		m.mu.Unlock()
		return false, nil
	}
	delete(m.sessions, hiveID)
	m.mu.Unlock()

	return true, s.Stop(ctx, ReasonIdle)
}

// Watch loads hiveID and keeps its session out of idle reaping until
// release is called. Release counts as activity, so the idle timeout
// restarts when the last watcher leaves.
func (m *Manager) Watch(ctx context.Context, hiveID string) (release func(), err error) {
	// counted before the load so a reap racing the load cannot win
	m.mu.Lock()
	m.watchers[hiveID]++
	m.mu.Unlock()

	var once sync.Once
	release = func() {
		once.Do(func() {
			m.mu.Lock()
			if m.watchers[hiveID]--; m.watchers[hiveID] <= 0 {
				delete(m.watchers, hiveID)
			}
			s := m.sessions[hiveID]
			m.mu.Unlock()
			if s != nil {
				s.touch()
			}
		})
	}

	if _, err := m.Get(ctx, hiveID); err != nil {
		release()
		return nil, err
	}
	return release, nil
}

// Watchers is the number of open streams holding hiveID
func (m *Manager) Watchers(hiveID string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.watchers[hiveID]
}

// ReapJob wraps ReapIdle as a worker job for the scheduler
func (m *Manager) ReapJob(maxIdle time.Duration) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		m.ReapIdle(ctx, maxIdle)
		return nil
	})
}

// Shutdown stops every session, flushing each one. New sessions are refused.
func (m *Manager) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShutdownStarted, "count", m.Count())

	m.mu.Lock()
	m.closed = true
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := m.Close(ctx, id, ReasonShutdown); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
