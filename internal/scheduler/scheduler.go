// Package scheduler feeds periodic jobs, such as reaping idle hive sessions,
// into a worker pool.
package scheduler

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/worker"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Option tweaks a single scheduled job
type Option func(*entry)

// WithImmediateRun enqueues the job once before the first interval elapses
func WithImmediateRun() Option {
	return func(e *entry) { e.immediate = true }
}

// WithJitter delays the first run by a random amount up to max, so several
// instances started together do not reap at the same instant
func WithJitter(max time.Duration) Option {
	return func(e *entry) { e.jitter = max }
}

// Stats counts what happened to a job's runs
type Stats struct {
	Enqueued int64
	Skipped  int64
}

type entry struct {
	name      string
	interval  time.Duration
	job       worker.Job
	immediate bool
	jitter    time.Duration

	enqueued atomic.Int64
	skipped  atomic.Int64
}

// Scheduler runs each job on its own ticker until Stop
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu   sync.Mutex
	jobs map[string]*entry
}

func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
		jobs: make(map[string]*entry),
	}
}

// Schedule enqueues job every interval. A run is skipped when the pool
// queue is full.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job, opts ...Option) {
	e := &entry{name: name, interval: interval, job: job}
	for _, opt := range opts {
		opt(e)
	}

	s.mu.Lock()
	s.jobs[name] = e
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(e)
}

func (s *Scheduler) run(e *entry) {
	defer s.wg.Done()
	if e.jitter > 0 {
		delay := rand.N(e.jitter)
		select {
		case <-time.After(delay):
		case <-s.quit:
			return
		}
	}

	logger.Info(LogMsgJobScheduled, "job", e.name, "interval", e.interval, "immediate", e.immediate)
	if e.immediate {
		s.fire(e)
	}

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.fire(e)
		case <-s.quit:
			return
		}
	}
}

func (s *Scheduler) fire(e *entry) {
	if s.pool.TryEnqueue(e.job) {
		e.enqueued.Add(1)
		return
	}
	e.skipped.Add(1)
	logger.Warn(LogMsgJobSkipped, "job", e.name, "skipped_total", e.skipped.Load())
}

// Stats reports the counters of the named job
func (s *Scheduler) Stats(name string) (Stats, bool) {
	s.mu.Lock()
	e, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return Stats{}, false
	}
	return Stats{Enqueued: e.enqueued.Load(), Skipped: e.skipped.Load()}, true
}

// Stop stops all tickers and waits for them to exit. Jobs already handed to
// the pool are left to the pool.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
