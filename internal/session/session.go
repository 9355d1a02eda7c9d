// Package session runs one actor goroutine per active hive. The actor is the
// only writer of the hive's state: catch-up, the one second tick, the market
// tick and every user action are applied in its loop, one at a time.
package session

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/notify"
	"github.com/osse101/BuzzHive_Go/internal/utils"
)

// Reducer computes the next state of a hive. It must be pure.
type Reducer func(s domain.HiveState) hive.Result

// Saver persists hive state
type Saver interface {
	Save(ctx context.Context, hiveID string, state domain.HiveState) error
}

// Market redraws the prices of a hive
type Market interface {
	Fluctuate(s domain.HiveState) domain.HiveState
}

// Options tunes a session. Zero durations fall back to the defaults.
type Options struct {
	Tuning         hive.Tuning
	TickInterval   time.Duration
	MarketInterval time.Duration
	SaveInterval   time.Duration
	SaveTimeout    time.Duration
	Now            func() time.Time
	Rand           func() float64
}

// DefaultOptions returns the standard game cadence
func DefaultOptions() Options {
	return Options{
		Tuning:         hive.DefaultTuning(),
		TickInterval:   DefaultTickInterval,
		MarketInterval: DefaultMarketInterval,
		SaveInterval:   DefaultSaveInterval,
		SaveTimeout:    DefaultSaveTimeout,
		Now:            time.Now,
		Rand:           utils.RandomFloat,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Tuning.InitialHiveLevel == 0 {
		o.Tuning = d.Tuning
	}
	if o.TickInterval <= 0 {
		o.TickInterval = d.TickInterval
	}
	if o.MarketInterval <= 0 {
		o.MarketInterval = d.MarketInterval
	}
	if o.SaveInterval < 0 {
		o.SaveInterval = 0
	}
	if o.SaveTimeout <= 0 {
		o.SaveTimeout = d.SaveTimeout
	}
	if o.Now == nil {
		o.Now = d.Now
	}
	if o.Rand == nil {
		o.Rand = d.Rand
	}
	return o
}

// Deps are the collaborators a session reports to
type Deps struct {
	Saver  Saver
	Market Market
	Sink   notify.Sink
	Events event.Publisher
}

type discardSaver struct{}

func (discardSaver) Save(context.Context, string, domain.HiveState) error { return nil }

type command struct {
	action string
	reduce Reducer // nil reads the state
	reply  chan hive.Result
}

// Session owns the state of one hive
type Session struct {
	id   string
	opts Options
	deps Deps
	log  *slog.Logger

	state domain.HiveState // owned by run

	commands chan command
	pending  chan domain.HiveState
	done     chan struct{}
	stopOnce sync.Once
	stopErr  error
	wg       sync.WaitGroup

	lastActive atomic.Int64
}

// Open credits the offline time of state, then starts the actor.
// Catch-up notifications are delivered before Open returns.
func Open(ctx context.Context, hiveID string, state domain.HiveState, deps Deps, opts Options) *Session {
	opts = opts.withDefaults()
	if deps.Sink == nil {
		deps.Sink = notify.Discard
	}
	if deps.Saver == nil {
		deps.Saver = discardSaver{}
	}

	s := &Session{
		id:       hiveID,
		opts:     opts,
		deps:     deps,
		log:      logger.FromContext(logger.WithHiveID(context.Background(), hiveID)),
		state:    state.Clone(),
		commands: make(chan command),
		pending:  make(chan domain.HiveState, 1),
		done:     make(chan struct{}),
	}
	s.touch()

	res := opts.Tuning.CatchUp(s.state, opts.Now())
	s.commit(ctx, event.SourceCatchUp, res)

	s.wg.Add(2)
	go s.run()
	go s.saveLoop()
	return s
}

// ID returns the hive ID
func (s *Session) ID() string {
	return s.id
}

// LastActive returns when the session last served a caller
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// Done is closed once the session starts stopping
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) touch() {
	s.lastActive.Store(s.opts.Now().UnixNano())
}

// Dispatch applies reduce in the actor loop and returns its stamped result.
// The returned state is a copy.
func (s *Session) Dispatch(ctx context.Context, action string, reduce Reducer) (hive.Result, error) {
	cmd := command{action: action, reduce: reduce, reply: make(chan hive.Result, 1)}

	select {
	case s.commands <- cmd:
	case <-s.done:
		return hive.Result{}, domain.ErrSessionClosed
	case <-ctx.Done():
		return hive.Result{}, ctx.Err()
	}
	s.touch()

	select {
	case res := <-cmd.reply:
		return res, nil
	case <-ctx.Done():
		return hive.Result{}, ctx.Err()
	}
}

// Snapshot returns a copy of the current state
func (s *Session) Snapshot(ctx context.Context) (domain.HiveState, error) {
	res, err := s.Dispatch(ctx, "", nil)
	return res.State, err
}

// CollectBonus grants the manual collection bonus
func (s *Session) CollectBonus(ctx context.Context) (hive.Result, error) {
	return s.Dispatch(ctx, ActionBonus, func(st domain.HiveState) hive.Result {
		return s.opts.Tuning.CollectBonus(st, s.opts.Rand)
	})
}

// UpgradeHive raises the hive level if affordable
func (s *Session) UpgradeHive(ctx context.Context) (hive.Result, error) {
	return s.Dispatch(ctx, ActionUpgrade, s.opts.Tuning.UpgradeHive)
}

// AddWorkerBees buys up to n worker bees
func (s *Session) AddWorkerBees(ctx context.Context, n int) (hive.Result, error) {
	return s.Dispatch(ctx, ActionWorkers, func(st domain.HiveState) hive.Result {
		return s.opts.Tuning.AddWorkerBees(st, n)
	})
}

// Sell sells amount of kind at the current price
func (s *Session) Sell(ctx context.Context, kind domain.ResourceKind, amount float64) (hive.Result, error) {
	return s.Dispatch(ctx, ActionSell, func(st domain.HiveState) hive.Result {
		return s.opts.Tuning.SellResource(st, kind, amount)
	})
}

// Buy buys amount of kind at the current price
func (s *Session) Buy(ctx context.Context, kind domain.ResourceKind, amount float64) (hive.Result, error) {
	return s.Dispatch(ctx, ActionBuy, func(st domain.HiveState) hive.Result {
		return s.opts.Tuning.BuyResource(st, kind, amount)
	})
}

// Stop tears down both timers and the save pipeline, then writes the final
// state synchronously. Calls after the first return nil.
func (s *Session) Stop(ctx context.Context, reason string) error {
	first := false
	s.stopOnce.Do(func() {
		first = true
		close(s.done)
		s.wg.Wait()

		s.stopErr = s.deps.Saver.Save(ctx, s.id, s.state)
		if s.stopErr != nil {
			s.log.Error(LogMsgSaveFailed, "error", s.stopErr, "final", true)
		}
		s.publish(ctx, event.NewSessionClosedEvent(s.id, reason))
		s.log.Info(LogMsgSessionStopped, "reason", reason)
	})
	if !first {
		return nil
	}
	return s.stopErr
}

func (s *Session) run() {
	defer s.wg.Done()

	ctx := logger.WithHiveID(logger.WithRequestID(context.Background(), "session-"+s.id), s.id)
	tick := time.NewTicker(s.opts.TickInterval)
	defer tick.Stop()
	market := time.NewTicker(s.opts.MarketInterval)
	defer market.Stop()

	for {
		select {
		case <-s.done:
			return

		case <-tick.C:
			s.commit(ctx, event.SourceTick, s.opts.Tuning.Tick(s.state, s.opts.Now()))

		case <-market.C:
			if s.deps.Market == nil {
				continue
			}
			s.state = s.deps.Market.Fluctuate(s.state)
			s.scheduleSave()
			s.publish(ctx, event.NewMarketEvent(s.id, s.state.Prices))
			s.publish(ctx, event.NewStateEvent(s.id, event.SourceMarket, s.state, 0))

		case cmd := <-s.commands:
			if cmd.reduce == nil {
				cmd.reply <- hive.Result{State: s.state.Clone(), Accepted: true}
				continue
			}
			res := s.commit(ctx, event.SourceAction, cmd.reduce(s.state))
			s.publish(ctx, event.NewActionEvent(s.id, cmd.action, res.Accepted))
			cmd.reply <- res
		}
	}
}

// commit adopts an accepted result and delivers its notifications.
// It runs on the actor goroutine, or in Open before the actor starts.
func (s *Session) commit(ctx context.Context, source string, res hive.Result) hive.Result {
	now := s.opts.Now()
	for i := range res.Notifications {
		res.Notifications[i].ID = uuid.NewString()
		res.Notifications[i].HiveID = s.id
		res.Notifications[i].CreatedAt = now
	}

	if res.Accepted {
		s.state = res.State
		s.scheduleSave()
		s.publish(ctx, event.NewStateEvent(s.id, source, s.state, res.Accrual.BeesBorn))
	}
	for _, n := range res.Notifications {
		s.deps.Sink.Notify(ctx, n)
	}

	res.State = s.state.Clone()
	return res
}

func (s *Session) publish(ctx context.Context, e event.Event) {
	if s.deps.Events == nil {
		return
	}
	if err := s.deps.Events.Publish(ctx, e); err != nil {
		s.log.Warn(LogMsgPublishFailed, "type", e.Type, "error", err)
	}
}

// scheduleSave replaces any pending snapshot with the current state
func (s *Session) scheduleSave() {
	select {
	case <-s.pending:
	default:
	}
	select {
	case s.pending <- s.state.Clone():
	default:
	}
}

// saveLoop writes at most one snapshot per save interval. Only the latest
// state is kept while waiting.
func (s *Session) saveLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return
		case st := <-s.pending:
			s.save(st)
		}

		if s.opts.SaveInterval == 0 {
			continue
		}
		wait := time.NewTimer(s.opts.SaveInterval)
		select {
		case <-s.done:
			wait.Stop()
			return
		case <-wait.C:
		}
	}
}

func (s *Session) save(st domain.HiveState) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opts.SaveTimeout)
	defer cancel()
	if err := s.deps.Saver.Save(ctx, s.id, st); err != nil {
		s.log.Error(LogMsgSaveFailed, "error", err)
	}
}
