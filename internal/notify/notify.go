// Package notify delivers hive notifications to whoever is listening.
package notify

import (
	"context"
	"log/slog"
	"sync"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// Sink receives notifications. Delivery is fire-and-forget: a sink never
// reports failure back to the hive that raised the notification.
type Sink interface {
	Notify(ctx context.Context, n domain.Notification)
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, n domain.Notification)

// Notify calls f
func (f SinkFunc) Notify(ctx context.Context, n domain.Notification) {
	f(ctx, n)
}

// Discard drops every notification
var Discard Sink = SinkFunc(func(context.Context, domain.Notification) {})

// Multi fans a notification out to several sinks in order
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, n domain.Notification) {
		for _, s := range sinks {
			s.Notify(ctx, n)
		}
	})
}

// BusSink publishes notifications as NotificationRaised events
type BusSink struct {
	bus event.Publisher
}

// NewBusSink creates a sink that publishes to bus
func NewBusSink(bus event.Publisher) *BusSink {
	return &BusSink{bus: bus}
}

// Notify publishes n. Subscriber failures are logged and dropped.
func (s *BusSink) Notify(ctx context.Context, n domain.Notification) {
	if err := s.bus.Publish(ctx, event.NewNotificationEvent(n)); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed,
			logger.AttrKeyHiveID, n.HiveID,
			"title", n.Title,
			"error", err)
	}
}

// LogSink writes each notification to the structured log
type LogSink struct {
	level slog.Level
}

// NewLogSink creates a sink logging at the given level
func NewLogSink(level slog.Level) *LogSink {
	return &LogSink{level: level}
}

// Notify logs n
func (s *LogSink) Notify(ctx context.Context, n domain.Notification) {
	logger.FromContext(ctx).Log(ctx, s.level, LogMsgNotification,
		logger.AttrKeyHiveID, n.HiveID,
		"kind", n.Kind,
		"title", n.Title,
		"description", n.Description)
}

// Recorder keeps every notification it receives
type Recorder struct {
	mu    sync.Mutex
	notes []domain.Notification
}

// Notify records n
func (r *Recorder) Notify(_ context.Context, n domain.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, n)
}

// Notifications returns a copy of everything recorded so far
func (r *Recorder) Notifications() []domain.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notification(nil), r.notes...)
}

// Titles returns the recorded titles in order
func (r *Recorder) Titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	titles := make([]string, len(r.notes))
	for i, n := range r.notes {
		titles[i] = n.Title
	}
	return titles
}

// Reset forgets everything recorded
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = nil
}
