package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/BuzzHive_Go/internal/event"
	"github.com/osse101/BuzzHive_Go/internal/scheduler"
	"github.com/osse101/BuzzHive_Go/internal/server"
	"github.com/osse101/BuzzHive_Go/internal/sse"
	"github.com/osse101/BuzzHive_Go/internal/worker"
)

// SessionFlusher stops every live hive session after saving its state
type SessionFlusher interface {
	Shutdown(ctx context.Context) error
}

// ShutdownComponents holds all components that need graceful shutdown.
// Nil fields are skipped.
type ShutdownComponents struct {
	Server             *server.Server
	Scheduler          *scheduler.Scheduler
	Pool               *worker.Pool
	Sessions           SessionFlusher
	Hub                *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Storage            *Storage
}

// GracefulShutdown stops the application in dependency order:
// 1. SSE hub (ends open event streams, which would hold the server open)
// 2. HTTP server (stop accepting new requests)
// 3. Background jobs (no reaper runs against a closing manager)
// 4. Hive sessions (final snapshot of every live hive)
// 5. Discord publisher (flush pending notifications)
// 6. Snapshot store, once nothing can write to it
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := c.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}
	if c.Pool != nil {
		c.Pool.Stop()
	}

	if c.Sessions != nil {
		slog.Info(LogMsgShuttingDownSessions)
		if err := c.Sessions.Shutdown(ctx); err != nil {
			slog.Error(LogMsgSessionFlushFailed, "error", err)
		}
	}

	if c.ResilientPublisher != nil {
		slog.Info(LogMsgShuttingDownEventPublisher)
		if err := c.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if c.Storage != nil && c.Storage.Close != nil {
		c.Storage.Close()
	}

	slog.Info(LogMsgServerStopped)
}
