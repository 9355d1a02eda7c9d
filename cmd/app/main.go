// @title BuzzHive API
// @version 1.0
// @description Idle beehive game server: hive sessions, actions, market and AI tips.
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/aitips"
	"github.com/osse101/BuzzHive_Go/internal/bootstrap"
	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/market"
	"github.com/osse101/BuzzHive_Go/internal/notify"
	"github.com/osse101/BuzzHive_Go/internal/scheduler"
	"github.com/osse101/BuzzHive_Go/internal/server"
	"github.com/osse101/BuzzHive_Go/internal/session"
	"github.com/osse101/BuzzHive_Go/internal/snapshot"
	"github.com/osse101/BuzzHive_Go/internal/sse"
	"github.com/osse101/BuzzHive_Go/internal/worker"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := config.ValidateEnv(); err != nil {
		slog.Warn("Environment validation", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	for _, w := range cfg.Warnings() {
		slog.Warn("Configuration warning", "detail", w)
	}

	ctx := context.Background()

	storage, err := bootstrap.OpenStorage(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open snapshot store", "error", err)
		os.Exit(1)
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Failed to initialize event system", "error", err)
		os.Exit(1)
	}

	hub := sse.NewHub()
	hub.Start()

	bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus: events.Bus,
		Hub:      hub,
		Discord:  events.Mirror(),
	})

	tuning := hive.DefaultTuning()
	tuning.MaxOfflineHours = cfg.MaxOfflineHours

	store := snapshot.NewStore(storage.Blobs, snapshot.NewCodec(tuning), cfg.SnapshotCacheSize, cfg.SnapshotCacheTTL)
	manager := session.NewManager(store, session.Deps{
		Market: market.New(market.DefaultRanges()),
		Sink:   notify.Multi(notify.NewBusSink(events.Bus), notify.NewLogSink(slog.LevelDebug)),
		Events: events.Bus,
	}, session.Options{
		Tuning:         tuning,
		TickInterval:   cfg.TickInterval,
		MarketInterval: cfg.MarketInterval,
	})

	pool := worker.NewPool(bootstrap.WorkerCount, bootstrap.WorkerQueueSize)
	pool.Start()
	sched := scheduler.New(pool)
	sched.Schedule(bootstrap.ReapJobName, max(cfg.SessionIdleTimeout/2, bootstrap.MinReapInterval), manager.ReapJob(cfg.SessionIdleTimeout),
		scheduler.WithJitter(bootstrap.MinReapInterval))

	advisor := aitips.New(aitips.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
	}, cfg.AITimeout, aitips.NewLocalAdvisor(tuning))

	srv := server.NewServer(server.Config{
		Port:           cfg.Port,
		APIKey:         cfg.APIKey,
		TrustedProxies: cfg.TrustedProxies,
		TipsRateLimit:  cfg.TipsRateLimit,
		TipsRateBurst:  cfg.TipsRateBurst,
	}, server.Deps{
		Hives:   manager,
		Advisor: advisor,
		Store:   storage.Pinger,
		Hub:     hub,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:             srv,
		Scheduler:          sched,
		Pool:               pool,
		Sessions:           manager,
		Hub:                hub,
		ResilientPublisher: events.Discord,
		Storage:            storage,
	})
}
