package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/database/sqlite"
	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/scheduler"
	"github.com/osse101/BuzzHive_Go/internal/sse"
	"github.com/osse101/BuzzHive_Go/internal/worker"
)

func TestCleanupLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 12; i++ {
		name := fmt.Sprintf(LogFileNamePattern, fmt.Sprintf("2024-01-%02d_00-00-00", i))
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, DeadLetterFileName), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, LogFileRetentionCount+1)

	assert.NoFileExists(t, filepath.Join(dir, "session_2024-01-03_00-00-00.log"))
	assert.FileExists(t, filepath.Join(dir, "session_2024-01-04_00-00-00.log"))
	assert.FileExists(t, filepath.Join(dir, DeadLetterFileName))
}

func TestCleanupLogs_UnderLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session_a.log"), nil, 0o600))

	cleanupLogs(dir, LogFileRetentionCount)

	assert.FileExists(t, filepath.Join(dir, "session_a.log"))
}

func TestSetupLogger_CreatesSessionFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	dir := filepath.Join(t.TempDir(), "logs")
	cfg := &config.Config{LogDir: dir, LogLevel: "debug", LogFormat: "text", ServiceName: "buzzhive"}

	f, err := SetupLogger(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })

	slog.Info("hello from test")

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from test")
	assert.Contains(t, string(data), LogMsgLoggingInitialized)
}

func TestInitializeEventSystem_WithoutWebhook(t *testing.T) {
	es, err := InitializeEventSystem(&config.Config{})
	require.NoError(t, err)

	assert.NotNil(t, es.Bus)
	assert.Nil(t, es.Discord)
	assert.Nil(t, es.Mirror())
}

func TestInitializeEventSystem_WithWebhook(t *testing.T) {
	cfg := &config.Config{
		LogDir:              filepath.Join(t.TempDir(), "logs"),
		DiscordWebhookID:    "123",
		DiscordWebhookToken: "token",
	}

	es, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, es.Discord)
	t.Cleanup(func() { _ = es.Discord.Shutdown(context.Background()) })

	assert.NotNil(t, es.Mirror())
	assert.Equal(t, filepath.Join(cfg.LogDir, DeadLetterFileName), DeadLetterPath(cfg))
	assert.FileExists(t, DeadLetterPath(cfg))
}

func TestOpenStorage_SQLite(t *testing.T) {
	ctx := context.Background()
	st, err := OpenStorage(ctx, &config.Config{
		StoreDriver: config.StoreDriverSQLite,
		SQLitePath:  sqlite.MemoryPath,
	})
	require.NoError(t, err)
	t.Cleanup(st.Close)

	require.NoError(t, st.Pinger.Ping(ctx))

	_, err = st.Blobs.Get(ctx, "hive:missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)

	require.NoError(t, st.Blobs.Set(ctx, "hive:abc", []byte("blob")))
	got, err := st.Blobs.Get(ctx, "hive:abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("blob"), got)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	_, err := OpenStorage(context.Background(), &config.Config{StoreDriver: "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgUnknownStoreDriver)
}

type recordingFlusher struct {
	calls int
}

func (r *recordingFlusher) Shutdown(context.Context) error {
	r.calls++
	return nil
}

func TestGracefulShutdown(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Start()
	sched := scheduler.New(pool)
	hub := sse.NewHub()
	hub.Start()
	sessions := &recordingFlusher{}
	closed := false

	GracefulShutdown(context.Background(), ShutdownComponents{
		Scheduler: sched,
		Pool:      pool,
		Sessions:  sessions,
		Hub:       hub,
		Storage:   &Storage{Close: func() { closed = true }},
	})

	assert.Equal(t, 1, sessions.calls)
	assert.True(t, closed)
	assert.Zero(t, hub.ClientCount())
}

func TestGracefulShutdown_EmptyComponents(t *testing.T) {
	assert.NotPanics(t, func() {
		GracefulShutdown(context.Background(), ShutdownComponents{})
	})
}
