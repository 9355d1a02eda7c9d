package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/config"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// SetupLogger initializes the application logger with file and stdout output.
// Old session logs beyond the retention count are removed first.
// Returns the log file handle (caller must close).
func SetupLogger(cfg *config.Config) (*os.File, error) {
	if err := os.MkdirAll(cfg.LogDir, DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgCreateLogsDir, err)
	}

	cleanupLogs(cfg.LogDir, LogFileRetentionCount)

	timestamp := time.Now().Format(LogFileTimestampFormat)
	logFileName := filepath.Join(cfg.LogDir, fmt.Sprintf(LogFileNamePattern, timestamp))

	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, LogFilePermission)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenLogFile, err)
	}

	logCfg := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, cfg.ServiceName, cfg.Version, cfg.Environment, cfg.LogSource)
	logger.InitLoggerWithWriter(logCfg, io.MultiWriter(os.Stdout, logFile))

	slog.Info(LogMsgLoggingInitialized, "level", logCfg.LogLevel(), "file", logFileName)
	slog.Info(LogMsgStartingService,
		"environment", cfg.Environment,
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"version", cfg.Version)

	slog.Debug(LogMsgConfigurationLoaded,
		"store_driver", cfg.StoreDriver,
		"tick_interval", cfg.TickInterval,
		"market_interval", cfg.MarketInterval,
		"max_offline_hours", cfg.MaxOfflineHours,
		"port", cfg.Port)

	return logFile, nil
}

// cleanupLogs deletes the oldest session logs so at most keep remain. Log
// names embed a sortable timestamp.
func cleanupLogs(logDir string, keep int) {
	logs, err := filepath.Glob(filepath.Join(logDir, "*"+LogFileExtension))
	if err != nil || len(logs) <= keep {
		return
	}

	slices.Sort(logs)
	for _, path := range logs[:len(logs)-keep] {
		if err := os.Remove(path); err != nil {
			slog.Warn(LogMsgFailedDeleteOldLog, "file", filepath.Base(path), "error", err)
		}
	}
}
