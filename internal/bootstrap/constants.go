package bootstrap

import "time"

const (
	DirPermission     = 0755
	LogFilePermission = 0666
)

// Session logs are named by start time so a plain sort orders them
const (
	LogFileTimestampFormat = "2006-01-02_15-04-05"
	LogFileNamePattern     = "session_%s.log"
	LogFileExtension       = ".log"
	LogFileRetentionCount  = 9

	DeadLetterFileName = "event_deadletter.jsonl"
)

const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingService     = "Starting BuzzHive"
	LogMsgConfigurationLoaded = "Configuration loaded"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"

	ErrMsgCreateLogsDir = "failed to create logs directory"
	ErrMsgOpenLogFile   = "failed to open log file"
)

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgSSESubscriberRegistered    = "SSE subscriber registered"

	ErrMsgDiscordWebhook     = "failed to create discord webhook"
	ErrMsgResilientPublisher = "failed to create resilient publisher"
)

const (
	LogMsgStoreOpened        = "Snapshot store opened"
	ErrMsgUnknownStoreDriver = "unknown store driver"
	ErrMsgFailedMigrate      = "failed to migrate database"
)

// Background job pool
const (
	WorkerCount     = 2
	WorkerQueueSize = 16

	ReapJobName = "reap_idle_sessions"
	// MinReapInterval keeps very short idle timeouts from spinning the reaper
	MinReapInterval = time.Second
)

const (
	LogMsgShuttingDownServer         = "Shutting down server"
	LogMsgShuttingDownSessions       = "Flushing hive sessions"
	LogMsgShuttingDownEventPublisher = "Draining notification mirror"
	LogMsgServerStopped              = "Server stopped"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgSessionFlushFailed         = "Session flush failed"
	LogMsgResilientPublisherFailed   = "Notification mirror shutdown failed"
)
