package session

import "time"

// Default timings
const (
	DefaultTickInterval   = time.Second
	DefaultMarketInterval = 30 * time.Second
	DefaultSaveInterval   = 5 * time.Second
	DefaultSaveTimeout    = 5 * time.Second
	DefaultIdleTimeout    = 15 * time.Minute
)

// Action names, used in action events and metrics
const (
	ActionBonus   = "bonus"
	ActionUpgrade = "upgrade"
	ActionWorkers = "workers"
	ActionSell    = "sell"
	ActionBuy     = "buy"
)

// Reasons a session stops
const (
	ReasonIdle     = "idle"
	ReasonShutdown = "shutdown"
	ReasonClosed   = "closed"
)

// MaxHiveIDLength bounds caller-supplied hive IDs
const MaxHiveIDLength = 64

// Log messages
const (
	LogMsgSessionOpened   = "Hive session opened"
	LogMsgSessionStopped  = "Hive session stopped"
	LogMsgSaveFailed      = "Failed to save hive snapshot"
	LogMsgPublishFailed   = "Failed to publish hive event"
	LogMsgReapedIdle      = "Reaped idle hive sessions"
	LogMsgShutdownStarted = "Stopping all hive sessions"
	LogMsgStopFailed      = "Failed to stop hive session"
)
