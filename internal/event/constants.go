package event

import "time"

// EventSchemaVersion is stamped on every event; bump it when a payload changes shape
const EventSchemaVersion = "1.0"

// MetadataKeyHiveID carries the hive an event belongs to
const MetadataKeyHiveID = "hive_id"

const (
	RetryQueueBufferSize = 1000
	// Attempt n waits RetryInitialDelaySeconds * 2^(n-1), capped at MaxRetryDelay
	RetryInitialDelaySeconds = 2
	RetryMaxAttempts         = 5
	MaxRetryDelay            = 5 * time.Minute
)

const DeadLetterFilePermissions = 0o644

const (
	LogMsgEventPublishFailed    = "Event publish failed, queuing for retry"
	LogMsgRetryQueueFull        = "Retry queue full, event dropped to dead-letter"
	LogMsgDeadLetterWriteFailed = "Failed to write to dead letter"
	LogMsgEventRetryExhausted   = "Event retry exhausted, writing to dead-letter"
	LogMsgEventRetryFailed      = "Event retry failed, scheduling next attempt"
	LogMsgEventRetrySucceeded   = "Event retry succeeded"
	LogMsgQueueDrainedShutdown  = "Drained retry queue during shutdown"
	LogMsgShutdownTimeout       = "Resilient publisher shutdown timed out"
	LogMsgEventDeadLettered     = "Event dead-lettered"

	ErrMsgHandlersFailed = "event handlers failed"
)

// CalculateRetryDelay is the backoff before retry attempt n (1-based)
func CalculateRetryDelay(baseDelay time.Duration, attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if attempt > 31 {
		return MaxRetryDelay
	}
	return min(baseDelay*time.Duration(1<<(attempt-1)), MaxRetryDelay)
}
