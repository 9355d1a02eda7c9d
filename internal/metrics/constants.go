package metrics

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
	MetricNameEventStreamsOpen     = "hive_event_streams_open"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Hive metric names
const (
	MetricNameStateChanges     = "hive_state_changes_total"
	MetricNameBeesBorn         = "hive_bees_born_total"
	MetricNameActions          = "hive_actions_total"
	MetricNameNotifications    = "hive_notifications_total"
	MetricNameActiveSessions   = "hive_sessions_active"
	MetricNameSessionsOpened   = "hive_sessions_opened_total"
	MetricNameSnapshotSaves    = "hive_snapshot_saves_total"
	MetricNameAdvisorRequests  = "hive_advisor_requests_total"
	MetricNameAdvisorDuration  = "hive_advisor_request_duration_seconds"
	MetricNameRateLimitedTotal = "http_rate_limited_total"
)

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
	HelpTextEventStreamsOpen     = "Hive event streams currently held open by clients"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Hive metric help text
const (
	HelpTextStateChanges     = "Total number of hive state changes by source"
	HelpTextBeesBorn         = "Total number of worker bees born to queens"
	HelpTextActions          = "Total number of user actions by action and outcome"
	HelpTextNotifications    = "Total number of notifications raised by kind and variant"
	HelpTextActiveSessions   = "Current number of running hive sessions"
	HelpTextSessionsOpened   = "Total number of hive sessions opened by load origin"
	HelpTextSnapshotSaves    = "Total number of snapshot saves by result"
	HelpTextAdvisorRequests  = "Total number of tip advisor requests by result"
	HelpTextAdvisorDuration  = "Tip advisor latency in seconds"
	HelpTextRateLimitedTotal = "Total number of requests rejected by a rate limiter"
)

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelSource  = "source"
	LabelAction  = "action"
	LabelOutcome = "outcome"
	LabelKind    = "kind"
	LabelVariant = "variant"
	LabelOrigin  = "origin"
	LabelResult  = "result"
	LabelAdvisor = "advisor"
	LabelRoute   = "route"
)

// Label values
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	ResultSuccess   = "success"
	ResultError     = "error"
)

// HTTPLatencyBuckets span 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// AdvisorLatencyBuckets covers remote model calls, from 50ms to 30s
var AdvisorLatencyBuckets = []float64{.05, .1, .25, .5, 1, 2, 4, 8, 15, 30}

// Debug log messages
const (
	LogMsgUnexpectedPayload = "Event payload has unexpected shape"
	LogMsgMetricsRecorded   = "Metrics recorded for event"
)
