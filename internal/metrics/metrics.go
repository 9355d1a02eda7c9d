package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)

	EventStreamsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEventStreamsOpen,
			Help: HelpTextEventStreamsOpen,
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitedTotal,
			Help: HelpTextRateLimitedTotal,
		},
		[]string{LabelRoute},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Hive Metrics
var (
	StateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStateChanges,
			Help: HelpTextStateChanges,
		},
		[]string{LabelSource},
	)

	BeesBorn = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameBeesBorn,
			Help: HelpTextBeesBorn,
		},
	)

	Actions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActions,
			Help: HelpTextActions,
		},
		[]string{LabelAction, LabelOutcome},
	)

	Notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameNotifications,
			Help: HelpTextNotifications,
		},
		[]string{LabelKind, LabelVariant},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameActiveSessions,
			Help: HelpTextActiveSessions,
		},
	)

	SessionsOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSessionsOpened,
			Help: HelpTextSessionsOpened,
		},
		[]string{LabelOrigin},
	)

	SnapshotSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSnapshotSaves,
			Help: HelpTextSnapshotSaves,
		},
		[]string{LabelResult},
	)

	AdvisorRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAdvisorRequests,
			Help: HelpTextAdvisorRequests,
		},
		[]string{LabelAdvisor, LabelResult},
	)

	AdvisorDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameAdvisorDuration,
			Help:    HelpTextAdvisorDuration,
			Buckets: AdvisorLatencyBuckets,
		},
		[]string{LabelAdvisor},
	)
)

// ResultLabel maps an error to the success or error label value
func ResultLabel(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}
