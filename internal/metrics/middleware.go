package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

const eventStreamContentType = "text/event-stream"

// statusRecorder remembers the status and whether the response became an
// event stream. Streams are tracked on a gauge, not the latency histogram.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	wroteHead bool
	stream    bool
}

func (rec *statusRecorder) WriteHeader(code int) {
	if !rec.wroteHead {
		rec.status = code
		rec.wroteHead = true
		if strings.HasPrefix(rec.Header().Get("Content-Type"), eventStreamContentType) {
			rec.stream = true
			EventStreamsOpen.Inc()
		}
	}
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHead {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *statusRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// routeLabel is the matched chi pattern, e.g. /api/v1/hives/{hiveID}/sell,
// so hive IDs never become label values. Unmatched paths share one label.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// Middleware records request counts and latencies per route
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		HTTPRequestsInFlight.Inc()
		defer HTTPRequestsInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := routeLabel(r)
		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()

		if rec.stream {
			EventStreamsOpen.Dec()
			return
		}
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
