package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/logger"
)

const (
	healthStatusOK          = "ok"
	healthStatusUnavailable = "unavailable"

	readinessTimeout = 2 * time.Second
)

// HealthResponse is the body of the liveness and readiness probes
type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message,omitempty"`
	Sessions *int   `json:"sessions,omitempty"`
}

// Pinger is a storage backend that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SessionCounter reports how many hive sessions are running
type SessionCounter interface {
	Count() int
}

// HandleHealthz answers as long as the process serves HTTP
// @Summary Liveness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /healthz [get]
func HandleHealthz() http.HandlerFunc {
	ok := HealthResponse{Status: healthStatusOK}
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, ok)
	}
}

// HandleReadyz reports ready while the snapshot store answers a ping within
// readinessTimeout. A ready response carries the live session count.
// @Summary Readiness check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readyz [get]
func HandleReadyz(store Pinger, sessions SessionCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		err := store.Ping(ctx)
		cancel()

		if err != nil {
			logger.FromContext(r.Context()).Error(LogMsgReadinessFailed, "error", err)
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  healthStatusUnavailable,
				Message: ErrMsgStoreUnreachable,
			})
			return
		}

		count := sessions.Count()
		respondJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK, Sessions: &count})
	}
}
