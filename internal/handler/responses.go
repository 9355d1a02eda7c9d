package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/hive"
	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ActionResponse is returned by every hive action, accepted or not
type ActionResponse struct {
	Accepted      bool                  `json:"accepted"`
	State         domain.HiveState      `json:"state"`
	Notifications []domain.Notification `json:"notifications"`
}

func newActionResponse(res hive.Result) ActionResponse {
	notes := res.Notifications
	if notes == nil {
		notes = []domain.Notification{}
	}
	return ActionResponse{Accepted: res.Accepted, State: res.State, Notifications: notes}
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 1024))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing the header so a failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError converts a service error to an HTTP status and a message
// that is safe to show to the caller
func mapServiceError(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgUnknownError
	case errors.Is(err, domain.ErrInvalidHiveID):
		return http.StatusBadRequest, ErrMsgInvalidHiveIDError
	case errors.Is(err, domain.ErrUnsupportedResource):
		// the wrapped text carries the offending name and any suggestion
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrHiveNotFound):
		return http.StatusNotFound, ErrMsgHiveNotFoundError
	case errors.Is(err, domain.ErrSessionClosed):
		return http.StatusServiceUnavailable, ErrMsgUnavailableError
	case errors.Is(err, domain.ErrAdvisorUnavailable), errors.Is(err, domain.ErrAdvisorResponse):
		return http.StatusInternalServerError, ErrMsgAdvisorFailedError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}

// respondServiceError logs err and writes the mapped error response
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg := mapServiceError(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgServiceError, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgServiceError, "operation", op, "error", err)
	}
	respondError(w, status, msg)
}
