package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/BuzzHive_Go/internal/logger"
)

// decodeRequest reads a JSON body into T and validates it. When ok is false
// the error response has been written and the handler should return.
func decodeRequest[T any](w http.ResponseWriter, r *http.Request, action string) (req T, ok bool) {
	log := logger.FromContext(r.Context()).With(logger.AttrKeyAction, action)

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn(LogMsgDecodeFailed, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return req, false
	}

	if err := GetValidator().ValidateStruct(&req); err != nil {
		log.Debug(LogMsgValidationFailed, "error", err)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: FormatValidationError(err),
		})
		return req, false
	}

	log.Debug(LogMsgRequestDecoded)
	return req, true
}

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// HiveIDParam returns the hive ID path parameter
func HiveIDParam(r *http.Request) string {
	return chi.URLParam(r, URLParamHiveID)
}

// HiveContext tags the request context with the hive from the path so every
// log line below it carries hive_id
func HiveContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := HiveIDParam(r); id != "" {
			r = r.WithContext(logger.WithHiveID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}
