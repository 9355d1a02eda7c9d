package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = ContextKeyRequestID
	hiveIDKey    ctxKey = ContextKeyHiveID
)

// InitLogger installs a stdout logger built from config as the slog default
func InitLogger(config Config) *slog.Logger {
	return InitLoggerWithWriter(config, os.Stdout)
}

// InitLoggerWithWriter installs a logger writing to w as the slog default
func InitLoggerWithWriter(config Config, w io.Writer) *slog.Logger {
	opts := config.handlerOptions()

	var handler slog.Handler
	if config.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	handler = handler.WithAttrs(config.BaseAttributes())

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

// Debug logs at debug level on the default logger
func Debug(msg string, args ...any) { slog.Default().Debug(msg, args...) }

// Info logs at info level on the default logger
func Info(msg string, args ...any) { slog.Default().Info(msg, args...) }

// Warn logs at warn level on the default logger
func Warn(msg string, args ...any) { slog.Default().Warn(msg, args...) }

// Error logs at error level on the default logger
func Error(msg string, args ...any) { slog.Default().Error(msg, args...) }

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// GetRequestID returns the request ID from ctx, or "" when absent
func GetRequestID(ctx context.Context) string {
	id, _ := RequestIDFromContext(ctx)
	return id
}

// WithHiveID tags ctx with the hive a request or session works on
func WithHiveID(ctx context.Context, hiveID string) context.Context {
	return context.WithValue(ctx, hiveIDKey, hiveID)
}

// HiveIDFromContext returns the hive ID set by WithHiveID, or ""
func HiveIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(hiveIDKey).(string)
	return id
}

// FromContext returns the default logger with the request_id and hive_id
// attributes found in ctx
func FromContext(ctx context.Context) *slog.Logger {
	var attrs []any
	if id, ok := RequestIDFromContext(ctx); ok {
		attrs = append(attrs, AttrKeyRequestID, id)
	}
	if id := HiveIDFromContext(ctx); id != "" {
		attrs = append(attrs, AttrKeyHiveID, id)
	}
	if len(attrs) == 0 {
		return slog.Default()
	}
	return slog.Default().With(attrs...)
}
