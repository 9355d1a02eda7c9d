package logger

const ContextKeyRequestID = "request_id"
const ContextKeyHiveID = "hive_id"

const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Attribute keys shared by every package that logs hive activity
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
	AttrKeyHiveID      = "hive_id"
	AttrKeyAction      = "action"
	AttrKeyResource    = "resource"
	AttrKeyOrigin      = "origin"
)
