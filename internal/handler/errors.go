package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgStoreUnreachable      = "snapshot store unreachable"

	// Hive operation error messages
	ErrMsgCreateHiveFailed = "Failed to create hive"
	ErrMsgGetHiveFailed    = "Failed to load hive"
	ErrMsgActionFailed     = "Failed to apply action"
	ErrMsgTipsFailed       = "Failed to generate tips"
)

// User-facing error messages derived from domain errors
const (
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgAuthFailedError     = "Authentication failed. Please check your API key."
	ErrMsgTooManyRequests     = "Too many requests. Please try again later."
	ErrMsgUnavailableError    = "Server is temporarily unavailable. Please try again later."

	ErrMsgHiveNotFoundError      = "Hive not found"
	ErrMsgInvalidHiveIDError     = "Hive ID may only contain letters, digits, '-' and '_'"
	ErrMsgUnsupportedResourceErr = "Unknown resource"
	ErrMsgAdvisorFailedError     = "Failed to get AI optimization tips."
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgValidationFailed = "Request failed validation"
	LogMsgServiceError     = "Request failed"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgHiveCreated      = "Hive created"
	LogMsgActionApplied    = "Hive action applied"
	LogMsgTipsGenerated    = "Optimization tips generated"
	LogMsgEventStreamStart = "Opening hive event stream"
)

// URL parameters
const (
	URLParamHiveID = "hiveID"
)
