package server

import (
	"time"

	"golang.org/x/time/rate"
)

// HTTP error messages for middleware responses
const (
	ErrMsgUnauthorized    = "Unauthorized"
	ErrMsgTooManyRequests = "Too Many Requests"
)

const SecurityAlertFailedAuth = "SECURITY ALERT: Multiple failed authentication attempts"

// Log messages for server lifecycle and request handling
const (
	LogMsgServerStarting   = "Server starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgRequestHeaders   = "Request headers"
	LogMsgAuthFailed       = "Authentication failed"
	LogMsgRateLimited      = "Request rate limited"
)

// HTTP header names
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderAuthorization  = "Authorization"
	HeaderRequestID      = "X-Request-ID"
	HeaderForwardedFor   = "X-Forwarded-For"
	HeaderContentType    = "X-Content-Type-Options"
	HeaderFrameOptions   = "X-Frame-Options"
	HeaderXSSProtection  = "X-XSS-Protection"
	HeaderReferrerPolicy = "Referrer-Policy"
	HeaderRetryAfter     = "Retry-After"
)

// Security header values
const (
	HeaderValueNoSniff              = "nosniff"
	HeaderValueSameOrigin           = "SAMEORIGIN"
	HeaderValueXSSBlock             = "1; mode=block"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// PublicPaths are path prefixes that bypass authentication
var PublicPaths = []string{
	"/swagger/",
	"/healthz",
	"/readyz",
	"/version",
	"/metrics",
}

// Rate limiting
const (
	// GlobalRateLimit allows roughly 1000 requests per 5 minutes per client
	GlobalRateLimit = rate.Limit(1000.0 / 300.0)
	GlobalRateBurst = 100

	// FailedAuthAlertThreshold is how many failures in a window raise an alert
	FailedAuthAlertThreshold = 5
	FailedAuthWindow         = 5 * time.Minute

	limiterCacheSize = 10000
	limiterIdleTTL   = 10 * time.Minute
)

// Route labels for rate limit metrics
const (
	RouteLabelGlobal = "global"
	RouteLabelTips   = "tips"
)

// MaxRequestBodyBytes caps request bodies
const MaxRequestBodyBytes = 1 << 20

// RedactedValue replaces secret header values in logs
const RedactedValue = "[REDACTED]"
