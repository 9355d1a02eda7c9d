package domain

import "errors"

// Error texts are exported so tests can match on them with assert.Contains
const (
	ErrMsgHiveNotFound        = "hive not found"
	ErrMsgInvalidHiveID       = "invalid hive id"
	ErrMsgUnsupportedResource = "unsupported resource"
	ErrMsgSnapshotNotFound    = "snapshot not found"
	ErrMsgSnapshotCorrupt     = "snapshot is corrupt"
	ErrMsgSessionClosed       = "session is closed"
	ErrMsgAdvisorUnavailable  = "tip advisor unavailable"
	ErrMsgAdvisorResponse     = "tip advisor returned a malformed response"
	ErrMsgDatabaseError       = "database error"
	ErrMsgInvalidInput        = "invalid input"
)

// Sentinel errors shared by every layer. Wrap them with
// fmt.Errorf("%w: ...", ...) and test with errors.Is; the handler layer maps
// them to HTTP statuses.
var (
	ErrHiveNotFound        = errors.New(ErrMsgHiveNotFound)
	ErrInvalidHiveID       = errors.New(ErrMsgInvalidHiveID)
	ErrUnsupportedResource = errors.New(ErrMsgUnsupportedResource)

	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)
	ErrSnapshotCorrupt  = errors.New(ErrMsgSnapshotCorrupt)

	ErrSessionClosed = errors.New(ErrMsgSessionClosed)

	ErrAdvisorUnavailable = errors.New(ErrMsgAdvisorUnavailable)
	ErrAdvisorResponse    = errors.New(ErrMsgAdvisorResponse)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
)
