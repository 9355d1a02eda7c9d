package database

import "time"

// Connection pool
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2

	// ConnectTimeout bounds the initial ping
	ConnectTimeout = 10 * time.Second
)

// Migration directories inside the embedded filesystems
const (
	postgresMigrationsDir = "postgres"
	sqliteMigrationsDir   = "sqlite"
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToCreateMigrator  = "failed to create migration provider"
	ErrMsgFailedToApplyMigrations = "failed to apply migrations"
	ErrMsgMigrationsDirMissing    = "migrations directory missing"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
	LogMsgAppliedMigration                = "Applied migration"
	LogMsgSchemaUpToDate                  = "Database schema up to date"
)
