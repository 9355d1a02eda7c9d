// Package sqlite stores hive snapshots in a local SQLite file, for running
// the service without a Postgres server.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/osse101/BuzzHive_Go/internal/database"
	"github.com/osse101/BuzzHive_Go/internal/domain"
)

const (
	driverName = "sqlite"

	// MemoryPath opens a private in-memory database
	MemoryPath = ":memory:"

	pragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	queryGetSnapshot    = `SELECT blob FROM hive_snapshots WHERE snapshot_key = ?`
	queryUpsertSnapshot = `
		INSERT INTO hive_snapshots (snapshot_key, blob, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (snapshot_key)
		DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at
	`
)

// SnapshotRepository stores hive snapshot blobs in SQLite
type SnapshotRepository struct {
	db *sql.DB
}

// Open opens or creates the database at path and migrates it
func Open(ctx context.Context, path string) (*SnapshotRepository, error) {
	dsn := path
	if path != MemoryPath {
		dsn = "file:" + path + pragmas
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps :memory: databases alive
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToPingDatabase, err)
	}
	if err := database.MigrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SnapshotRepository{db: db}, nil
}

// Get returns the blob stored under key
func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, queryGetSnapshot, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: failed to get snapshot: %w", domain.ErrDatabaseError, err)
	}
	return blob, nil
}

// Set stores blob under key, replacing any previous value
func (r *SnapshotRepository) Set(ctx context.Context, key string, blob []byte) error {
	_, err := r.db.ExecContext(ctx, queryUpsertSnapshot, key, blob, time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("%w: failed to save snapshot: %w", domain.ErrDatabaseError, err)
	}
	return nil
}

// Ping checks the database is reachable
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Close closes the database. It satisfies database.Pool.
func (r *SnapshotRepository) Close() {
	if err := r.db.Close(); err != nil {
		slog.Default().Error("Failed to close sqlite database", "error", err)
	}
}
