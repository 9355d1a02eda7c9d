package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BuzzHive_Go/internal/domain"
)

// SnapshotRepository stores hive snapshot blobs in PostgreSQL
type SnapshotRepository struct {
	db *pgxpool.Pool
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Get returns the blob stored under key
func (r *SnapshotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := r.db.QueryRow(ctx, queryGetSnapshot, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToGetSnapshot, err)
	}
	return blob, nil
}

// Set stores blob under key, replacing any previous value
func (r *SnapshotRepository) Set(ctx context.Context, key string, blob []byte) error {
	if _, err := r.db.Exec(ctx, queryUpsertSnapshot, key, blob); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrDatabaseError, ErrMsgFailedToSaveSnapshot, err)
	}
	return nil
}
