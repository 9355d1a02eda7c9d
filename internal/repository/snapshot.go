package repository

import (
	"context"
)

// BlobStore is the key-value persistence boundary for hive snapshots.
// Get returns domain.ErrSnapshotNotFound when nothing is stored under key.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}
