package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/osse101/BuzzHive_Go/internal/domain"
	"github.com/osse101/BuzzHive_Go/internal/logger"
	"github.com/osse101/BuzzHive_Go/internal/repository"
)

const keyPrefix = "hive:"

// Origin reports where a loaded state came from
type Origin string

const (
	// OriginNew means nothing was stored for the hive
	OriginNew Origin = "new"
	// OriginRestored means a stored snapshot was decoded
	OriginRestored Origin = "restored"
	// OriginRecovered means a snapshot existed but could not be used
	OriginRecovered Origin = "recovered"
)

// Key returns the blob store key for a hive
func Key(hiveID string) string {
	return keyPrefix + hiveID
}

// Store loads and saves hive state through a blob store with a read-through cache
type Store struct {
	blobs repository.BlobStore
	codec *Codec
	cache *blobCache
}

// NewStore wraps blobs. A cacheSize of zero or less disables caching.
func NewStore(blobs repository.BlobStore, codec *Codec, cacheSize int, cacheTTL time.Duration) *Store {
	s := &Store{blobs: blobs, codec: codec}
	if cacheSize > 0 {
		s.cache = newBlobCache(cacheSize, cacheTTL)
	}
	return s
}

// Load returns the saved state for hiveID. It never fails: a missing,
// unreadable or corrupt snapshot yields a fresh hive stamped at now.
func (s *Store) Load(ctx context.Context, hiveID string, now time.Time) (domain.HiveState, Origin) {
	key := Key(hiveID)
	log := logger.FromContext(ctx).With(logger.AttrKeyHiveID, hiveID)

	blob, err := s.read(ctx, key)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		return s.codec.tuning.NewState(now), OriginNew
	case err != nil:
		log.Error("Failed to read snapshot, starting fresh", "error", err)
		return s.codec.tuning.NewState(now), OriginRecovered
	}

	state, err := s.codec.Decode(blob, now)
	if err != nil {
		log.Warn("Discarding corrupt snapshot", "error", err)
		if s.cache != nil {
			s.cache.Invalidate(key)
		}
		return s.codec.tuning.NewState(now), OriginRecovered
	}
	return state, OriginRestored
}

// Save encodes state and writes it under hiveID
func (s *Store) Save(ctx context.Context, hiveID string, state domain.HiveState) error {
	blob, err := s.codec.Encode(state)
	if err != nil {
		return err
	}

	key := Key(hiveID)
	if err := s.blobs.Set(ctx, key, blob); err != nil {
		if s.cache != nil {
			s.cache.Invalidate(key)
		}
		return fmt.Errorf("failed to save hive %s: %w", hiveID, err)
	}
	if s.cache != nil {
		s.cache.Set(key, blob)
	}
	return nil
}

func (s *Store) read(ctx context.Context, key string) ([]byte, error) {
	if s.cache != nil {
		if blob, ok := s.cache.Get(key); ok {
			return blob, nil
		}
	}

	blob, err := s.blobs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(key, blob)
	}
	return blob, nil
}
