package snapshot

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CacheSchemaVersion is bumped when the cached blob layout changes so old
// entries are dropped instead of decoded
const CacheSchemaVersion = "1.0"

type cachedBlob struct {
	Version  string
	Blob     []byte
	CachedAt time.Time
}

// blobCache is an in-memory LRU of encoded snapshots with time-based expiry
type blobCache struct {
	lru *expirable.LRU[string, *cachedBlob]
}

func newBlobCache(size int, ttl time.Duration) *blobCache {
	return &blobCache{
		lru: expirable.NewLRU[string, *cachedBlob](size, nil, ttl),
	}
}

// Get returns the cached blob for key. Entries from another schema version are evicted.
func (c *blobCache) Get(key string) ([]byte, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	return entry.Blob, true
}

// Set caches blob under key. The caller must not modify blob afterwards.
func (c *blobCache) Set(key string, blob []byte) {
	c.lru.Add(key, &cachedBlob{
		Version:  CacheSchemaVersion,
		Blob:     blob,
		CachedAt: time.Now(),
	})
}

func (c *blobCache) Invalidate(key string) {
	c.lru.Remove(key)
}

func (c *blobCache) Len() int {
	return c.lru.Len()
}
