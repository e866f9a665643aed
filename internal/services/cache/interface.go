package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented TTL cache. The API layer uses it to absorb
// repeated reads of slow upstream queries, most notably the combined
// provider credits check.
type Cache interface {
	// Get retrieves a value; the second return is false on miss or expiry
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value under the key for the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from the cache
	Clear(ctx context.Context) error
}

// Stats counts cache activity since startup
type Stats struct {
	Hits      int64
	Misses    int64
	Sets      int64
	Evictions int64
	Entries   int64
}

// StatsProvider is implemented by caches that track usage counters
type StatsProvider interface {
	Stats() Stats
}
