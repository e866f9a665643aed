package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultTTL = 30 * time.Second

// MemoryCache is a process-local TTL cache. Entries here are small JSON
// blobs (credits summaries), so there is no size accounting; expiry alone
// keeps the map bounded.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]entry

	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
}

type entry struct {
	value  []byte
	expiry time.Time
}

// NewMemoryCache creates an in-memory cache with a background sweep that
// evicts expired entries every sweepInterval. A non-positive interval
// disables the sweep; expired entries are then dropped lazily on read.
func NewMemoryCache(sweepInterval time.Duration) *MemoryCache {
	mc := &MemoryCache{
		items:  make(map[string]entry),
		stopCh: make(chan struct{}),
	}
	if sweepInterval > 0 {
		go mc.sweep(sweepInterval)
	}
	return mc
}

func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, ok := mc.items[key]
	mc.mu.RUnlock()

	if !ok || time.Now().After(item.expiry) {
		mc.misses.Add(1)
		return nil, false
	}

	mc.hits.Add(1)
	return item.value, true
}

func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	mc.mu.Lock()
	mc.items[key] = entry{value: value, expiry: time.Now().Add(ttl)}
	mc.mu.Unlock()

	mc.sets.Add(1)
	return nil
}

func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	delete(mc.items, key)
	mc.mu.Unlock()
	return nil
}

func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]entry)
	mc.mu.Unlock()
	return nil
}

// Stats returns usage counters since startup
func (mc *MemoryCache) Stats() Stats {
	mc.mu.RLock()
	entries := int64(len(mc.items))
	mc.mu.RUnlock()

	return Stats{
		Hits:      mc.hits.Load(),
		Misses:    mc.misses.Load(),
		Sets:      mc.sets.Load(),
		Evictions: mc.evictions.Load(),
		Entries:   entries,
	}
}

// Stop terminates the background sweep goroutine
func (mc *MemoryCache) Stop() {
	mc.stopOnce.Do(func() { close(mc.stopCh) })
}

func (mc *MemoryCache) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			mc.mu.Lock()
			for key, item := range mc.items {
				if now.After(item.expiry) {
					delete(mc.items, key)
					mc.evictions.Add(1)
				}
			}
			mc.mu.Unlock()
		case <-mc.stopCh:
			return
		}
	}
}
