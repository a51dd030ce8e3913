package discovery

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// PredictionCache holds the unfiltered, distance-independent prediction set
// for the current hour bucket. Repeated discovery calls within the bucket
// and TTL reuse it; distance and final sort/filter are recomputed per
// request since they depend on caller location and are cheap.
//
// Concurrent first-requests may each compute and Put; the last write wins
// with an equivalent value, which is benign. The mutex only guarantees a
// reader never sees a half-written entry.
type PredictionCache struct {
	clock clockwork.Clock
	ttl   time.Duration

	mu       sync.Mutex
	bucket   time.Time
	storedAt time.Time
	items    []Item
	valid    bool
}

// NewPredictionCache creates a cache with the given TTL. The clock is
// injected so tests can advance time.
func NewPredictionCache(clock clockwork.Clock, ttl time.Duration) *PredictionCache {
	return &PredictionCache{clock: clock, ttl: ttl}
}

// Get returns the cached prediction set if it belongs to the current hour
// bucket and is younger than the TTL. Callers must not mutate the returned
// slice.
func (c *PredictionCache) Get() ([]Item, bool) {
	now := c.clock.Now()
	bucket := now.Truncate(time.Hour)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid || !c.bucket.Equal(bucket) || now.Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.items, true
}

// Put stores a freshly computed prediction set for the current hour bucket.
func (c *PredictionCache) Put(items []Item) {
	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.bucket = now.Truncate(time.Hour)
	c.storedAt = now
	c.items = items
	c.valid = true
}
