package openmeteo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/peakseason/harvest-engine/internal/domain"
)

// CachedSource wraps a WeatherSource with an in-memory LRU cache keyed by
// region and date range. Within a day the same (region, range) query repeats
// across every cache refill, so memoizing the series is the cheapest way to
// hold the weather API call count at one per region per refresh.
type CachedSource struct {
	inner domain.WeatherSource
	cache *lruCache
}

// NewCachedSource creates a cache decorator around a weather source.
func NewCachedSource(inner domain.WeatherSource, maxEntries int) *CachedSource {
	return &CachedSource{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedSource) DailyMeans(ctx context.Context, region domain.Region, from, to time.Time) ([]domain.DailyMean, error) {
	key := fmt.Sprintf("%s|%s|%s", region.ID, from.Format(dateFormat), to.Format(dateFormat))
	if series, ok := c.cache.get(key); ok {
		return series, nil
	}
	series, err := c.inner.DailyMeans(ctx, region, from, to)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty results so transient gaps can be retried.
	if len(series) > 0 {
		c.cache.put(key, series)
	}
	return series, nil
}

// lruCache is a simple thread-safe LRU cache for temperature series.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value []domain.DailyMean
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.DailyMean, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.DailyMean) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
