package openmeteo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakseason/harvest-engine/internal/domain"
)

// --- mock for cache tests ---

type countingSource struct {
	calls  int
	series []domain.DailyMean
	err    error
}

func (m *countingSource) DailyMeans(_ context.Context, _ domain.Region, _, _ time.Time) ([]domain.DailyMean, error) {
	m.calls++
	return m.series, m.err
}

func someSeries() []domain.DailyMean {
	return []domain.DailyMean{
		{Date: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), TempF: 52},
		{Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), TempF: 54},
	}
}

var (
	from = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to   = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
)

// --- CachedSource tests ---

func TestCachedSource_RepeatQueryHitsCache(t *testing.T) {
	inner := &countingSource{series: someSeries()}
	cached := NewCachedSource(inner, 10)
	region := domain.Region{ID: "cv"}

	s1, err := cached.DailyMeans(context.Background(), region, from, to)
	require.NoError(t, err)
	s2, err := cached.DailyMeans(context.Background(), region, from, to)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedSource_DistinctKeysMiss(t *testing.T) {
	inner := &countingSource{series: someSeries()}
	cached := NewCachedSource(inner, 10)

	_, _ = cached.DailyMeans(context.Background(), domain.Region{ID: "cv"}, from, to)
	_, _ = cached.DailyMeans(context.Background(), domain.Region{ID: "yakima"}, from, to)
	_, _ = cached.DailyMeans(context.Background(), domain.Region{ID: "cv"}, from, to.AddDate(0, 0, 1))

	assert.Equal(t, 3, inner.calls)
}

func TestCachedSource_ErrorsAreNotCached(t *testing.T) {
	inner := &countingSource{err: errors.New("boom")}
	cached := NewCachedSource(inner, 10)
	region := domain.Region{ID: "cv"}

	_, err := cached.DailyMeans(context.Background(), region, from, to)
	require.Error(t, err)
	_, err = cached.DailyMeans(context.Background(), region, from, to)
	require.Error(t, err)

	assert.Equal(t, 2, inner.calls, "errors must be retried, not served from cache")
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)

	_, ok := c.get("a")
	assert.False(t, ok)

	c.put("a", someSeries())
	got, ok := c.get("a")
	require.True(t, ok)
	assert.Len(t, got, 2)
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", someSeries())
	c.put("b", someSeries())

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", someSeries())

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateExistingKey(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", someSeries())
	c.put("a", someSeries()[:1])

	got, ok := c.get("a")
	require.True(t, ok)
	assert.Len(t, got, 1)
}
