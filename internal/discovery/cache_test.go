package discovery

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cachedItems() []Item {
	return []Item{{OfferingID: "valencia:cv", DisplayName: "Valencia"}}
}

func TestPredictionCache_EmptyMisses(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 14, 10, 5, 0, 0, time.UTC))
	c := NewPredictionCache(clock, 30*time.Minute)

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestPredictionCache_HitWithinBucketAndTTL(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 14, 10, 5, 0, 0, time.UTC))
	c := NewPredictionCache(clock, 30*time.Minute)

	c.Put(cachedItems())
	clock.Advance(20 * time.Minute)

	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "valencia:cv", got[0].OfferingID)
}

func TestPredictionCache_ExpiresAfterTTL(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 14, 10, 5, 0, 0, time.UTC))
	c := NewPredictionCache(clock, 30*time.Minute)

	c.Put(cachedItems())
	clock.Advance(30 * time.Minute)

	_, ok := c.Get()
	assert.False(t, ok, "entry at exactly TTL age is stale")
}

func TestPredictionCache_HourBucketRollInvalidates(t *testing.T) {
	// Stored at 10:55 with a 30m TTL: at 11:05 the entry is only ten
	// minutes old, but it belongs to the 10:00 bucket and must not serve.
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 14, 10, 55, 0, 0, time.UTC))
	c := NewPredictionCache(clock, 30*time.Minute)

	c.Put(cachedItems())
	clock.Advance(10 * time.Minute)

	_, ok := c.Get()
	assert.False(t, ok)
}

func TestPredictionCache_PutRefreshes(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 14, 10, 5, 0, 0, time.UTC))
	c := NewPredictionCache(clock, 30*time.Minute)

	c.Put(cachedItems())
	clock.Advance(31 * time.Minute)
	_, ok := c.Get()
	require.False(t, ok)

	c.Put(cachedItems())
	got, ok := c.Get()
	require.True(t, ok)
	assert.Len(t, got, 1)
}
