package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/peakseason/harvest-engine/internal/domain"
)

func TestDistanceMiles_KnownPairs(t *testing.T) {
	// Los Angeles ↔ San Francisco, ~347 statute miles.
	d := domain.DistanceMiles(34.0522, -118.2437, 37.7749, -122.4194)
	assert.InDelta(t, 347, d, 5)

	// Fresno ↔ Indian River, FL: cross-country, ~2200 miles.
	d = domain.DistanceMiles(36.7378, -119.7871, 27.6386, -80.3973)
	assert.InDelta(t, 2360, d, 60)
}

func TestDistanceMiles_ZeroForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, domain.DistanceMiles(36.7, -119.8, 36.7, -119.8), 1e-9)
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	a := domain.DistanceMiles(36.7, -119.8, 46.6, -120.5)
	b := domain.DistanceMiles(46.6, -120.5, 36.7, -119.8)
	assert.InDelta(t, a, b, 1e-9)
}
