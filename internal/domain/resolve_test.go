package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakseason/harvest-engine/internal/domain"
)

func f(v float64) *float64 { return &v }

// testCatalog builds the cultivar graph the resolver tests run against.
func testCatalog() *domain.Catalog {
	return &domain.Catalog{
		Products: map[string]domain.Product{
			"orange": {ID: "orange", Name: "Orange", Category: "fruit", Subcategory: "citrus"},
		},
		Cultivars: map[string]domain.Cultivar{
			"valencia": {
				ID: "valencia", ProductID: "orange", Name: "Valencia", Model: domain.ModelGdd,
				Defaults: domain.Thresholds{BaseTemp: f(55), MaturityGdd: f(2200), PeakGdd: f(2600), WindowGdd: f(1200)},
			},
			"valencia-juice": {
				ID: "valencia-juice", ProductID: "orange", Model: domain.ModelParent, ParentID: "valencia",
			},
			"satsuma": {
				ID: "satsuma", ProductID: "orange", Model: domain.ModelCalendar,
				Defaults: domain.Thresholds{PeakMonths: []int{11, 12, 1}},
			},
			"no-peak": {
				ID: "no-peak", ProductID: "orange", Model: domain.ModelGdd,
				Defaults: domain.Thresholds{BaseTemp: f(55), MaturityGdd: f(1600), WindowGdd: f(900)},
			},
			"cycle-a": {ID: "cycle-a", ProductID: "orange", Model: domain.ModelParent, ParentID: "cycle-b"},
			"cycle-b": {ID: "cycle-b", ProductID: "orange", Model: domain.ModelParent, ParentID: "cycle-a"},
			"dangling": {ID: "dangling", ProductID: "orange", Model: domain.ModelParent, ParentID: "nowhere"},
		},
		Regions: map[string]domain.Region{
			"cv": {ID: "cv", Name: "Central Valley"},
		},
	}
}

func offering(cultivarID string, overrides domain.Thresholds) domain.RegionalOffering {
	return domain.RegionalOffering{CultivarID: cultivarID, RegionID: "cv", Active: true, Overrides: overrides}
}

func TestResolve_GddDefaults(t *testing.T) {
	m, err := domain.Resolve(testCatalog(), offering("valencia", domain.Thresholds{}))
	require.NoError(t, err)

	assert.Equal(t, domain.ModelGdd, m.Model)
	assert.Equal(t, "valencia", m.CultivarID)
	assert.Equal(t, 55.0, m.BaseTemp)
	assert.Equal(t, 2200.0, m.MaturityGdd)
	assert.Equal(t, 2600.0, m.PeakGdd)
	assert.Equal(t, 1200.0, m.WindowGdd)
}

func TestResolve_OfferingOverrideWins(t *testing.T) {
	m, err := domain.Resolve(testCatalog(), offering("valencia", domain.Thresholds{MaturityGdd: f(2000), PeakGdd: f(2400)}))
	require.NoError(t, err)

	assert.Equal(t, 2000.0, m.MaturityGdd)
	assert.Equal(t, 2400.0, m.PeakGdd)
	assert.Equal(t, 1200.0, m.WindowGdd, "unset override falls through to default")
}

func TestResolve_ParentInheritsAncestorThresholds(t *testing.T) {
	m, err := domain.Resolve(testCatalog(), offering("valencia-juice", domain.Thresholds{}))
	require.NoError(t, err)

	assert.Equal(t, domain.ModelGdd, m.Model)
	assert.Equal(t, "valencia-juice", m.CultivarID, "resolved model keeps the offering's own cultivar")
	assert.Equal(t, 2200.0, m.MaturityGdd)
}

func TestResolve_ParentOfferingOverridesAncestor(t *testing.T) {
	m, err := domain.Resolve(testCatalog(), offering("valencia-juice", domain.Thresholds{MaturityGdd: f(2100)}))
	require.NoError(t, err)

	assert.Equal(t, 2100.0, m.MaturityGdd)
}

func TestResolve_Calendar(t *testing.T) {
	m, err := domain.Resolve(testCatalog(), offering("satsuma", domain.Thresholds{}))
	require.NoError(t, err)

	assert.Equal(t, domain.ModelCalendar, m.Model)
	assert.Equal(t, []int{11, 12, 1}, m.PeakMonths)
}

func TestResolve_MissingFieldIsIncompleteModel(t *testing.T) {
	_, err := domain.Resolve(testCatalog(), offering("no-peak", domain.Thresholds{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteModel)
	assert.Contains(t, err.Error(), "peakGdd", "error names the missing field")
}

func TestResolve_OverrideCanCompleteModel(t *testing.T) {
	// A field missing from the cultivar is an error only if no layer
	// supplies it; the offering override fills the gap here.
	m, err := domain.Resolve(testCatalog(), offering("no-peak", domain.Thresholds{PeakGdd: f(1900)}))
	require.NoError(t, err)
	assert.Equal(t, 1900.0, m.PeakGdd)
}

func TestResolve_CyclicChain(t *testing.T) {
	_, err := domain.Resolve(testCatalog(), offering("cycle-a", domain.Thresholds{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCultivarChain)
}

func TestResolve_DanglingParent(t *testing.T) {
	_, err := domain.Resolve(testCatalog(), offering("dangling", domain.Thresholds{}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidCultivarChain)
}

func TestResolve_InvertedBoundsAreIncomplete(t *testing.T) {
	// Overrides that push the peak outside the window are rejected rather
	// than silently swapped.
	_, err := domain.Resolve(testCatalog(), offering("valencia", domain.Thresholds{PeakGdd: f(5000)}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteModel)

	_, err = domain.Resolve(testCatalog(), offering("valencia", domain.Thresholds{PeakGdd: f(100)}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteModel)
}

func TestResolve_BadPeakMonth(t *testing.T) {
	_, err := domain.Resolve(testCatalog(), offering("satsuma", domain.Thresholds{PeakMonths: []int{0, 13}}))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIncompleteModel)
}
