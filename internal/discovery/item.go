// Package discovery fans the prediction engine out across every active
// regional offering and turns the results into a sorted, bucketed feed.
package discovery

import (
	"github.com/peakseason/harvest-engine/internal/domain"
)

// Location is the caller's coordinates, used only for distance and final
// sorting; predictions themselves are location-independent.
type Location struct {
	Lat float64
	Lon float64
}

// Filters narrows a discovery response. Zero values mean "no filter".
type Filters struct {
	Statuses         []string
	Categories       []string
	MaxDistanceMiles float64
}

// Item is one offering joined with its projection, classification, and
// optional quality estimate; the unit returned to clients.
type Item struct {
	OfferingID  string `json:"offeringId"`
	CultivarID  string `json:"cultivarId"`
	RegionID    string `json:"regionId"`
	DisplayName string `json:"displayName"`
	RegionName  string `json:"regionName"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	QualityTier string `json:"qualityTier,omitempty"`

	Status         domain.Status `json:"status"`
	StatusMessage  string        `json:"statusMessage"`
	HarvestStart   string        `json:"harvestStart"`
	HarvestEnd     string        `json:"harvestEnd"`
	OptimalStart   string        `json:"optimalStart"`
	OptimalEnd     string        `json:"optimalEnd"`
	DaysUntilStart int           `json:"daysUntilStart,omitempty"`
	Confidence     float64       `json:"confidence"`

	DistanceMiles *float64 `json:"distanceMiles,omitempty"`

	// Citrus-only sugar/acid estimate.
	Brix    *float64 `json:"brix,omitempty"`
	Acidity *float64 `json:"acidity,omitempty"`
	Ratio   *float64 `json:"ratio,omitempty"`

	// Region centroid, kept for per-request distance computation.
	regionLat float64
	regionLon float64
}

// Feed is the bucketed discovery response: at_peak before in_season before
// approaching, with off_season last for browsing out-of-season items.
type Feed struct {
	AtPeak      []Item `json:"atPeak"`
	InSeason    []Item `json:"inSeason"`
	Approaching []Item `json:"approaching"`
	OffSeason   []Item `json:"offSeason"`

	TotalResults   int            `json:"totalResults"`
	CategoryCounts map[string]int `json:"categoryCounts"`
}
