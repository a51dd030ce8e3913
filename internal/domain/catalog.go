package domain

import "fmt"

// ModelType selects how a cultivar's thresholds are interpreted. Exactly one
// model type governs a cultivar.
type ModelType string

const (
	ModelGdd      ModelType = "gdd"
	ModelCalendar ModelType = "calendar"
	ModelParent   ModelType = "parent"
)

// Valid reports whether the model type is one of the three known values.
func (m ModelType) Valid() bool {
	switch m {
	case ModelGdd, ModelCalendar, ModelParent:
		return true
	}
	return false
}

// Product is a botanical base type (e.g. "Apple"). Immutable reference data.
type Product struct {
	ID          string
	Name        string
	Category    string
	Subcategory string
}

// Thresholds holds the model parameters a cultivar or offering may specify.
// Nil means "not specified at this layer"; the effective value of each field
// is offeringOverride ?? cultivarDefault (see Merge).
type Thresholds struct {
	BaseTemp    *float64 // °F; GDD accrual floor
	MaturityGdd *float64 // harvest window opens
	PeakGdd     *float64 // peak window opens
	WindowGdd   *float64 // full window width beyond maturity
	PeakMonths  []int    // calendar model; months 1-12 in season order
}

// Merge layers overrides on top of base, field by field. Nil override fields
// fall through to the base value. Neither input is mutated.
func (base Thresholds) Merge(overrides Thresholds) Thresholds {
	out := base
	if overrides.BaseTemp != nil {
		out.BaseTemp = overrides.BaseTemp
	}
	if overrides.MaturityGdd != nil {
		out.MaturityGdd = overrides.MaturityGdd
	}
	if overrides.PeakGdd != nil {
		out.PeakGdd = overrides.PeakGdd
	}
	if overrides.WindowGdd != nil {
		out.WindowGdd = overrides.WindowGdd
	}
	if len(overrides.PeakMonths) > 0 {
		out.PeakMonths = overrides.PeakMonths
	}
	return out
}

// Cultivar is a specific genetic selection of a Product.
type Cultivar struct {
	ID        string
	ProductID string
	Name      string
	Model     ModelType
	ParentID  string // set only when Model == ModelParent
	Defaults  Thresholds
}

// Region is a named growing area with a geographic centroid and climate
// summary. Immutable reference data; the source of weather accumulation.
type Region struct {
	ID        string
	Name      string
	State     string
	Lat       float64
	Lon       float64
	USDAZone  string
	LastFrost string // month-day, e.g. "04-15"
	FirstFrost string
}

// RegionalOffering is the entity predictions run on: a (cultivar, region)
// pair with optional per-region threshold overrides. Read-only to the
// engine; uniquely identified by (CultivarID, RegionID).
type RegionalOffering struct {
	CultivarID  string
	RegionID    string
	Active      bool
	QualityTier string
	Overrides   Thresholds
}

// Key returns the offering's unique identifier.
func (o RegionalOffering) Key() string {
	return o.CultivarID + ":" + o.RegionID
}

// Catalog is the read-only reference data set, loaded once at process start.
// All model parameters are data-driven so the engine tolerates catalog
// growth without code changes.
type Catalog struct {
	Products  map[string]Product
	Cultivars map[string]Cultivar
	Regions   map[string]Region
	Offerings []RegionalOffering
}

// ActiveOfferings returns the offerings the discovery feed predicts on,
// grouped by region so weather fetches can be batched one per region.
func (c *Catalog) ActiveOfferings() map[string][]RegionalOffering {
	byRegion := make(map[string][]RegionalOffering)
	for _, o := range c.Offerings {
		if !o.Active {
			continue
		}
		byRegion[o.RegionID] = append(byRegion[o.RegionID], o)
	}
	return byRegion
}

// ProductForCultivar resolves a cultivar's product record.
func (c *Catalog) ProductForCultivar(cultivarID string) (Product, error) {
	cv, ok := c.Cultivars[cultivarID]
	if !ok {
		return Product{}, fmt.Errorf("unknown cultivar %q", cultivarID)
	}
	p, ok := c.Products[cv.ProductID]
	if !ok {
		return Product{}, fmt.Errorf("cultivar %q references unknown product %q", cultivarID, cv.ProductID)
	}
	return p, nil
}
