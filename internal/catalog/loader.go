// Package catalog loads the read-only reference data set (products,
// cultivars, regions, regional offerings) from YAML files at process start.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/peakseason/harvest-engine/internal/domain"
)

// File names expected under the catalog directory.
const (
	ProductsFile  = "products.yaml"
	CultivarsFile = "cultivars.yaml"
	RegionsFile   = "regions.yaml"
	OfferingsFile = "offerings.yaml"
)

type productsDoc struct {
	Products []productYAML `yaml:"products"`
}

type productYAML struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory"`
}

type cultivarsDoc struct {
	Cultivars []cultivarYAML `yaml:"cultivars"`
}

type cultivarYAML struct {
	ID        string `yaml:"id"`
	ProductID string `yaml:"productId"`
	Name      string `yaml:"name"`
	Model     string `yaml:"model"`
	ParentID  string `yaml:"parentId"`

	thresholdsYAML `yaml:",inline"`
}

type thresholdsYAML struct {
	BaseTemp    *float64 `yaml:"baseTemp"`
	MaturityGdd *float64 `yaml:"maturityGdd"`
	PeakGdd     *float64 `yaml:"peakGdd"`
	WindowGdd   *float64 `yaml:"windowGdd"`
	PeakMonths  []int    `yaml:"peakMonths"`
}

func (t thresholdsYAML) toDomain() domain.Thresholds {
	return domain.Thresholds{
		BaseTemp:    t.BaseTemp,
		MaturityGdd: t.MaturityGdd,
		PeakGdd:     t.PeakGdd,
		WindowGdd:   t.WindowGdd,
		PeakMonths:  t.PeakMonths,
	}
}

type regionsDoc struct {
	Regions []regionYAML `yaml:"regions"`
}

type regionYAML struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	State      string  `yaml:"state"`
	Lat        float64 `yaml:"lat"`
	Lon        float64 `yaml:"lon"`
	USDAZone   string  `yaml:"usdaZone"`
	LastFrost  string  `yaml:"lastFrost"`
	FirstFrost string  `yaml:"firstFrost"`
}

type offeringsDoc struct {
	Offerings []offeringYAML `yaml:"offerings"`
}

type offeringYAML struct {
	CultivarID  string          `yaml:"cultivarId"`
	RegionID    string          `yaml:"regionId"`
	Active      bool            `yaml:"active"`
	QualityTier string          `yaml:"qualityTier"`
	Overrides   *thresholdsYAML `yaml:"overrides"`
}

// Load reads and validates the four catalog files from dir. Structural
// problems (duplicate ids, dangling references, unknown model types) fail
// the load; per-offering model completeness is left to runtime resolution
// so one half-authored offering does not block startup.
func Load(dir string) (*domain.Catalog, error) {
	var (
		products  productsDoc
		cultivars cultivarsDoc
		regions   regionsDoc
		offerings offeringsDoc
	)
	if err := readYAML(filepath.Join(dir, ProductsFile), &products); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, CultivarsFile), &cultivars); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, RegionsFile), &regions); err != nil {
		return nil, err
	}
	if err := readYAML(filepath.Join(dir, OfferingsFile), &offerings); err != nil {
		return nil, err
	}

	cat := &domain.Catalog{
		Products:  make(map[string]domain.Product, len(products.Products)),
		Cultivars: make(map[string]domain.Cultivar, len(cultivars.Cultivars)),
		Regions:   make(map[string]domain.Region, len(regions.Regions)),
	}

	for _, p := range products.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("%s: product with empty id", ProductsFile)
		}
		if _, dup := cat.Products[p.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate product id %q", ProductsFile, p.ID)
		}
		cat.Products[p.ID] = domain.Product{ID: p.ID, Name: p.Name, Category: p.Category, Subcategory: p.Subcategory}
	}

	for _, c := range cultivars.Cultivars {
		if c.ID == "" {
			return nil, fmt.Errorf("%s: cultivar with empty id", CultivarsFile)
		}
		if _, dup := cat.Cultivars[c.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate cultivar id %q", CultivarsFile, c.ID)
		}
		model := domain.ModelType(c.Model)
		if !model.Valid() {
			return nil, fmt.Errorf("%s: cultivar %q has unknown model type %q", CultivarsFile, c.ID, c.Model)
		}
		if model == domain.ModelParent && c.ParentID == "" {
			return nil, fmt.Errorf("%s: cultivar %q is a parent model but names no parent", CultivarsFile, c.ID)
		}
		cat.Cultivars[c.ID] = domain.Cultivar{
			ID:        c.ID,
			ProductID: c.ProductID,
			Name:      c.Name,
			Model:     model,
			ParentID:  c.ParentID,
			Defaults:  c.toDomain(),
		}
	}

	for _, r := range regions.Regions {
		if r.ID == "" {
			return nil, fmt.Errorf("%s: region with empty id", RegionsFile)
		}
		if _, dup := cat.Regions[r.ID]; dup {
			return nil, fmt.Errorf("%s: duplicate region id %q", RegionsFile, r.ID)
		}
		cat.Regions[r.ID] = domain.Region{
			ID: r.ID, Name: r.Name, State: r.State,
			Lat: r.Lat, Lon: r.Lon,
			USDAZone: r.USDAZone, LastFrost: r.LastFrost, FirstFrost: r.FirstFrost,
		}
	}

	seen := make(map[string]bool, len(offerings.Offerings))
	for _, o := range offerings.Offerings {
		off := domain.RegionalOffering{
			CultivarID:  o.CultivarID,
			RegionID:    o.RegionID,
			Active:      o.Active,
			QualityTier: o.QualityTier,
		}
		if o.Overrides != nil {
			off.Overrides = o.Overrides.toDomain()
		}
		if seen[off.Key()] {
			return nil, fmt.Errorf("%s: duplicate offering %s", OfferingsFile, off.Key())
		}
		seen[off.Key()] = true
		cat.Offerings = append(cat.Offerings, off)
	}

	if err := validateReferences(cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// validateReferences checks cross-file integrity: every cultivar names a
// known product, every parent names a known cultivar, every offering names a
// known cultivar and region.
func validateReferences(cat *domain.Catalog) error {
	for _, c := range cat.Cultivars {
		if _, ok := cat.Products[c.ProductID]; !ok {
			return fmt.Errorf("cultivar %q references unknown product %q", c.ID, c.ProductID)
		}
		if c.ParentID != "" {
			if _, ok := cat.Cultivars[c.ParentID]; !ok {
				return fmt.Errorf("cultivar %q references unknown parent %q", c.ID, c.ParentID)
			}
		}
	}
	for _, o := range cat.Offerings {
		if _, ok := cat.Cultivars[o.CultivarID]; !ok {
			return fmt.Errorf("offering %s references unknown cultivar %q", o.Key(), o.CultivarID)
		}
		if _, ok := cat.Regions[o.RegionID]; !ok {
			return fmt.Errorf("offering %s references unknown region %q", o.Key(), o.RegionID)
		}
	}
	return nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read catalog file: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
