// Command seedcatalog writes a starter catalog to a directory: a handful of
// products, cultivars across all three model types, growing regions, and
// regional offerings with override examples. Useful for local development
// and as a template for catalog authors.
//
// Usage:
//
//	go run ./cmd/seedcatalog -out catalog
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "catalog", "directory to write catalog YAML files into")
	flag.Parse()

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	files := map[string]any{
		"products.yaml":  seedProducts(),
		"cultivars.yaml": seedCultivars(),
		"regions.yaml":   seedRegions(),
		"offerings.yaml": seedOfferings(),
	}
	for name, doc := range files {
		data, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", name, err)
		}
		path := filepath.Join(*out, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

type product struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Subcategory string `yaml:"subcategory,omitempty"`
}

type cultivar struct {
	ID        string `yaml:"id"`
	ProductID string `yaml:"productId"`
	Name      string `yaml:"name"`
	Model     string `yaml:"model"`
	ParentID  string `yaml:"parentId,omitempty"`

	BaseTemp    *float64 `yaml:"baseTemp,omitempty"`
	MaturityGdd *float64 `yaml:"maturityGdd,omitempty"`
	PeakGdd     *float64 `yaml:"peakGdd,omitempty"`
	WindowGdd   *float64 `yaml:"windowGdd,omitempty"`
	PeakMonths  []int    `yaml:"peakMonths,omitempty,flow"`
}

type region struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	State      string  `yaml:"state"`
	Lat        float64 `yaml:"lat"`
	Lon        float64 `yaml:"lon"`
	USDAZone   string  `yaml:"usdaZone"`
	LastFrost  string  `yaml:"lastFrost"`
	FirstFrost string  `yaml:"firstFrost"`
}

type offering struct {
	CultivarID  string         `yaml:"cultivarId"`
	RegionID    string         `yaml:"regionId"`
	Active      bool           `yaml:"active"`
	QualityTier string         `yaml:"qualityTier,omitempty"`
	Overrides   map[string]any `yaml:"overrides,omitempty"`
}

func f(v float64) *float64 { return &v }

func seedProducts() any {
	return map[string][]product{"products": {
		{ID: "orange", Name: "Orange", Category: "fruit", Subcategory: "citrus"},
		{ID: "mandarin", Name: "Mandarin", Category: "fruit", Subcategory: "citrus"},
		{ID: "apple", Name: "Apple", Category: "fruit", Subcategory: "pome"},
		{ID: "peach", Name: "Peach", Category: "fruit", Subcategory: "stone"},
		{ID: "strawberry", Name: "Strawberry", Category: "berry"},
	}}
}

func seedCultivars() any {
	return map[string][]cultivar{"cultivars": {
		{
			ID: "washington-navel", ProductID: "orange", Name: "Washington Navel", Model: "gdd",
			BaseTemp: f(55), MaturityGdd: f(1600), PeakGdd: f(1900), WindowGdd: f(900),
		},
		{
			ID: "valencia", ProductID: "orange", Name: "Valencia", Model: "gdd",
			BaseTemp: f(55), MaturityGdd: f(2200), PeakGdd: f(2600), WindowGdd: f(1200),
		},
		{
			// Juice timing tracks the fruit it is pressed from.
			ID: "valencia-juice", ProductID: "orange", Name: "Valencia Juice", Model: "parent",
			ParentID: "valencia",
		},
		{
			ID: "owari-satsuma", ProductID: "mandarin", Name: "Owari Satsuma", Model: "calendar",
			PeakMonths: []int{11, 12, 1},
		},
		{
			ID: "honeycrisp", ProductID: "apple", Name: "Honeycrisp", Model: "gdd",
			BaseTemp: f(50), MaturityGdd: f(2400), PeakGdd: f(2700), WindowGdd: f(600),
		},
		{
			ID: "june-pride", ProductID: "peach", Name: "June Pride", Model: "gdd",
			BaseTemp: f(50), MaturityGdd: f(1900), PeakGdd: f(2100), WindowGdd: f(500),
		},
		{
			ID: "albion", ProductID: "strawberry", Name: "Albion", Model: "calendar",
			PeakMonths: []int{4, 5, 6},
		},
	}}
}

func seedRegions() any {
	return map[string][]region{"regions": {
		{ID: "central-valley-ca", Name: "Central Valley", State: "CA", Lat: 36.7378, Lon: -119.7871, USDAZone: "9b", LastFrost: "03-01", FirstFrost: "11-25"},
		{ID: "indian-river-fl", Name: "Indian River", State: "FL", Lat: 27.6386, Lon: -80.3973, USDAZone: "10a", LastFrost: "02-01", FirstFrost: "12-20"},
		{ID: "rio-grande-tx", Name: "Rio Grande Valley", State: "TX", Lat: 26.2034, Lon: -98.2300, USDAZone: "9b", LastFrost: "02-10", FirstFrost: "12-10"},
		{ID: "yakima-wa", Name: "Yakima Valley", State: "WA", Lat: 46.6021, Lon: -120.5059, USDAZone: "7a", LastFrost: "04-25", FirstFrost: "10-10"},
	}}
}

func seedOfferings() any {
	return map[string][]offering{"offerings": {
		{CultivarID: "washington-navel", RegionID: "central-valley-ca", Active: true, QualityTier: "premium"},
		{CultivarID: "valencia", RegionID: "central-valley-ca", Active: true, QualityTier: "standard"},
		{CultivarID: "valencia", RegionID: "indian-river-fl", Active: true, QualityTier: "premium",
			// Florida heat pushes Valencia earlier than the default.
			Overrides: map[string]any{"maturityGdd": 2000, "peakGdd": 2400}},
		{CultivarID: "valencia-juice", RegionID: "indian-river-fl", Active: true, QualityTier: "standard"},
		{CultivarID: "owari-satsuma", RegionID: "rio-grande-tx", Active: true, QualityTier: "premium"},
		{CultivarID: "honeycrisp", RegionID: "yakima-wa", Active: true, QualityTier: "premium"},
		{CultivarID: "june-pride", RegionID: "central-valley-ca", Active: true, QualityTier: "standard"},
		{CultivarID: "albion", RegionID: "central-valley-ca", Active: true, QualityTier: "standard"},
		{CultivarID: "albion", RegionID: "yakima-wa", Active: false, QualityTier: "standard"},
	}}
}
