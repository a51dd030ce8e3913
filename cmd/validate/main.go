// Command validate performs integrity checks across a catalog directory
// beyond what startup loading enforces: it resolves every offering through
// the cultivar model resolver and projects a window for each, so authoring
// mistakes (missing thresholds, inverted bounds, cyclic parent chains)
// surface before deploy rather than as runtime skips.
//
// Usage:
//
//	go run ./cmd/validate -catalog-dir catalog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/peakseason/harvest-engine/internal/catalog"
	"github.com/peakseason/harvest-engine/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	catalogDir := flag.String("catalog-dir", "catalog", "directory containing catalog YAML files")
	flag.Parse()

	cat, err := catalog.Load(*catalogDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAIL load: %v\n", err)
		os.Exit(1)
	}

	phases := []*phase{
		checkResolution(cat),
		checkProjection(cat),
		checkCoverage(cat),
	}

	failed := false
	for _, p := range phases {
		if p.passed() {
			fmt.Printf("PASS %s\n", p.name)
			continue
		}
		failed = true
		fmt.Printf("FAIL %s\n", p.name)
		for _, e := range p.errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	if failed {
		os.Exit(1)
	}
	fmt.Printf("catalog ok: %d products, %d cultivars, %d regions, %d offerings\n",
		len(cat.Products), len(cat.Cultivars), len(cat.Regions), len(cat.Offerings))
}

// checkResolution resolves every offering, active or not, so half-authored
// inactive entries are caught before anyone flips them on.
func checkResolution(cat *domain.Catalog) *phase {
	p := &phase{name: "model resolution"}
	for _, o := range cat.Offerings {
		if _, err := domain.Resolve(cat, o); err != nil {
			p.errorf("offering %s: %v", o.Key(), err)
		}
	}
	return p
}

// checkProjection projects a window for every resolvable offering with a
// synthetic mid-season accumulation and verifies the bounds are ordered.
func checkProjection(cat *domain.Catalog) *phase {
	p := &phase{name: "window projection"}
	today := domain.Today()
	acc := domain.GddAccumulation{TotalGdd: 900, AvgDailyGdd: 12, RateStdDev: 3, Days: 180}

	for _, o := range cat.Offerings {
		m, err := domain.Resolve(cat, o)
		if err != nil {
			continue // reported by the resolution phase
		}
		w := domain.Project(m, acc, today)
		if w.PeakStart.Before(w.HarvestStart) || w.PeakEnd.Before(w.PeakStart) || w.HarvestEnd.Before(w.PeakEnd) {
			p.errorf("offering %s: unordered window %s / %s / %s / %s", o.Key(),
				w.HarvestStart.Format("2006-01-02"), w.PeakStart.Format("2006-01-02"),
				w.PeakEnd.Format("2006-01-02"), w.HarvestEnd.Format("2006-01-02"))
		}
	}
	return p
}

// checkCoverage flags catalog entries nothing references: products without
// cultivars and regions without offerings are usually authoring leftovers.
func checkCoverage(cat *domain.Catalog) *phase {
	p := &phase{name: "coverage"}

	usedProducts := make(map[string]bool)
	for _, c := range cat.Cultivars {
		usedProducts[c.ProductID] = true
	}
	for id := range cat.Products {
		if !usedProducts[id] {
			p.errorf("product %q has no cultivars", id)
		}
	}

	usedRegions := make(map[string]bool)
	for _, o := range cat.Offerings {
		usedRegions[o.RegionID] = true
	}
	for id := range cat.Regions {
		if !usedRegions[id] {
			p.errorf("region %q has no offerings", id)
		}
	}
	return p
}
