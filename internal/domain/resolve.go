package domain

import "fmt"

// maxParentDepth bounds parent-chain traversal. The catalog currently needs
// one hop; eight leaves headroom without letting a bad import spin.
const maxParentDepth = 8

// ResolvedModel is the flattened, validated parameter set the projector
// consumes. Model is never ModelParent. Safe to cache by (cultivarID,
// regionID) for the lifetime of the catalog version.
type ResolvedModel struct {
	Model      ModelType
	CultivarID string // the offering's own cultivar, not the resolved ancestor

	// GDD model fields.
	BaseTemp    float64
	MaturityGdd float64
	PeakGdd     float64
	WindowGdd   float64

	// Calendar model fields.
	PeakMonths []int
}

// Resolve determines an offering's effective model type and thresholds.
// Parent cultivars are followed transitively with a visited-set cycle guard;
// threshold defaults layer ancestor-first so a derived cultivar may narrow
// its parent's values, and the offering's overrides win over everything.
func Resolve(catalog *Catalog, offering RegionalOffering) (ResolvedModel, error) {
	chain, err := parentChain(catalog, offering.CultivarID)
	if err != nil {
		return ResolvedModel{}, err
	}

	// chain runs leaf → ancestor; the terminal entry carries the model type.
	terminal := chain[len(chain)-1]

	merged := terminal.Defaults
	for i := len(chain) - 2; i >= 0; i-- {
		merged = merged.Merge(chain[i].Defaults)
	}
	merged = merged.Merge(offering.Overrides)

	resolved := ResolvedModel{
		Model:      terminal.Model,
		CultivarID: offering.CultivarID,
	}

	switch terminal.Model {
	case ModelGdd:
		if err := requireGddFields(&resolved, merged, offering); err != nil {
			return ResolvedModel{}, err
		}
	case ModelCalendar:
		if len(merged.PeakMonths) == 0 {
			return ResolvedModel{}, incomplete(offering, "peakMonths")
		}
		for _, m := range merged.PeakMonths {
			if m < 1 || m > 12 {
				return ResolvedModel{}, fmt.Errorf("offering %s: peak month %d out of range: %w", offering.Key(), m, ErrIncompleteModel)
			}
		}
		resolved.PeakMonths = merged.PeakMonths
	default:
		return ResolvedModel{}, fmt.Errorf("cultivar %q has model type %q: %w", terminal.ID, terminal.Model, ErrInvalidCultivarChain)
	}

	return resolved, nil
}

// parentChain walks cultivar parent references until it reaches a non-parent
// model, returning the visited cultivars leaf-first. Cycles, dangling
// references, and chains deeper than maxParentDepth are catalog bugs.
func parentChain(catalog *Catalog, cultivarID string) ([]Cultivar, error) {
	visited := make(map[string]bool, 2)
	chain := make([]Cultivar, 0, 2)

	id := cultivarID
	for {
		if visited[id] {
			return nil, fmt.Errorf("cultivar %q: cyclic parent reference: %w", cultivarID, ErrInvalidCultivarChain)
		}
		if len(chain) >= maxParentDepth {
			return nil, fmt.Errorf("cultivar %q: parent chain deeper than %d: %w", cultivarID, maxParentDepth, ErrInvalidCultivarChain)
		}
		visited[id] = true

		cv, ok := catalog.Cultivars[id]
		if !ok {
			return nil, fmt.Errorf("cultivar %q: parent reference to unknown cultivar %q: %w", cultivarID, id, ErrInvalidCultivarChain)
		}
		chain = append(chain, cv)

		if cv.Model != ModelParent {
			return chain, nil
		}
		if cv.ParentID == "" {
			return nil, fmt.Errorf("cultivar %q: parent model without parent reference: %w", cv.ID, ErrInvalidCultivarChain)
		}
		id = cv.ParentID
	}
}

// requireGddFields validates and copies the four GDD-model fields, rejecting
// inverted windows (peak before maturity, or peak past the window end) as
// incomplete rather than silently swapping bounds.
func requireGddFields(out *ResolvedModel, t Thresholds, offering RegionalOffering) error {
	switch {
	case t.BaseTemp == nil:
		return incomplete(offering, "baseTemp")
	case t.MaturityGdd == nil:
		return incomplete(offering, "maturityGdd")
	case t.PeakGdd == nil:
		return incomplete(offering, "peakGdd")
	case t.WindowGdd == nil:
		return incomplete(offering, "windowGdd")
	}

	out.BaseTemp = *t.BaseTemp
	out.MaturityGdd = *t.MaturityGdd
	out.PeakGdd = *t.PeakGdd
	out.WindowGdd = *t.WindowGdd

	if out.MaturityGdd <= 0 || out.WindowGdd <= 0 {
		return fmt.Errorf("offering %s: non-positive GDD thresholds: %w", offering.Key(), ErrIncompleteModel)
	}
	if out.PeakGdd < out.MaturityGdd || out.PeakGdd > out.MaturityGdd+out.WindowGdd {
		return fmt.Errorf("offering %s: peak %0.f outside window [%0.f, %0.f]: %w",
			offering.Key(), out.PeakGdd, out.MaturityGdd, out.MaturityGdd+out.WindowGdd, ErrIncompleteModel)
	}
	return nil
}

func incomplete(offering RegionalOffering, field string) error {
	return fmt.Errorf("offering %s: missing %s: %w", offering.Key(), field, ErrIncompleteModel)
}
