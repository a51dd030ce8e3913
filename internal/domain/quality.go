package domain

import (
	"math"
	"strings"
)

// SugarAcid estimates fruit internal quality from accumulated heat. Defined
// only for citrus-family cultivars; other categories carry no estimate.
type SugarAcid struct {
	SSC   float64 // soluble solids content, °Brix
	TA    float64 // titratable acidity, % citric acid
	Ratio float64 // SSC / TA, the standard maturity ratio
	BrimA float64 // SSC - 4·TA, the BrimA palatability index
}

// Saturation curves for the sugar-acid model. Sugar rises and acid falls
// exponentially toward their asymptotes as heat accumulates, which keeps
// both strictly monotone while bounding them to plausible fruit chemistry:
// SSC in [5, 15) °Brix, TA in (0.4, 3.0] %.
const (
	sscFloor = 5.0
	sscSpan  = 10.0
	sscScale = 3000.0

	taFloor = 0.4
	taSpan  = 2.6
	taScale = 2500.0

	brimAAcidWeight = 4.0
)

// EstimateSugarAcid models sugar rising and acid falling with accumulated
// GDD. Monotone in totalGdd, outputs clamped to physically plausible bounds
// regardless of extreme inputs; TA never reaches zero so Ratio stays finite.
func EstimateSugarAcid(totalGdd float64) SugarAcid {
	if totalGdd < 0 {
		totalGdd = 0
	}

	ssc := sscFloor + sscSpan*(1-math.Exp(-totalGdd/sscScale))
	ta := taFloor + taSpan*math.Exp(-totalGdd/taScale)

	return SugarAcid{
		SSC:   round1(ssc),
		TA:    round2(ta),
		Ratio: round1(ssc / ta),
		BrimA: round1(ssc - brimAAcidWeight*ta),
	}
}

// IsCitrus reports whether a product belongs to the citrus family, the gate
// for sugar-acid estimation.
func IsCitrus(p Product) bool {
	return strings.EqualFold(p.Subcategory, "citrus")
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
func round2(v float64) float64 { return math.Round(v*100) / 100 }
