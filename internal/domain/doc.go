// Package domain implements the harvest-prediction engine: growing-degree-day
// accumulation, cultivar model resolution, harvest-window projection, status
// classification, and fruit-quality estimation.
//
// # Growing Degree Days
//
// A growing degree day (GDD) is a unit of accumulated heat above a
// crop-specific base temperature, used as a biological clock for crop
// development independent of the calendar:
//
//	dailyGdd = max(0, dailyMeanTemp - baseTemp)
//
// Temperatures are in degrees Fahrenheit throughout (US horticultural
// convention; base 50°F is typical for warm-season crops, 55°F for citrus).
// Accumulation runs from January 1 of the current cycle through the present.
// The trailing 21-day average daily accumulation projects thresholds forward;
// its standard deviation feeds confidence scoring.
//
// # Cultivar Models
//
// Every cultivar is governed by exactly one model type:
//
//	gdd      - maturity, peak, and window-width thresholds in GDD units,
//	           converted to calendar dates by linear projection from today.
//	calendar - an ordered list of peak months; the harvest window opens on
//	           the first day of the first peak month and closes one month
//	           after the last peak month ends.
//	parent   - no thresholds of its own; timing is inherited from a
//	           referenced ancestor cultivar (e.g. a juice product derived
//	           from an orange cultivar). Chains resolve transitively and
//	           must terminate in a non-parent ancestor.
//
// Per-region offerings may override any threshold field; the effective value
// is always offeringOverride ?? cultivarDefault.
//
// # Status Taxonomy
//
// Over a season a window passes through six states in order:
//
//	pre_season → approaching → in_season → at_peak → past_peak → ended
//
// The discovery feed collapses these to four buckets:
//
//	off_season | approaching | in_season | at_peak
//
// "approaching" uses a hard 21-day cutoff before the window opens. Boundary
// days are inclusive on the peak window and on the harvest end date.
//
// # Error Conditions
//
// Per-offering failures are recoverable: callers skip the offering and log,
// never aborting a batch. [ErrDataUnavailable] marks missing weather
// coverage, [ErrIncompleteModel] a threshold the resolved model type needs
// but no layer supplies, and [ErrInvalidCultivarChain] a cyclic or too-deep
// parent reference. A near-zero accumulation rate is not an error: winter
// dormancy is a valid state and produces a low-confidence window instead.
package domain
