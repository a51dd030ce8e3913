package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakseason/harvest-engine/internal/domain"
)

func gddModel(baseTemp, maturity, peak, window float64) domain.ResolvedModel {
	return domain.ResolvedModel{
		Model:       domain.ModelGdd,
		BaseTemp:    baseTemp,
		MaturityGdd: maturity,
		PeakGdd:     peak,
		WindowGdd:   window,
	}
}

func TestProjectGdd_PreMaturityLinearProjection(t *testing.T) {
	today := day(t, "2026-06-01")
	acc := domain.GddAccumulation{TotalGdd: 800, AvgDailyGdd: 20, Days: 150}

	w := domain.ProjectGdd(gddModel(55, 1600, 1900, 900), acc, today)

	// (1600 - 800) / 20 = 40 days ahead.
	assert.Equal(t, today.AddDate(0, 0, 40), w.HarvestStart)
	// (1900 - 800) / 20 = 55 days ahead.
	assert.Equal(t, today.AddDate(0, 0, 55), w.PeakStart)
	// windowEnd GDD 2500, peakEnd GDD (1900+2500)/2 = 2200 → 70 days.
	assert.Equal(t, today.AddDate(0, 0, 70), w.PeakEnd)
	assert.Equal(t, today.AddDate(0, 0, 85), w.HarvestEnd)
}

func TestProjectGdd_PassedThresholdsProjectToToday(t *testing.T) {
	today := day(t, "2026-09-01")
	acc := domain.GddAccumulation{TotalGdd: 2000, AvgDailyGdd: 10, Days: 240}

	w := domain.ProjectGdd(gddModel(55, 1600, 1900, 900), acc, today)

	assert.Equal(t, today, w.HarvestStart, "maturity already accumulated")
	assert.Equal(t, today, w.PeakStart, "peak already accumulated")
	assert.True(t, w.PeakEnd.After(today))
}

func TestProjectGdd_ZeroRateDegeneracy(t *testing.T) {
	today := day(t, "2026-01-15")
	acc := domain.GddAccumulation{TotalGdd: 50, AvgDailyGdd: 0, Days: 15}

	w := domain.ProjectGdd(gddModel(55, 1600, 1900, 900), acc, today)

	// No growth is a valid state: a finite far-out window at floor
	// confidence, never a division by zero or a negative date.
	assert.Equal(t, today.AddDate(0, 0, 365), w.HarvestStart)
	assert.False(t, w.HarvestEnd.Before(w.HarvestStart))
	assert.InDelta(t, 0.05, w.Confidence, 1e-9)
}

func TestProjectGdd_TrickleRateIsCapped(t *testing.T) {
	today := day(t, "2026-02-01")
	acc := domain.GddAccumulation{TotalGdd: 10, AvgDailyGdd: 0.02, Days: 31}

	w := domain.ProjectGdd(gddModel(55, 1600, 1900, 900), acc, today)

	assert.False(t, w.HarvestStart.After(today.AddDate(0, 0, 730)))
}

func TestProjectGdd_MonotoneInTotalGdd(t *testing.T) {
	// More accumulated heat never moves the projected start further away.
	today := day(t, "2026-06-01")
	m := gddModel(55, 1600, 1900, 900)

	prev := time.Time{}
	for total := 0.0; total <= 3000; total += 50 {
		w := domain.ProjectGdd(m, domain.GddAccumulation{TotalGdd: total, AvgDailyGdd: 15, Days: 150}, today)
		if !prev.IsZero() {
			assert.False(t, w.HarvestStart.After(prev),
				"harvest start moved later when totalGdd rose to %v", total)
		}
		prev = w.HarvestStart
	}
}

func TestProjectGdd_ConfidenceDecaysWithInstability(t *testing.T) {
	today := day(t, "2026-06-01")
	m := gddModel(55, 1600, 1900, 900)

	stable := domain.ProjectGdd(m, domain.GddAccumulation{TotalGdd: 1500, AvgDailyGdd: 15, RateStdDev: 1, Days: 150}, today)
	noisy := domain.ProjectGdd(m, domain.GddAccumulation{TotalGdd: 1500, AvgDailyGdd: 15, RateStdDev: 12, Days: 150}, today)

	assert.Greater(t, stable.Confidence, noisy.Confidence)
}

func TestProjectGdd_ConfidenceDecaysWithDistance(t *testing.T) {
	today := day(t, "2026-06-01")
	m := gddModel(55, 1600, 1900, 900)

	near := domain.ProjectGdd(m, domain.GddAccumulation{TotalGdd: 1550, AvgDailyGdd: 15, RateStdDev: 2, Days: 150}, today)
	far := domain.ProjectGdd(m, domain.GddAccumulation{TotalGdd: 400, AvgDailyGdd: 15, RateStdDev: 2, Days: 150}, today)

	assert.Greater(t, near.Confidence, far.Confidence)
}

func TestProjectCalendar_SpanWithinYear(t *testing.T) {
	today := day(t, "2026-05-10")

	w := domain.ProjectCalendar([]int{4, 5, 6}, today)

	assert.Equal(t, day(t, "2026-04-01"), w.HarvestStart)
	assert.Equal(t, day(t, "2026-04-01"), w.PeakStart)
	assert.Equal(t, day(t, "2026-06-30"), w.PeakEnd)
	assert.Equal(t, day(t, "2026-07-31"), w.HarvestEnd)
}

func TestProjectCalendar_WinterWraparound(t *testing.T) {
	// Peak months [11,12,1] span a year boundary.
	today := day(t, "2026-12-15")

	w := domain.ProjectCalendar([]int{11, 12, 1}, today)

	assert.Equal(t, day(t, "2026-11-01"), w.PeakStart)
	assert.Equal(t, day(t, "2027-01-31"), w.PeakEnd)
	assert.Equal(t, day(t, "2027-02-28"), w.HarvestEnd)
}

func TestProjectCalendar_JanuaryBelongsToLastYearsSeason(t *testing.T) {
	// In January the season that began last November is still running; the
	// projector must not jump to next November's occurrence.
	today := day(t, "2027-01-10")

	w := domain.ProjectCalendar([]int{11, 12, 1}, today)

	assert.Equal(t, day(t, "2026-11-01"), w.PeakStart)
	assert.True(t, w.Contains(today))
}

func TestProjectCalendar_AfterSeasonRollsForward(t *testing.T) {
	today := day(t, "2026-08-15")

	w := domain.ProjectCalendar([]int{4, 5, 6}, today)

	assert.Equal(t, day(t, "2027-04-01"), w.PeakStart, "season fully past rolls to next year")
}

func TestProjectCalendar_ConfidenceHighestInPeak(t *testing.T) {
	peak := domain.ProjectCalendar([]int{4, 5, 6}, day(t, "2026-05-10"))
	tail := domain.ProjectCalendar([]int{4, 5, 6}, day(t, "2026-07-15"))
	farOut := domain.ProjectCalendar([]int{4, 5, 6}, day(t, "2026-12-01"))

	assert.Greater(t, peak.Confidence, tail.Confidence)
	assert.Greater(t, tail.Confidence, farOut.Confidence)
	require.GreaterOrEqual(t, farOut.Confidence, 0.05)
}
