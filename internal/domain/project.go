package domain

import (
	"math"
	"time"
)

const (
	// minProjectableRate is the daily rate below which linear projection is
	// meaningless (deep winter, no growth). Not an error: the window is
	// pushed out to the dormancy horizon at floor confidence.
	minProjectableRate = 0.01

	// dormantHorizonDays stands in for "unresolved" when the accumulation
	// rate is too low to project. A year out keeps the window finite and
	// sortable without ever landing in the approaching cutoff.
	dormantHorizonDays = 365

	// maxProjectionDays caps a projected date so a trickle rate cannot
	// produce a date decades out.
	maxProjectionDays = 730

	floorConfidence = 0.05
	ceilConfidence  = 0.99
)

// HarvestWindow is the projected season for one offering: all calendar
// dates at day granularity, confidence in [0,1].
type HarvestWindow struct {
	HarvestStart time.Time
	PeakStart    time.Time
	PeakEnd      time.Time
	HarvestEnd   time.Time
	Confidence   float64
}

// Contains reports whether the day falls inside the harvest window,
// inclusive on both ends.
func (w HarvestWindow) Contains(day time.Time) bool {
	return !day.Before(w.HarvestStart) && !day.After(w.HarvestEnd)
}

// Project computes the harvest window for a resolved model. GDD models need
// an accumulation; calendar models only need today.
func Project(m ResolvedModel, acc GddAccumulation, today time.Time) HarvestWindow {
	if m.Model == ModelCalendar {
		return ProjectCalendar(m.PeakMonths, today)
	}
	return ProjectGdd(m, acc, today)
}

// ProjectGdd converts GDD thresholds to calendar dates by linear projection
// from today at the trailing average daily rate. Thresholds the accumulation
// has already passed project to today. A non-positive rate yields a
// floor-confidence window at the dormancy horizon instead of a division by
// zero or a negative date.
func ProjectGdd(m ResolvedModel, acc GddAccumulation, today time.Time) HarvestWindow {
	harvestEndGdd := m.MaturityGdd + m.WindowGdd
	// Peak runs from the peak threshold to the midpoint between it and the
	// window end; quality holds for roughly half the remaining window.
	peakEndGdd := (m.PeakGdd + harvestEndGdd) / 2

	w := HarvestWindow{
		HarvestStart: projectThreshold(m.MaturityGdd, acc, today),
		PeakStart:    projectThreshold(m.PeakGdd, acc, today),
		PeakEnd:      projectThreshold(peakEndGdd, acc, today),
		HarvestEnd:   projectThreshold(harvestEndGdd, acc, today),
	}

	if acc.AvgDailyGdd <= minProjectableRate {
		w.Confidence = floorConfidence
		return w
	}
	w.Confidence = gddConfidence(acc, w, today)
	return w
}

// projectThreshold maps one GDD threshold to a calendar date.
func projectThreshold(thresholdGdd float64, acc GddAccumulation, today time.Time) time.Time {
	if acc.TotalGdd >= thresholdGdd {
		return today // already occurred
	}
	if acc.AvgDailyGdd <= minProjectableRate {
		return today.AddDate(0, 0, dormantHorizonDays)
	}
	days := (thresholdGdd - acc.TotalGdd) / acc.AvgDailyGdd
	if days > maxProjectionDays {
		days = maxProjectionDays
	}
	return today.AddDate(0, 0, int(math.Round(days)))
}

// gddConfidence scores a projected window: decays monotonically with the
// instability of the accumulation rate (coefficient of variation of the
// trailing series) and with distance from the window.
func gddConfidence(acc GddAccumulation, w HarvestWindow, today time.Time) float64 {
	conf := 0.95

	cv := acc.RateStdDev / acc.AvgDailyGdd
	conf -= 0.3 * math.Min(1, cv)

	conf -= 0.4 * math.Min(1, float64(daysFromWindow(w, today))/180)

	return clampConfidence(conf)
}

// ProjectCalendar maps a peak-month list onto its nearest occurrence
// relative to today, handling year wraparound for winter-spanning seasons
// (e.g. [11,12,1]). The harvest window opens with the first peak month and
// closes one month after the last peak month ends; peak and harvest start
// coincide because calendar cultivars only declare their peak.
func ProjectCalendar(peakMonths []int, today time.Time) HarvestWindow {
	spanMonths := calendarSpanMonths(peakMonths)
	firstMonth := time.Month(peakMonths[0])

	// Try the occurrence anchored in last year, this year, then next year;
	// the first whose window has not fully passed is the one to show. A
	// season that began last November is still this January's season.
	for _, yearOffset := range []int{-1, 0, 1} {
		w := calendarOccurrence(today.Year()+yearOffset, firstMonth, spanMonths)
		if !today.After(w.HarvestEnd) {
			w.Confidence = calendarConfidence(w, today)
			return w
		}
	}
	w := calendarOccurrence(today.Year()+1, firstMonth, spanMonths)
	w.Confidence = calendarConfidence(w, today)
	return w
}

// calendarSpanMonths counts the months the peak covers, following the
// season-ordered list across year boundaries: [11,12,1] spans three months.
func calendarSpanMonths(peakMonths []int) int {
	span := 1
	for i := 1; i < len(peakMonths); i++ {
		step := peakMonths[i] - peakMonths[i-1]
		if step <= 0 {
			step += 12
		}
		span += step
	}
	return span
}

// calendarOccurrence builds the window for the occurrence whose first peak
// month falls in the given year.
func calendarOccurrence(year int, firstMonth time.Month, spanMonths int) HarvestWindow {
	peakStart := time.Date(year, firstMonth, 1, 0, 0, 0, 0, time.UTC)
	return HarvestWindow{
		HarvestStart: peakStart,
		PeakStart:    peakStart,
		PeakEnd:      peakStart.AddDate(0, spanMonths, -1),
		HarvestEnd:   peakStart.AddDate(0, spanMonths+1, -1),
	}
}

// calendarConfidence is high inside the peak, slightly lower in the tail of
// the window, and decays with distance outside it. Calendar models carry no
// rate signal, so distance is the only decay term.
func calendarConfidence(w HarvestWindow, today time.Time) float64 {
	if !today.Before(w.PeakStart) && !today.After(w.PeakEnd) {
		return 0.9
	}
	if w.Contains(today) {
		return 0.8
	}
	dist := float64(daysFromWindow(w, today))
	return clampConfidence(0.8 - 0.5*math.Min(1, dist/182))
}

// daysFromWindow returns the whole-day distance from today to the window: 0
// inside, days until the start before it, days since the end after it.
func daysFromWindow(w HarvestWindow, today time.Time) int {
	if w.Contains(today) {
		return 0
	}
	if today.Before(w.HarvestStart) {
		return daysBetween(today, w.HarvestStart)
	}
	return daysBetween(w.HarvestEnd, today)
}

// daysBetween returns whole days from a to b at day granularity.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func clampConfidence(c float64) float64 {
	if c < floorConfidence {
		return floorConfidence
	}
	if c > ceilConfidence {
		return ceilConfidence
	}
	return c
}
