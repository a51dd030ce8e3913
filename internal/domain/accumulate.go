package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/montanaflynn/stats"
)

// TrailingRateDays is the window for the recent average daily accumulation
// rate. Wide enough to smooth day-to-day noise, short enough to track the
// seasonal trend; it also matches the 21-day "approaching" horizon so the
// rate driving a near-term projection reflects comparable recency.
const TrailingRateDays = 21

// DailyMean is one day's observed mean temperature for a region, in °F.
type DailyMean struct {
	Date  time.Time
	TempF float64
}

// WeatherSource supplies daily mean temperature observations for a region
// over a date range, inclusive on both ends. Implementations return
// ErrDataUnavailable (possibly wrapped) when the region has no coverage.
type WeatherSource interface {
	DailyMeans(ctx context.Context, region Region, from, to time.Time) ([]DailyMean, error)
}

// GddAccumulation is the ephemeral accumulation state computed per
// (region, reference date, base temperature).
type GddAccumulation struct {
	TotalGdd    float64
	AvgDailyGdd float64
	RateStdDev  float64 // std dev of the trailing daily series; instability input to confidence
	Days        int
}

// Accumulate computes cumulative growing degree days and the trailing
// average daily rate from a mean-temperature series. Pure function of its
// inputs; deterministic for a given series.
func Accumulate(series []DailyMean, baseTemp float64) (GddAccumulation, error) {
	if len(series) == 0 {
		return GddAccumulation{}, fmt.Errorf("empty temperature series: %w", ErrDataUnavailable)
	}

	daily := make([]float64, len(series))
	total := 0.0
	for i, d := range series {
		gdd := d.TempF - baseTemp
		if gdd < 0 {
			gdd = 0
		}
		daily[i] = gdd
		total += gdd
	}

	trailing := daily
	if len(trailing) > TrailingRateDays {
		trailing = trailing[len(trailing)-TrailingRateDays:]
	}

	avg, err := stats.Mean(trailing)
	if err != nil {
		return GddAccumulation{}, fmt.Errorf("trailing mean: %w", err)
	}
	stddev, err := stats.StandardDeviation(trailing)
	if err != nil {
		return GddAccumulation{}, fmt.Errorf("trailing stddev: %w", err)
	}

	return GddAccumulation{
		TotalGdd:    total,
		AvgDailyGdd: avg,
		RateStdDev:  stddev,
		Days:        len(series),
	}, nil
}

// CycleStart returns January 1 of the year containing today, the reference
// date accumulation runs from.
func CycleStart(today time.Time) time.Time {
	return time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
