package domain_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakseason/harvest-engine/internal/domain"
)

func day(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return d
}

// constantSeries builds n consecutive days at a fixed mean temperature.
func constantSeries(t *testing.T, start string, n int, tempF float64) []domain.DailyMean {
	t.Helper()
	first := day(t, start)
	series := make([]domain.DailyMean, n)
	for i := range series {
		series[i] = domain.DailyMean{Date: first.AddDate(0, 0, i), TempF: tempF}
	}
	return series
}

func TestAccumulate_SumsAboveBase(t *testing.T) {
	series := constantSeries(t, "2026-01-01", 10, 65)

	acc, err := domain.Accumulate(series, 55)
	require.NoError(t, err)

	assert.InDelta(t, 100.0, acc.TotalGdd, 1e-9) // 10 days × 10 GDD
	assert.InDelta(t, 10.0, acc.AvgDailyGdd, 1e-9)
	assert.InDelta(t, 0.0, acc.RateStdDev, 1e-9)
	assert.Equal(t, 10, acc.Days)
}

func TestAccumulate_ClampsBelowBase(t *testing.T) {
	series := []domain.DailyMean{
		{Date: day(t, "2026-01-01"), TempF: 40}, // below base, contributes 0
		{Date: day(t, "2026-01-02"), TempF: 55}, // at base, contributes 0
		{Date: day(t, "2026-01-03"), TempF: 60},
	}

	acc, err := domain.Accumulate(series, 55)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, acc.TotalGdd, 1e-9)
}

func TestAccumulate_TrailingAverageUsesRecentWindow(t *testing.T) {
	// 40 cold days followed by 21 warm days: the trailing average must
	// reflect only the warm stretch.
	series := constantSeries(t, "2026-01-01", 40, 55)
	series = append(series, constantSeries(t, "2026-02-10", domain.TrailingRateDays, 67)...)

	acc, err := domain.Accumulate(series, 55)
	require.NoError(t, err)

	assert.InDelta(t, 12.0, acc.AvgDailyGdd, 1e-9)
	assert.InDelta(t, 252.0, acc.TotalGdd, 1e-9)
}

func TestAccumulate_Deterministic(t *testing.T) {
	series := constantSeries(t, "2026-03-01", 30, 62.5)

	a1, err := domain.Accumulate(series, 50)
	require.NoError(t, err)
	a2, err := domain.Accumulate(series, 50)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(a1, a2))
}

func TestAccumulate_EmptySeriesIsDataUnavailable(t *testing.T) {
	_, err := domain.Accumulate(nil, 55)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)
}

func TestCycleStart(t *testing.T) {
	assert.Equal(t, day(t, "2026-01-01"), domain.CycleStart(day(t, "2026-08-27")))
}
