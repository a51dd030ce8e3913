// Package openmeteo implements domain.WeatherSource against the Open-Meteo
// historical weather API. The engine only depends on the daily-mean
// temperature contract, not on this vendor.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/peakseason/harvest-engine/internal/domain"
)

const dateFormat = "2006-01-02"

// Client fetches daily mean temperatures from the Open-Meteo archive API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates an Open-Meteo client. baseURL is the API root, e.g.
// "https://archive-api.open-meteo.com".
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// DailyMeans returns the region's observed mean temperature series for
// [from, to], in °F. Missing coverage maps to domain.ErrDataUnavailable so
// aggregation can skip the region without aborting the batch.
func (c *Client) DailyMeans(ctx context.Context, region domain.Region, from, to time.Time) ([]domain.DailyMean, error) {
	params := url.Values{
		"latitude":         {fmt.Sprintf("%.4f", region.Lat)},
		"longitude":        {fmt.Sprintf("%.4f", region.Lon)},
		"start_date":       {from.Format(dateFormat)},
		"end_date":         {to.Format(dateFormat)},
		"daily":            {"temperature_2m_mean"},
		"temperature_unit": {"fahrenheit"},
		"timezone":         {"UTC"},
	}
	fullURL := c.baseURL + "/v1/archive?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("region %s weather request: %w: %w", region.ID, domain.ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("region %s: open-meteo status %d: %s: %w", region.ID, resp.StatusCode, body, domain.ErrDataUnavailable)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	series := payload.toSeries()
	if len(series) == 0 {
		return nil, fmt.Errorf("region %s: no observations in range: %w", region.ID, domain.ErrDataUnavailable)
	}
	return series, nil
}

// Open-Meteo API response types.

type response struct {
	Daily daily `json:"daily"`
}

type daily struct {
	Time     []string   `json:"time"`
	TempMean []*float64 `json:"temperature_2m_mean"` // null for days without coverage
}

// toSeries pairs dates with non-null observations, skipping days the
// archive has not backfilled yet.
func (r response) toSeries() []domain.DailyMean {
	n := len(r.Daily.Time)
	if len(r.Daily.TempMean) < n {
		n = len(r.Daily.TempMean)
	}

	series := make([]domain.DailyMean, 0, n)
	for i := 0; i < n; i++ {
		if r.Daily.TempMean[i] == nil {
			continue
		}
		date, err := time.Parse(dateFormat, r.Daily.Time[i])
		if err != nil {
			continue
		}
		series = append(series, domain.DailyMean{Date: date, TempF: *r.Daily.TempMean[i]})
	}
	return series
}
