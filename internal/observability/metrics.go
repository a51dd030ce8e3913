package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// harvest prediction engine.
type Metrics struct {
	DiscoveryRequests prometheus.Counter
	DiscoveryDuration prometheus.Histogram

	PredictionsComputed prometheus.Counter
	OfferingsSkipped    *prometheus.CounterVec // labels: reason={data_unavailable,incomplete_model,invalid_chain}

	WeatherFetches      *prometheus.CounterVec // labels: outcome={success,error}
	WeatherFetchSeconds prometheus.Histogram

	PredictionCache *prometheus.CounterVec // labels: result={hit,miss}

	CatalogOfferings prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DiscoveryRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harvest_engine",
			Name:      "discovery_requests_total",
			Help:      "Total discovery feed requests served.",
		}),
		DiscoveryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "harvest_engine",
			Name:      "discovery_duration_seconds",
			Help:      "Duration of a discovery request, including any cache refill.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "harvest_engine",
			Name:      "predictions_computed_total",
			Help:      "Total per-offering predictions computed (cache refills only).",
		}),
		OfferingsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harvest_engine",
			Name:      "offerings_skipped_total",
			Help:      "Offerings dropped from an aggregation by failure reason.",
		}, []string{"reason"}),
		WeatherFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harvest_engine",
			Name:      "weather_fetches_total",
			Help:      "Per-region weather fetches by outcome.",
		}, []string{"outcome"}),
		WeatherFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "harvest_engine",
			Name:      "weather_fetch_duration_seconds",
			Help:      "Weather source request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PredictionCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "harvest_engine",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache lookups by result.",
		}, []string{"result"}),
		CatalogOfferings: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "harvest_engine",
			Name:      "catalog_offerings",
			Help:      "Active offerings in the loaded catalog.",
		}),
	}

	prometheus.MustRegister(
		m.DiscoveryRequests,
		m.DiscoveryDuration,
		m.PredictionsComputed,
		m.OfferingsSkipped,
		m.WeatherFetches,
		m.WeatherFetchSeconds,
		m.PredictionCache,
		m.CatalogOfferings,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DiscoveryRequests:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "harvest_engine", Name: "discovery_requests_total"}),
		DiscoveryDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "harvest_engine", Name: "discovery_duration_seconds"}),
		PredictionsComputed: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "harvest_engine", Name: "predictions_computed_total"}),
		OfferingsSkipped:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "harvest_engine", Name: "offerings_skipped_total"}, []string{"reason"}),
		WeatherFetches:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "harvest_engine", Name: "weather_fetches_total"}, []string{"outcome"}),
		WeatherFetchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "harvest_engine", Name: "weather_fetch_duration_seconds"}),
		PredictionCache:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "harvest_engine", Name: "prediction_cache_total"}, []string{"result"}),
		CatalogOfferings:    prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "harvest_engine", Name: "catalog_offerings"}),
	}
}
