package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/peakseason/harvest-engine/internal/adapter/httpapi"
	"github.com/peakseason/harvest-engine/internal/adapter/openmeteo"
	"github.com/peakseason/harvest-engine/internal/catalog"
	"github.com/peakseason/harvest-engine/internal/config"
	"github.com/peakseason/harvest-engine/internal/discovery"
	"github.com/peakseason/harvest-engine/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.CatalogDir)
	if err != nil {
		logger.Error("failed to load catalog", "dir", cfg.CatalogDir, "error", err)
		os.Exit(1)
	}
	active := 0
	for _, o := range cat.Offerings {
		if o.Active {
			active++
		}
	}
	metrics.CatalogOfferings.Set(float64(active))
	logger.Info("catalog loaded",
		"products", len(cat.Products),
		"cultivars", len(cat.Cultivars),
		"regions", len(cat.Regions),
		"active_offerings", active,
	)

	client := openmeteo.NewClient(cfg.WeatherBaseURL, cfg.WeatherTimeout, logger)
	weather := openmeteo.NewCachedSource(client, cfg.WeatherCacheSize)

	cache := discovery.NewPredictionCache(clockwork.NewRealClock(), cfg.PredictionTTL)
	agg := discovery.New(cat, weather, cache, logger, metrics, cfg.ApproachingDays, cfg.FetchConcurrency)

	srv := httpapi.NewServer(cfg.HTTPAddr, agg, agg, cfg.CORSOrigins, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm the prediction cache so readiness flips without waiting for the
	// first caller.
	go func() {
		if err := agg.Warm(ctx); err != nil {
			logger.Warn("prediction warmup failed, first request will retry", "error", err)
		}
	}()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
