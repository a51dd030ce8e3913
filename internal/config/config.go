package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	CatalogDir string

	// Weather source configuration.
	WeatherBaseURL   string
	WeatherTimeout   time.Duration
	WeatherCacheSize int

	// Prediction cache and classification tuning.
	PredictionTTL    time.Duration
	ApproachingDays  int
	FetchConcurrency int
}

// Load reads configuration from environment variables, applying defaults
// where unset. A local .env file is honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	predictionTTL, err := parseDuration("PREDICTION_TTL", "30m")
	if err != nil {
		return nil, err
	}

	weatherCacheSize, err := parsePositiveInt("WEATHER_CACHE_SIZE", 256)
	if err != nil {
		return nil, err
	}
	approachingDays, err := parsePositiveInt("APPROACHING_DAYS", 21)
	if err != nil {
		return nil, err
	}
	fetchConcurrency, err := parsePositiveInt("FETCH_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CORSOrigins:     splitAndTrim(envOrDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),

		CatalogDir: envOrDefault("CATALOG_DIR", "catalog"),

		WeatherBaseURL:   envOrDefault("WEATHER_BASE_URL", "https://archive-api.open-meteo.com"),
		WeatherTimeout:   weatherTimeout,
		WeatherCacheSize: weatherCacheSize,

		PredictionTTL:    predictionTTL,
		ApproachingDays:  approachingDays,
		FetchConcurrency: fetchConcurrency,
	}

	if cfg.CatalogDir == "" {
		return nil, errors.New("CATALOG_DIR is required")
	}
	if cfg.WeatherBaseURL == "" {
		return nil, errors.New("WEATHER_BASE_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
