// Package httpapi exposes the discovery feed plus health, readiness, and
// metrics endpoints over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/peakseason/harvest-engine/internal/discovery"
)

// Discoverer serves the bucketed discovery feed.
type Discoverer interface {
	Discover(ctx context.Context, loc *discovery.Location, filters discovery.Filters) (discovery.Feed, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the discovery API.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the discovery route and the
// standard operational endpoints.
func NewServer(addr string, disc Discoverer, ready ReadinessChecker, corsOrigins []string, logger *slog.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", handleReady(ready))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/api/discover", s.handleDiscover(disc))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleDiscover parses lat/lon and filters, runs the aggregation, and maps
// a total prediction failure to 503. Partial failures are invisible here;
// they were dropped during aggregation.
func (s *Server) handleDiscover(disc Discoverer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc, err := parseLocation(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		filters, err := parseFilters(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		feed, err := disc.Discover(r.Context(), loc, filters)
		if err != nil {
			if errors.Is(err, discovery.ErrAllUnavailable) {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "predictions temporarily unavailable"})
				return
			}
			s.logger.Error("discovery failed", "error", err, "request_id", requestIDFrom(r.Context()))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
			return
		}
		writeJSON(w, http.StatusOK, feed)
	}
}

func parseLocation(r *http.Request) (*discovery.Location, error) {
	latStr := r.URL.Query().Get("lat")
	lonStr := r.URL.Query().Get("lon")
	if latStr == "" && lonStr == "" {
		return nil, nil
	}
	if latStr == "" || lonStr == "" {
		return nil, errors.New("lat and lon must be supplied together")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil || lat < -90 || lat > 90 {
		return nil, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil || lon < -180 || lon > 180 {
		return nil, errors.New("invalid lon")
	}
	return &discovery.Location{Lat: lat, Lon: lon}, nil
}

func parseFilters(r *http.Request) (discovery.Filters, error) {
	q := r.URL.Query()
	f := discovery.Filters{
		Statuses:   splitList(q.Get("status")),
		Categories: splitList(q.Get("category")),
	}
	if v := q.Get("maxDistance"); v != "" {
		d, err := strconv.ParseFloat(v, 64)
		if err != nil || d <= 0 {
			return discovery.Filters{}, errors.New("invalid maxDistance")
		}
		f.MaxDistanceMiles = d
	}
	return f, nil
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
