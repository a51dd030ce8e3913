package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/peakseason/harvest-engine/internal/domain"
	"github.com/peakseason/harvest-engine/internal/observability"
)

// ErrAllUnavailable is returned when every active offering failed to
// predict (e.g. the weather source is fully down). Partial failures never
// surface here; they are dropped per offering and logged.
var ErrAllUnavailable = errors.New("no offerings could be predicted")

const itemDateFormat = "2006-01-02"

// Aggregator runs the full prediction chain across the catalog: one weather
// fetch per distinct region, then resolve → project → classify → estimate
// per offering, cached per hour bucket.
type Aggregator struct {
	catalog         *domain.Catalog
	weather         domain.WeatherSource
	cache           *PredictionCache
	logger          *slog.Logger
	metrics         *observability.Metrics
	approachingDays int
	concurrency     int
	ready           atomic.Bool
}

// New creates an Aggregator. concurrency bounds the parallel per-region
// weather fan-out.
func New(catalog *domain.Catalog, weather domain.WeatherSource, cache *PredictionCache,
	logger *slog.Logger, metrics *observability.Metrics, approachingDays, concurrency int) *Aggregator {
	return &Aggregator{
		catalog:         catalog,
		weather:         weather,
		cache:           cache,
		logger:          logger,
		metrics:         metrics,
		approachingDays: approachingDays,
		concurrency:     concurrency,
	}
}

// CheckReadiness returns nil once at least one aggregation has succeeded.
func (a *Aggregator) CheckReadiness(_ context.Context) error {
	if !a.ready.Load() {
		return errors.New("no prediction set computed yet")
	}
	return nil
}

// Warm computes the prediction set ahead of the first request.
func (a *Aggregator) Warm(ctx context.Context) error {
	_, err := a.basePredictions(ctx)
	return err
}

// Discover returns the bucketed feed for a caller. The underlying
// prediction set is cached; distance, filtering, and sorting run per
// request.
func (a *Aggregator) Discover(ctx context.Context, loc *Location, filters Filters) (Feed, error) {
	start := time.Now()
	a.metrics.DiscoveryRequests.Inc()

	items, err := a.basePredictions(ctx)
	if err != nil {
		return Feed{}, err
	}

	feed := buildFeed(items, loc, filters)
	a.metrics.DiscoveryDuration.Observe(time.Since(start).Seconds())
	return feed, nil
}

// basePredictions returns the distance-independent prediction set, from
// cache when the hour bucket and TTL allow. Concurrent misses may compute
// twice; the duplicate Put is an equivalent, benign overwrite.
func (a *Aggregator) basePredictions(ctx context.Context) ([]Item, error) {
	if items, ok := a.cache.Get(); ok {
		a.metrics.PredictionCache.WithLabelValues("hit").Inc()
		return items, nil
	}
	a.metrics.PredictionCache.WithLabelValues("miss").Inc()

	items, err := a.computePredictions(ctx)
	if err != nil {
		return nil, err
	}
	a.cache.Put(items)
	a.ready.Store(true)
	return items, nil
}

// computePredictions fans out one weather fetch per distinct region and
// assembles items for every active offering. A single offering's failure is
// dropped and logged, never fatal; only the total loss of every offering
// becomes an error.
func (a *Aggregator) computePredictions(ctx context.Context) ([]Item, error) {
	today := domain.Today()
	byRegion := a.catalog.ActiveOfferings()

	var (
		mu        sync.Mutex
		items     []Item
		attempted int
	)

	g := &errgroup.Group{}
	g.SetLimit(a.concurrency)

	for regionID, offerings := range byRegion {
		regionID, offerings := regionID, offerings
		g.Go(func() error {
			regionItems := a.predictRegion(ctx, regionID, offerings, today)
			mu.Lock()
			items = append(items, regionItems...)
			attempted += len(offerings)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures are per-offering skips

	if attempted > 0 && len(items) == 0 {
		return nil, ErrAllUnavailable
	}

	a.metrics.PredictionsComputed.Add(float64(len(items)))
	return items, nil
}

// predictRegion runs the prediction chain for every offering in one region,
// fetching the region's temperature series at most once.
func (a *Aggregator) predictRegion(ctx context.Context, regionID string, offerings []domain.RegionalOffering, today time.Time) []Item {
	region := a.catalog.Regions[regionID]

	type resolved struct {
		offering domain.RegionalOffering
		model    domain.ResolvedModel
	}
	models := make([]resolved, 0, len(offerings))
	needWeather := false

	for _, o := range offerings {
		m, err := domain.Resolve(a.catalog, o)
		if err != nil {
			a.skip(o, err)
			continue
		}
		if m.Model == domain.ModelGdd {
			needWeather = true
		}
		models = append(models, resolved{offering: o, model: m})
	}

	var series []domain.DailyMean
	if needWeather {
		var err error
		series, err = a.fetchSeries(ctx, region, today)
		if err != nil {
			a.logger.Warn("region weather fetch failed, skipping gdd offerings",
				"region_id", regionID,
				"error", err,
			)
		}
	}

	out := make([]Item, 0, len(models))
	for _, r := range models {
		item, err := a.predictOffering(r.offering, r.model, region, series, today)
		if err != nil {
			a.skip(r.offering, err)
			continue
		}
		out = append(out, item)
	}
	return out
}

// fetchSeries pulls the region's daily means from cycle start through today.
func (a *Aggregator) fetchSeries(ctx context.Context, region domain.Region, today time.Time) ([]domain.DailyMean, error) {
	start := time.Now()
	series, err := a.weather.DailyMeans(ctx, region, domain.CycleStart(today), today)
	a.metrics.WeatherFetchSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		a.metrics.WeatherFetches.WithLabelValues("error").Inc()
		return nil, err
	}
	a.metrics.WeatherFetches.WithLabelValues("success").Inc()
	return series, nil
}

// predictOffering builds one DiscoveryItem from a resolved model.
func (a *Aggregator) predictOffering(o domain.RegionalOffering, m domain.ResolvedModel,
	region domain.Region, series []domain.DailyMean, today time.Time) (Item, error) {

	product, err := a.catalog.ProductForCultivar(o.CultivarID)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %w", domain.ErrIncompleteModel, err)
	}
	cultivar := a.catalog.Cultivars[o.CultivarID]

	var acc domain.GddAccumulation
	if m.Model == domain.ModelGdd {
		if len(series) == 0 {
			return Item{}, fmt.Errorf("region %s: %w", region.ID, domain.ErrDataUnavailable)
		}
		acc, err = domain.Accumulate(series, m.BaseTemp)
		if err != nil {
			return Item{}, err
		}
	}

	window := domain.Project(m, acc, today)
	status := domain.Classify(window, today, a.approachingDays)

	item := Item{
		OfferingID:  o.Key(),
		CultivarID:  o.CultivarID,
		RegionID:    o.RegionID,
		DisplayName: cultivar.Name,
		RegionName:  region.Name,
		Category:    product.Category,
		Subcategory: product.Subcategory,
		QualityTier: o.QualityTier,

		Status:        domain.FeedStatus(status.Status),
		StatusMessage: status.Message,
		HarvestStart:  window.HarvestStart.Format(itemDateFormat),
		HarvestEnd:    window.HarvestEnd.Format(itemDateFormat),
		OptimalStart:  window.PeakStart.Format(itemDateFormat),
		OptimalEnd:    window.PeakEnd.Format(itemDateFormat),
		Confidence:    math.Round(window.Confidence*100) / 100,

		regionLat: region.Lat,
		regionLon: region.Lon,
	}
	if item.Status == domain.StatusApproaching {
		item.DaysUntilStart = status.DaysUntil
	}

	// Sugar/acid is meaningful only where heat accumulation is tracked.
	if m.Model == domain.ModelGdd && domain.IsCitrus(product) {
		q := domain.EstimateSugarAcid(acc.TotalGdd)
		item.Brix = &q.SSC
		item.Acidity = &q.TA
		item.Ratio = &q.Ratio
	}

	return item, nil
}

// skip drops one offering from the current aggregation, logging enough
// context to fix the catalog, and counts the reason.
func (a *Aggregator) skip(o domain.RegionalOffering, err error) {
	a.metrics.OfferingsSkipped.WithLabelValues(skipReason(err)).Inc()
	a.logger.Warn("offering skipped",
		"cultivar_id", o.CultivarID,
		"region_id", o.RegionID,
		"error", err,
	)
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, domain.ErrIncompleteModel):
		return "incomplete_model"
	case errors.Is(err, domain.ErrInvalidCultivarChain):
		return "invalid_chain"
	default:
		return "other"
	}
}
