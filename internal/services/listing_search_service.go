package services

import (
	"context"
	"net/http"
	"time"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/internal/repositories"
	"listing-search/pkg/cache"
	"listing-search/pkg/config"
	"listing-search/pkg/logger"
	"listing-search/pkg/metrics"

	"golang.org/x/sync/singleflight"
)

const fetchTimeout = 30 * time.Second

type ListingSearchService struct {
	fetcher UnfilteredFetcher
	cache   repositories.SnapshotCache
	cfg     config.SearchConfig
	ttl     time.Duration
	dedupe  bool
	group   singleflight.Group
}

func NewListingSearchService(
	fetcher UnfilteredFetcher,
	snapshotCache repositories.SnapshotCache,
	searchCfg config.SearchConfig,
	ttl time.Duration,
) *ListingSearchService {
	return &ListingSearchService{
		fetcher: fetcher,
		cache:   snapshotCache,
		cfg:     searchCfg,
		ttl:     ttl,
		dedupe:  searchCfg.Dedupe(),
	}
}

// Normalize applies the price clamp and treats a one bedroom minimum as no minimum so
// studios are listed.
func (s *ListingSearchService) Normalize(c models.SearchCriteria) models.SearchCriteria {
	if c.MaxPrice >= s.cfg.PriceFilterCeiling {
		c.MaxPrice = s.cfg.MaxPriceCap
	}
	if c.Bedrooms == 1 {
		c.Bedrooms = 0
	}
	return c
}

// Search returns every listing matching c, sorted, with the pre- and post-bounds counts.
func (s *ListingSearchService) Search(ctx context.Context, c models.SearchCriteria) (models.SearchResult, error) {
	if err := c.DateRange.Validate(); err != nil {
		return models.SearchResult{}, err
	}
	c = s.Normalize(c)

	snapshots, err := s.snapshots(ctx, c.Scope, c.DateRange, c.IncludeTestMarkets)
	if err != nil {
		return models.SearchResult{}, err
	}

	result := FilterListings(snapshots, c)
	if c.Sort != "" && !IsSortField(c.Sort) {
		logger.GlobalLogger.Debugf("ignoring unknown sort field %q", c.Sort)
	}
	SortListings(result.Listings, c.Sort)
	return result, nil
}

// snapshots serves the unfiltered set from cache, loading it on a miss. Test-market
// searches share the production key format, so they bypass the cache entirely.
func (s *ListingSearchService) snapshots(ctx context.Context, scope models.Scope, dr models.DateRange, includeTestMarkets bool) ([]models.ListingSnapshot, error) {
	if includeTestMarkets {
		return s.fetcher.FetchUnfiltered(ctx, scope, dr, true)
	}

	key := cache.NewListingsKey(scope.MarketID, scope.BuildingID, scope.ComplexID, dr.Checkin, dr.Checkout)
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		logger.GlobalLogger.Warnf("snapshot cache get %s failed, loading from store: %v", key, err)
	}
	if ok {
		metrics.CacheHitsTotal.Inc()
		return cached, nil
	}
	metrics.CacheMissesTotal.Inc()

	if !s.dedupe {
		return s.load(ctx, key, scope, dr)
	}
	ch := s.group.DoChan(key.String(), func() (interface{}, error) {
		// waiters share this fetch, so one caller going away must not cancel it
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()
		return s.load(fetchCtx, key, scope, dr)
	})
	select {
	case <-ctx.Done():
		// the shared fetch keeps running and still fills the cache
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.GlobalLogger.Debugf("shared in-flight fetch for %s", key)
		}
		return res.Val.([]models.ListingSnapshot), nil
	}
}

func (s *ListingSearchService) load(ctx context.Context, key cache.ListingsKey, scope models.Scope, dr models.DateRange) ([]models.ListingSnapshot, error) {
	snapshots, err := s.fetcher.FetchUnfiltered(ctx, scope, dr, false)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Put(ctx, key, snapshots, s.ttl); err != nil {
		logger.GlobalLogger.Warnf("snapshot cache put %s failed: %v", key, err)
	}
	return snapshots, nil
}

// Invalidate drops every cached snapshot set of the market whose range overlaps dr.
// A put racing with this call may land afterwards; the last write wins.
func (s *ListingSearchService) Invalidate(ctx context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error) {
	if err := dr.Validate(); err != nil {
		return models.InvalidationReport{}, err
	}
	report, err := s.cache.Invalidate(ctx, marketID, dr)
	metrics.CacheInvalidatedKeysTotal.Add(float64(len(report.Deleted)))
	metrics.CacheSkippedKeysTotal.Add(float64(len(report.Skipped)))
	if err != nil {
		logger.GlobalLogger.Errorf("invalidating market %d for %s failed: %v", marketID, dr, err)
		return report, apperrors.NewAppError(err.Error(), apperrors.MsgServiceUnavailable,
			apperrors.ErrCodeServiceUnavailable, http.StatusServiceUnavailable, err)
	}
	logger.GlobalLogger.Printf("invalidated %d cache entries for market %d %s (%d skipped)",
		len(report.Deleted), marketID, dr, len(report.Skipped))
	return report, nil
}

// Ping checks the cache backend.
func (s *ListingSearchService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
