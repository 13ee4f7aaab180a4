package repositories

import (
	"context"
	"errors"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/cache"
	"listing-search/pkg/logger"
)

type redisSnapshotCache struct {
	store cache.CacheOperations
}

func NewRedisSnapshotCache(store cache.CacheOperations) SnapshotCache {
	return &redisSnapshotCache{store: store}
}

func (c *redisSnapshotCache) Get(ctx context.Context, key cache.ListingsKey) ([]models.ListingSnapshot, bool, error) {
	var snapshots []models.ListingSnapshot
	err := c.store.Get(ctx, key.String(), &snapshots)
	if errors.Is(err, cache.ErrMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return snapshots, true, nil
}

func (c *redisSnapshotCache) Put(ctx context.Context, key cache.ListingsKey, snapshots []models.ListingSnapshot, ttl time.Duration) error {
	if snapshots == nil {
		snapshots = []models.ListingSnapshot{}
	}
	return c.store.Set(ctx, key.String(), snapshots, ttl)
}

func (c *redisSnapshotCache) Invalidate(ctx context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error) {
	report := models.InvalidationReport{MarketID: marketID}
	keys, err := c.store.ScanKeys(ctx, cache.ListingsMarketPattern(marketID))
	if err != nil {
		return report, err
	}

	var stale []string
	for _, raw := range keys {
		key, err := cache.ParseListingsKey(raw)
		if err != nil {
			logger.GlobalLogger.Warnf("skipping cache key during invalidation: %v", err)
			report.Skipped = append(report.Skipped, raw)
			continue
		}
		if keyRange(key).Overlaps(dr) {
			stale = append(stale, raw)
		}
	}
	if _, err := c.store.Delete(ctx, stale...); err != nil {
		return report, err
	}
	report.Deleted = stale
	return report, nil
}

func (c *redisSnapshotCache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func keyRange(key cache.ListingsKey) models.DateRange {
	return models.DateRange{Checkin: key.Checkin, Checkout: key.Checkout}
}
