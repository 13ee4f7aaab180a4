package repositories

import (
	"context"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/cache"
)

// MemorySnapshotCache keeps snapshots in process, keyed by the structured key.
type MemorySnapshotCache struct {
	entries *cache.Memory[cache.ListingsKey, []models.ListingSnapshot]
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{
		entries: cache.NewMemory[cache.ListingsKey, []models.ListingSnapshot](),
	}
}

// RunJanitor purges expired entries every interval until ctx is done.
func (c *MemorySnapshotCache) RunJanitor(ctx context.Context, interval time.Duration) {
	c.entries.RunJanitor(ctx, interval)
}

func (c *MemorySnapshotCache) Get(_ context.Context, key cache.ListingsKey) ([]models.ListingSnapshot, bool, error) {
	snapshots, ok := c.entries.Get(key)
	return snapshots, ok, nil
}

func (c *MemorySnapshotCache) Put(_ context.Context, key cache.ListingsKey, snapshots []models.ListingSnapshot, ttl time.Duration) error {
	c.entries.Set(key, snapshots, ttl)
	return nil
}

func (c *MemorySnapshotCache) Invalidate(_ context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error) {
	report := models.InvalidationReport{MarketID: marketID}
	c.entries.DeleteFunc(func(key cache.ListingsKey) bool {
		if key.MarketID != marketID || !keyRange(key).Overlaps(dr) {
			return false
		}
		report.Deleted = append(report.Deleted, key.String())
		return true
	})
	return report, nil
}

func (c *MemorySnapshotCache) Ping(context.Context) error {
	return nil
}
