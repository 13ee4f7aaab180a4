package repositories

import (
	"context"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/cache"
)

// PropertyRepository reads listings together with their calendar for one date range.
// Results are ordered by listing id ascending.
type PropertyRepository interface {
	FindListings(ctx context.Context, q models.ListingQuery) ([]models.PropertyRecord, error)
	Ping(ctx context.Context) error
}

// SnapshotCache stores the unfiltered listing snapshots of one scope and date range.
type SnapshotCache interface {
	Get(ctx context.Context, key cache.ListingsKey) ([]models.ListingSnapshot, bool, error)
	Put(ctx context.Context, key cache.ListingsKey, snapshots []models.ListingSnapshot, ttl time.Duration) error
	// Invalidate deletes every entry of the market whose range overlaps dr.
	Invalidate(ctx context.Context, marketID int64, dr models.DateRange) (models.InvalidationReport, error)
	Ping(ctx context.Context) error
}
