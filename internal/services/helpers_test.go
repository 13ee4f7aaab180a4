package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/cache"
)

func dateRange(t *testing.T, in, out string) models.DateRange {
	t.Helper()
	dr, err := models.ParseDateRange(in, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dr
}

func openCriteria(t *testing.T) models.SearchCriteria {
	return models.SearchCriteria{
		Scope:     models.Scope{MarketID: 1},
		DateRange: dateRange(t, "2024-06-01", "2024-06-08"),
		MaxPrice:  1500000,
	}
}

// stubFetcher returns a fixed snapshot set and counts calls.
type stubFetcher struct {
	snapshots []models.ListingSnapshot
	err       error
	calls     atomic.Int32
	delay     time.Duration
	mu        sync.Mutex
	testFlags []bool
}

func (f *stubFetcher) FetchUnfiltered(ctx context.Context, scope models.Scope, dr models.DateRange, includeTestMarkets bool) ([]models.ListingSnapshot, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.testFlags = append(f.testFlags, includeTestMarkets)
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshots, nil
}

// failingCache behaves like an unreachable cache backend.
type failingCache struct {
	err error
}

func (c failingCache) Get(context.Context, cache.ListingsKey) ([]models.ListingSnapshot, bool, error) {
	return nil, false, c.err
}

func (c failingCache) Put(context.Context, cache.ListingsKey, []models.ListingSnapshot, time.Duration) error {
	return c.err
}

func (c failingCache) Invalidate(_ context.Context, marketID int64, _ models.DateRange) (models.InvalidationReport, error) {
	return models.InvalidationReport{MarketID: marketID}, c.err
}

func (c failingCache) Ping(context.Context) error { return c.err }
