package services

import (
	"context"
	"time"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/internal/repositories"
	"listing-search/internal/transformers"
	"listing-search/pkg/metrics"
)

// UnfilteredFetcher loads every listing of a scope priced for a date range.
type UnfilteredFetcher interface {
	FetchUnfiltered(ctx context.Context, scope models.Scope, dr models.DateRange, includeTestMarkets bool) ([]models.ListingSnapshot, error)
}

type ListingFetcher struct {
	repo        repositories.PropertyRepository
	transformer transformers.ListingTransformer
	maxPriceCap int64
}

func NewListingFetcher(repo repositories.PropertyRepository, transformer transformers.ListingTransformer, maxPriceCap int64) *ListingFetcher {
	return &ListingFetcher{repo: repo, transformer: transformer, maxPriceCap: maxPriceCap}
}

// FetchUnfiltered queries with the widest filters so one result can serve every guest query
// on the same scope and range.
func (f *ListingFetcher) FetchUnfiltered(ctx context.Context, scope models.Scope, dr models.DateRange, includeTestMarkets bool) ([]models.ListingSnapshot, error) {
	start := time.Now()
	records, err := f.repo.FindListings(ctx, models.ListingQuery{
		Scope:          scope,
		DateRange:      dr,
		MinPrice:       0,
		MaxPrice:       f.maxPriceCap,
		ProductionOnly: !includeTestMarkets,
	})
	metrics.RepositoryFetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, apperrors.NewRepositoryError("fetch_unfiltered", err)
	}

	snapshots := make([]models.ListingSnapshot, len(records))
	for i := range records {
		snapshots[i] = f.transformer.ToSnapshot(records[i], dr)
	}
	return snapshots, nil
}
