package services

import (
	"testing"

	"listing-search/internal/models"
)

func snapshot(id int64, price int64) models.ListingSnapshot {
	return models.ListingSnapshot{
		ID:           id,
		Price:        price,
		NumBedrooms:  1,
		NumBeds:      1,
		NumBathrooms: 1,
		Occupancy:    2,
		PropertyType: "apartment",
		Amenities:    []string{},
	}
}

func TestFilterListingsStages(t *testing.T) {
	base := snapshot(1, 10000)
	tests := []struct {
		name   string
		modify func(l *models.ListingSnapshot, c *models.SearchCriteria)
		want   bool
	}{
		{"Open", func(*models.ListingSnapshot, *models.SearchCriteria) {}, true},
		{"BelowMinPrice", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.MinPrice = 10001 }, false},
		{"AtMinPrice", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.MinPrice = 10000 }, true},
		{"AboveMaxPrice", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.MaxPrice = 9999 }, false},
		{"AtMaxPrice", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.MaxPrice = 10000 }, true},
		{"TooFewBedrooms", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.Bedrooms = 2 }, false},
		{"TooFewBeds", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.Beds = 2 }, false},
		{"TooFewBathrooms", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.Bathrooms = 1.5 }, false},
		{"HalfBathMatches", func(l *models.ListingSnapshot, c *models.SearchCriteria) { l.NumBathrooms = 1.5; c.Bathrooms = 1.5 }, true},
		{"TooManyGuests", func(l *models.ListingSnapshot, c *models.SearchCriteria) { c.Guests = 3 }, false},
		{"MissingAmenity", func(l *models.ListingSnapshot, c *models.SearchCriteria) {
			l.Amenities = []string{"POOL"}
			c.Amenities = []string{"POOL", "GYM"}
		}, false},
		{"AllAmenities", func(l *models.ListingSnapshot, c *models.SearchCriteria) {
			l.Amenities = []string{"GYM", "POOL", "HOT_TUB"}
			c.Amenities = []string{"POOL", "GYM"}
		}, true},
		{"TypeNotAllowed", func(l *models.ListingSnapshot, c *models.SearchCriteria) {
			c.PropertyTypes = []string{"house", "townhouse"}
		}, false},
		{"TypeAllowed", func(l *models.ListingSnapshot, c *models.SearchCriteria) {
			c.PropertyTypes = []string{"house", "apartment"}
		}, true},
		{"WheelchairFlagExcludesAll", func(l *models.ListingSnapshot, c *models.SearchCriteria) {
			l.WheelchairFriendly = true
			c.WheelchairFriendlyOnly = true
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := base
			c := models.SearchCriteria{MaxPrice: 1500000}
			tt.modify(&l, &c)
			got := FilterListings([]models.ListingSnapshot{l}, c)
			if (got.TotalCount == 1) != tt.want {
				t.Fatalf("expected included=%v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFilterListingsBoundsCounts(t *testing.T) {
	inside := snapshot(1, 100)
	inside.Address.Coords = models.Coords{Lat: 40.75, Lng: -73.95}
	north := snapshot(2, 100)
	north.Address.Coords = models.Coords{Lat: 41.0, Lng: -73.95}
	expensive := snapshot(3, 999999)
	expensive.Address.Coords = models.Coords{Lat: 40.75, Lng: -73.95}
	all := []models.ListingSnapshot{inside, north, expensive}

	c := models.SearchCriteria{MaxPrice: 50000}
	res := FilterListings(all, c)
	if res.TotalCount != 2 || res.InBoundsCount != 2 {
		t.Fatalf("without bounds counts must match, got %d/%d", res.TotalCount, res.InBoundsCount)
	}

	c.Bounds = &models.Bounds{North: 40.8, East: -73.9, South: 40.7, West: -74.0}
	res = FilterListings(all, c)
	if res.TotalCount != 2 {
		t.Fatalf("bounds must not change total count, got %d", res.TotalCount)
	}
	if res.InBoundsCount != 1 || len(res.Listings) != 1 || res.Listings[0].ID != 1 {
		t.Fatalf("expected only listing 1 in bounds, got %+v", res)
	}
	if res.TotalCount < res.InBoundsCount {
		t.Fatal("total count must never be below in-bounds count")
	}
}

func TestFilterListingsDoesNotModifyInput(t *testing.T) {
	all := []models.ListingSnapshot{snapshot(1, 100), snapshot(2, 200), snapshot(3, 300)}
	c := models.SearchCriteria{MinPrice: 150, MaxPrice: 1500000, Bounds: &models.Bounds{North: 90, East: 180, South: -90, West: -180}}
	res := FilterListings(all, c)
	if len(res.Listings) != 2 {
		t.Fatalf("expected 2 listings, got %d", len(res.Listings))
	}
	if all[0].ID != 1 || all[1].ID != 2 || all[2].ID != 3 {
		t.Fatalf("input slice was modified: %+v", all)
	}
}
