package services

import (
	"cmp"
	"slices"
	"strings"

	"listing-search/internal/models"
)

type listingCompare func(a, b *models.ListingSnapshot) int

var sortFields = map[string]listingCompare{
	"pk":              func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.ID, b.ID) },
	"price":           func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.Price, b.Price) },
	"original_price":  func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.OriginalPrice, b.OriginalPrice) },
	"num_bedrooms":    func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.NumBedrooms, b.NumBedrooms) },
	"num_beds":        func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.NumBeds, b.NumBeds) },
	"num_bathrooms":   func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.NumBathrooms, b.NumBathrooms) },
	"occupancy":       func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.Occupancy, b.Occupancy) },
	"min_stay_length": func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.MinStayLength, b.MinStayLength) },
	"num_bookings":    func(a, b *models.ListingSnapshot) int { return cmp.Compare(a.NumBookings, b.NumBookings) },
	"name":            func(a, b *models.ListingSnapshot) int { return strings.Compare(a.Name, b.Name) },
}

// IsSortField reports whether sortBy names a sortable field, with or without the "-" prefix.
func IsSortField(sortBy string) bool {
	_, ok := sortFields[strings.TrimPrefix(sortBy, "-")]
	return ok
}

// SortListings orders listings in place by sortBy ("price", "-price", ...). Equal values keep
// id ascending order whatever the direction. An empty or unknown sortBy leaves the order alone.
func SortListings(listings []models.ListingSnapshot, sortBy string) {
	descending := strings.HasPrefix(sortBy, "-")
	compare, ok := sortFields[strings.TrimPrefix(sortBy, "-")]
	if !ok {
		return
	}
	slices.SortStableFunc(listings, func(a, b models.ListingSnapshot) int {
		c := compare(&a, &b)
		if descending {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
