package services

import (
	"listing-search/internal/models"
)

// FilterListings runs the guest filters over cached snapshots. TotalCount is taken after
// the attribute stages and InBoundsCount after the map bounds. snapshots is never modified.
func FilterListings(snapshots []models.ListingSnapshot, c models.SearchCriteria) models.SearchResult {
	matched := make([]models.ListingSnapshot, 0, len(snapshots))
	for i := range snapshots {
		if matchesCriteria(&snapshots[i], &c) {
			matched = append(matched, snapshots[i])
		}
	}
	result := models.SearchResult{TotalCount: len(matched)}

	if c.Bounds != nil {
		inBounds := matched[:0]
		for _, l := range matched {
			if c.Bounds.Contains(l.Address.Coords) {
				inBounds = append(inBounds, l)
			}
		}
		matched = inBounds
	}
	result.Listings = matched
	result.InBoundsCount = len(matched)
	return result
}

func matchesCriteria(l *models.ListingSnapshot, c *models.SearchCriteria) bool {
	if l.Price < c.MinPrice || l.Price > c.MaxPrice {
		return false
	}
	if l.NumBedrooms < c.Bedrooms || l.NumBeds < c.Beds ||
		l.NumBathrooms < c.Bathrooms || l.Occupancy < c.Guests {
		return false
	}
	for _, code := range c.Amenities {
		if !l.HasAmenity(code) {
			return false
		}
	}
	if len(c.PropertyTypes) > 0 && !containsString(c.PropertyTypes, l.PropertyType) {
		return false
	}
	// no listing is flagged accessible yet, so the filter excludes everything
	if c.WheelchairFriendlyOnly {
		return false
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
