package models

// Bounds is a map viewport; all edges are inclusive.
type Bounds struct {
	North float64 `json:"north"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	West  float64 `json:"west"`
}

func (b Bounds) Contains(c Coords) bool {
	return b.West <= c.Lng && c.Lng <= b.East && b.South <= c.Lat && c.Lat <= b.North
}

// SearchCriteria carries every guest-supplied filter. Prices are in minor units.
type SearchCriteria struct {
	Scope
	DateRange DateRange

	MinPrice  int64
	MaxPrice  int64
	Bedrooms  int
	Beds      int
	Bathrooms float64
	Guests    int

	Amenities              []string
	PropertyTypes          []string
	WheelchairFriendlyOnly bool
	Bounds                 *Bounds

	// Sort names a listing field; a leading "-" sorts descending.
	Sort               string
	IncludeTestMarkets bool
}

type SearchResult struct {
	Listings      []ListingSnapshot
	TotalCount    int
	InBoundsCount int
}

// PaginatedListingsResponse is the guest-facing page of a search.
type PaginatedListingsResponse struct {
	TotalCount    int               `json:"total_count"`
	InBoundsCount int               `json:"in_bounds_count"`
	Page          int               `json:"page"`
	NumPages      int               `json:"num_pages"`
	Next          *string           `json:"next,omitempty"`
	Prev          *string           `json:"prev,omitempty"`
	Result        []ListingSnapshot `json:"result"`
}

// InvalidationReport lists the cache keys a range invalidation removed and the malformed
// keys it had to skip.
type InvalidationReport struct {
	MarketID int64    `json:"market"`
	Deleted  []string `json:"deleted"`
	Skipped  []string `json:"skipped"`
}

// InvalidationRequest asks for every cached stay of a market overlapping [checkin, checkout]
// to be dropped.
type InvalidationRequest struct {
	Market   int64  `json:"market" binding:"required,gt=0"`
	Checkin  string `json:"checkin" binding:"required"`
	Checkout string `json:"checkout" binding:"required"`
}
