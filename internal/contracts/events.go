package contracts

const (
	AvailabilityChangedEvent   = "AvailabilityChangedEvent"
	AvailabilityChangedVersion = "1.0.0"
)

// AvailabilityChanged is published when listing calendars of a market change for a stay range.
type AvailabilityChanged struct {
	MarketID   int64   `json:"market_id"`
	Checkin    string  `json:"checkin"`
	Checkout   string  `json:"checkout"`
	ListingIDs []int64 `json:"listing_ids,omitempty"`
	OccurredAt string  `json:"occurred_at,omitempty"`
}
