package cache

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	listingsKeyPrefix = "listings"
	keyDateLayout     = "2006-01-02"
)

// ListingsKey identifies one snapshot set: a scope triple plus a stay range.
type ListingsKey struct {
	MarketID   int64
	BuildingID int64
	ComplexID  int64
	Checkin    time.Time
	Checkout   time.Time
}

// NewListingsKey normalizes both dates to UTC midnight so keys compare equal as map keys.
func NewListingsKey(marketID, buildingID, complexID int64, checkin, checkout time.Time) ListingsKey {
	return ListingsKey{
		MarketID:   marketID,
		BuildingID: buildingID,
		ComplexID:  complexID,
		Checkin:    toDate(checkin),
		Checkout:   toDate(checkout),
	}
}

// String renders the flat redis key. The complex id and checkin date are joined without a separator.
func (k ListingsKey) String() string {
	return fmt.Sprintf("%s_%d_%d_%d%s_%s", listingsKeyPrefix,
		k.MarketID, k.BuildingID, k.ComplexID,
		k.Checkin.Format(keyDateLayout), k.Checkout.Format(keyDateLayout))
}

// ListingsMarketPattern matches every listings key of a market for SCAN.
func ListingsMarketPattern(marketID int64) string {
	return fmt.Sprintf("%s_%d_*", listingsKeyPrefix, marketID)
}

// ParseListingsKey is the inverse of ListingsKey.String.
func ParseListingsKey(key string) (ListingsKey, error) {
	parts := strings.Split(key, "_")
	if len(parts) != 5 || parts[0] != listingsKeyPrefix {
		return ListingsKey{}, fmt.Errorf("malformed listings key %q", key)
	}
	market, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return ListingsKey{}, fmt.Errorf("malformed market in key %q: %w", key, err)
	}
	building, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return ListingsKey{}, fmt.Errorf("malformed building in key %q: %w", key, err)
	}

	complexAndCheckin := parts[3]
	if len(complexAndCheckin) <= len(keyDateLayout) {
		return ListingsKey{}, fmt.Errorf("malformed complex/checkin in key %q", key)
	}
	split := len(complexAndCheckin) - len(keyDateLayout)
	complexID, err := strconv.ParseInt(complexAndCheckin[:split], 10, 64)
	if err != nil {
		return ListingsKey{}, fmt.Errorf("malformed complex in key %q: %w", key, err)
	}
	checkin, err := time.Parse(keyDateLayout, complexAndCheckin[split:])
	if err != nil {
		return ListingsKey{}, fmt.Errorf("malformed checkin in key %q: %w", key, err)
	}
	checkout, err := time.Parse(keyDateLayout, parts[4])
	if err != nil {
		return ListingsKey{}, fmt.Errorf("malformed checkout in key %q: %w", key, err)
	}
	return ListingsKey{
		MarketID:   market,
		BuildingID: building,
		ComplexID:  complexID,
		Checkin:    checkin,
		Checkout:   checkout,
	}, nil
}

func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
