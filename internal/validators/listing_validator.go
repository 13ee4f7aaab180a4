package validators

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/pkg/config"
)

// maxWholePrice is the largest whole-currency price that still fits int64 minor units.
const maxWholePrice = math.MaxInt64 / 100

// invalidDate is what some clients send when the checkout picker is cleared.
const invalidDate = "Invalid date"

var propertyTypeFlags = []string{"townhouse", "apartment", "house", "container"}

var amenityFlags = []struct {
	param string
	code  string
}{
	{"street_parking", "FREE_STREET_PARKING"},
	{"garage_parking", "GARAGE_PARKING"},
	{"gym", "GYM"},
	{"pool", "POOL"},
	{"hot_tub", "HOT_TUB"},
	{"washer_dryer", "WASHER_DRYER"},
	{"dishwasher", "DISHWASHER"},
}

type listingValidator struct {
	leadDays   int
	stayNights int
	now        func() time.Time
}

func NewListingValidator(cfg config.SearchConfig) ListingValidator {
	return &listingValidator{
		leadDays:   cfg.DefaultLeadDays,
		stayNights: cfg.DefaultStayNights,
		now:        time.Now,
	}
}

func (v *listingValidator) ParseSearch(query url.Values) (models.SearchCriteria, int, error) {
	var c models.SearchCriteria

	dr, err := v.parseStay(query.Get("checkin"), query.Get("checkout"))
	if err != nil {
		return c, 0, err
	}
	c.DateRange = dr

	ints := []struct {
		name string
		dest *int
		def  int
	}{
		{"bedrooms", &c.Bedrooms, 0},
		{"beds", &c.Beds, 0},
		{"guests", &c.Guests, 0},
	}
	for _, f := range ints {
		n, err := parseNonNegative(query, f.name, int64(f.def))
		if err != nil {
			return c, 0, err
		}
		*f.dest = int(n)
	}

	ids := []struct {
		name string
		dest *int64
	}{
		{"market", &c.MarketID},
		{"building", &c.BuildingID},
		{"complex", &c.ComplexID},
	}
	for _, f := range ids {
		if *f.dest, err = parseNonNegative(query, f.name, 0); err != nil {
			return c, 0, err
		}
	}

	if raw := query.Get("bathrooms"); raw != "" {
		c.Bathrooms, err = strconv.ParseFloat(raw, 64)
		if err != nil || c.Bathrooms < 0 {
			return c, 0, apperrors.NewValidationError("bathrooms", "expected a non-negative number, got %q", raw)
		}
	}

	// prices arrive in whole currency units
	if c.MinPrice, err = parsePrice(query, "min_price", 0); err != nil {
		return c, 0, err
	}
	if c.MaxPrice, err = parsePrice(query, "max_price", 500); err != nil {
		return c, 0, err
	}

	for _, t := range propertyTypeFlags {
		if query.Get(t) == "true" {
			c.PropertyTypes = append(c.PropertyTypes, t)
		}
	}
	for _, a := range amenityFlags {
		if query.Get(a.param) == "true" {
			c.Amenities = append(c.Amenities, a.code)
		}
	}
	c.WheelchairFriendlyOnly = query.Get("wheelchair_friendly") == "true"
	c.Bounds = ParseBounds(query.Get("bounds"))
	c.Sort = query.Get("sort")
	c.IncludeTestMarkets = isTruthy(query.Get("enable_test_markets"))

	page, err := parseNonNegative(query, "page", 1)
	if err != nil {
		return c, 0, err
	}
	return c, int(page), nil
}

func (v *listingValidator) ValidateInvalidation(req *models.InvalidationRequest) (models.DateRange, error) {
	if req.Market <= 0 {
		return models.DateRange{}, apperrors.NewValidationError("market", "must be a positive id")
	}
	checkin, err := parseDate(req.Checkin)
	if err != nil {
		return models.DateRange{}, apperrors.NewValidationError("checkin", "expected YYYY-MM-DD, got %q", req.Checkin)
	}
	checkout, err := parseDate(req.Checkout)
	if err != nil {
		return models.DateRange{}, apperrors.NewValidationError("checkout", "expected YYYY-MM-DD, got %q", req.Checkout)
	}
	return models.NewDateRange(checkin, checkout)
}

// parseStay defaults checkin to a week from today and checkout to a week after checkin.
func (v *listingValidator) parseStay(rawCheckin, rawCheckout string) (models.DateRange, error) {
	checkin := models.ToDate(v.now()).AddDate(0, 0, v.leadDays)
	if rawCheckin != "" {
		t, err := parseDate(rawCheckin)
		if err != nil {
			return models.DateRange{}, apperrors.NewValidationError("checkin", "expected YYYY-MM-DD, got %q", rawCheckin)
		}
		checkin = t
	}

	checkout := models.ToDate(checkin).AddDate(0, 0, v.stayNights)
	if rawCheckout != "" && rawCheckout != invalidDate {
		t, err := parseDate(rawCheckout)
		if err != nil {
			return models.DateRange{}, apperrors.NewValidationError("checkout", "expected YYYY-MM-DD, got %q", rawCheckout)
		}
		checkout = t
	}
	return models.NewDateRange(checkin, checkout)
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(models.DateLayout, raw); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, raw)
}

// ParseBounds reads "north,east,south,west". Anything unparsable means no bounds.
func ParseBounds(raw string) *models.Bounds {
	parts := strings.Split(raw, ",")
	if len(parts) < 4 {
		return nil
	}
	vals := make([]float64, 4)
	for i := range vals {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil {
			return nil
		}
		vals[i] = f
	}
	return &models.Bounds{North: vals[0], East: vals[1], South: vals[2], West: vals[3]}
}

func parseNonNegative(query url.Values, name string, def int64) (int64, error) {
	raw := query.Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0, apperrors.NewValidationError(name, "expected a non-negative integer, got %q", raw)
	}
	return n, nil
}

// parsePrice reads a whole-currency amount and returns it in minor units.
func parsePrice(query url.Values, name string, def int64) (int64, error) {
	n, err := parseNonNegative(query, name, def)
	if err != nil {
		return 0, err
	}
	if n > maxWholePrice {
		return 0, apperrors.NewValidationError(name, "must be at most %d, got %d", maxWholePrice, n)
	}
	return n * 100, nil
}

func isTruthy(raw string) bool {
	switch strings.ToLower(raw) {
	case "", "0", "false", "no":
		return false
	default:
		return true
	}
}
