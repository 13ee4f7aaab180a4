package validators

import (
	"errors"
	"net/url"
	"strconv"
	"testing"
	"time"

	apperrors "listing-search/internal/errors"
	"listing-search/internal/models"
	"listing-search/pkg/config"
)

func fixedValidator() *listingValidator {
	v := NewListingValidator(config.SearchConfig{DefaultLeadDays: 7, DefaultStayNights: 7}).(*listingValidator)
	v.now = func() time.Time { return time.Date(2024, 6, 1, 15, 30, 0, 0, time.UTC) }
	return v
}

func day(s string) time.Time {
	t, _ := time.Parse(models.DateLayout, s)
	return t
}

func TestParseSearchDefaults(t *testing.T) {
	c, page, err := fixedValidator().ParseSearch(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.DateRange.Checkin.Equal(day("2024-06-08")) || !c.DateRange.Checkout.Equal(day("2024-06-15")) {
		t.Fatalf("unexpected default stay %s", c.DateRange)
	}
	if c.MinPrice != 0 || c.MaxPrice != 50000 {
		t.Fatalf("unexpected default prices %d..%d", c.MinPrice, c.MaxPrice)
	}
	if page != 1 {
		t.Fatalf("expected page 1, got %d", page)
	}
	if c.Bounds != nil || c.IncludeTestMarkets || c.WheelchairFriendlyOnly {
		t.Fatalf("unexpected flags: %+v", c)
	}
}

func TestParseSearchFullQuery(t *testing.T) {
	q := url.Values{
		"checkin":             {"2024-07-01"},
		"checkout":            {"2024-07-04T00:00:00Z"},
		"market":              {"3"},
		"building":            {"9"},
		"complex":             {"12"},
		"bedrooms":            {"2"},
		"beds":                {"3"},
		"bathrooms":           {"1.5"},
		"guests":              {"4"},
		"min_price":           {"80"},
		"max_price":           {"300"},
		"house":               {"true"},
		"apartment":           {"false"},
		"pool":                {"true"},
		"street_parking":      {"true"},
		"wheelchair_friendly": {"true"},
		"bounds":              {"40.9,-73.7,40.5,-74.2"},
		"sort":                {"-price"},
		"enable_test_markets": {"1"},
		"page":                {"3"},
	}
	c, page, err := fixedValidator().ParseSearch(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DateRange.Nights() != 3 {
		t.Fatalf("expected 3 nights, got %d", c.DateRange.Nights())
	}
	if c.MarketID != 3 || c.BuildingID != 9 || c.ComplexID != 12 {
		t.Fatalf("unexpected scope %+v", c.Scope)
	}
	if c.Bedrooms != 2 || c.Beds != 3 || c.Bathrooms != 1.5 || c.Guests != 4 {
		t.Fatalf("unexpected room filters %+v", c)
	}
	if c.MinPrice != 8000 || c.MaxPrice != 30000 {
		t.Fatalf("unexpected prices %d..%d", c.MinPrice, c.MaxPrice)
	}
	if len(c.PropertyTypes) != 1 || c.PropertyTypes[0] != "house" {
		t.Fatalf("unexpected property types %v", c.PropertyTypes)
	}
	if len(c.Amenities) != 2 || c.Amenities[0] != "FREE_STREET_PARKING" || c.Amenities[1] != "POOL" {
		t.Fatalf("unexpected amenities %v", c.Amenities)
	}
	if c.Bounds == nil || c.Bounds.North != 40.9 || c.Bounds.West != -74.2 {
		t.Fatalf("unexpected bounds %+v", c.Bounds)
	}
	if !c.WheelchairFriendlyOnly || !c.IncludeTestMarkets || c.Sort != "-price" || page != 3 {
		t.Fatalf("unexpected flags %+v page=%d", c, page)
	}
}

func TestParseSearchInvalidCheckoutFallsBack(t *testing.T) {
	q := url.Values{"checkin": {"2024-07-01"}, "checkout": {"Invalid date"}}
	c, _, err := fixedValidator().ParseSearch(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !c.DateRange.Checkout.Equal(day("2024-07-08")) {
		t.Fatalf("expected checkout a week after checkin, got %s", c.DateRange)
	}
}

func TestParseSearchRejects(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		field string
	}{
		{"BadCheckin", url.Values{"checkin": {"07/01/2024"}}, "checkin"},
		{"EmptyStay", url.Values{"checkin": {"2024-07-01"}, "checkout": {"2024-07-01"}}, "checkout"},
		{"InvertedStay", url.Values{"checkin": {"2024-07-05"}, "checkout": {"2024-07-01"}}, "checkout"},
		{"NonNumericBedrooms", url.Values{"bedrooms": {"two"}}, "bedrooms"},
		{"NegativeGuests", url.Values{"guests": {"-1"}}, "guests"},
		{"BadBathrooms", url.Values{"bathrooms": {"x"}}, "bathrooms"},
		{"BadMarket", url.Values{"market": {"nyc"}}, "market"},
		{"BadMaxPrice", url.Values{"max_price": {"cheap"}}, "max_price"},
		{"BadPage", url.Values{"page": {"last"}}, "page"},
		{"MaxPriceOverflowsMinorUnits", url.Values{"max_price": {"92233720368547760"}}, "max_price"},
		{"MinPriceOverflowsMinorUnits", url.Values{"min_price": {"92233720368547759"}}, "min_price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := fixedValidator().ParseSearch(tt.query)
			var vErr *apperrors.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if vErr.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, vErr.Field)
			}
		})
	}
}

func TestParseSearchLargestPriceStaysPositive(t *testing.T) {
	q := url.Values{"max_price": {strconv.FormatInt(maxWholePrice, 10)}}
	c, _, err := fixedValidator().ParseSearch(q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.MaxPrice <= 0 || c.MaxPrice < config.DefaultPriceFilterCeiling {
		t.Fatalf("expected a large positive max price the ceiling clamp can catch, got %d", c.MaxPrice)
	}
}

func TestParseBounds(t *testing.T) {
	if b := ParseBounds("1,2,3"); b != nil {
		t.Fatalf("expected nil for short bounds, got %+v", b)
	}
	if b := ParseBounds("1,2,x,4"); b != nil {
		t.Fatalf("expected nil for non-numeric bounds, got %+v", b)
	}
	b := ParseBounds(" 1 ,2,3,4")
	if b == nil || b.North != 1 || b.East != 2 || b.South != 3 || b.West != 4 {
		t.Fatalf("unexpected bounds %+v", b)
	}
}

func TestValidateInvalidation(t *testing.T) {
	v := fixedValidator()

	dr, err := v.ValidateInvalidation(&models.InvalidationRequest{Market: 1, Checkin: "2024-06-01", Checkout: "2024-06-05"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dr.Nights() != 4 {
		t.Fatalf("expected 4 nights, got %d", dr.Nights())
	}

	bad := []*models.InvalidationRequest{
		{Market: 0, Checkin: "2024-06-01", Checkout: "2024-06-05"},
		{Market: 1, Checkin: "June 1", Checkout: "2024-06-05"},
		{Market: 1, Checkin: "2024-06-05", Checkout: "2024-06-01"},
	}
	for _, req := range bad {
		if _, err := v.ValidateInvalidation(req); err == nil {
			t.Fatalf("expected error for %+v", req)
		}
	}
}
