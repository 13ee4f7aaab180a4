package models

import (
	stderrors "errors"
	"testing"
	"time"

	apperrors "listing-search/internal/errors"
)

func day(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func mustRange(t *testing.T, in, out string) DateRange {
	t.Helper()
	dr, err := ParseDateRange(in, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return dr
}

func TestDateRangeNights(t *testing.T) {
	dr := mustRange(t, "2024-06-01", "2024-06-08")
	if dr.Nights() != 7 {
		t.Fatalf("expected 7 nights, got %d", dr.Nights())
	}
	// crossing a DST boundary in local zones must not change the count
	dr = mustRange(t, "2024-03-09", "2024-03-11")
	if dr.Nights() != 2 {
		t.Fatalf("expected 2 nights, got %d", dr.Nights())
	}
}

func TestDateRangeNightsLongRange(t *testing.T) {
	dr := mustRange(t, "1700-01-01", "2100-01-01")
	if got, want := dr.Nights(), 146097; got != want {
		t.Fatalf("expected %d nights across four centuries, got %d", want, got)
	}
}

func TestNewDateRangeTruncatesClock(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	dr, err := NewDateRange(time.Date(2024, 6, 1, 22, 30, 0, 0, loc), time.Date(2024, 6, 3, 1, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !dr.Checkin.Equal(day("2024-06-01")) || !dr.Checkout.Equal(day("2024-06-03")) {
		t.Fatalf("unexpected range %s", dr)
	}
}

func TestDateRangeValidation(t *testing.T) {
	tests := []struct {
		name      string
		in, out   string
		wantField string
	}{
		{"SameDay", "2024-06-01", "2024-06-01", "checkout"},
		{"Inverted", "2024-06-08", "2024-06-01", "checkout"},
		{"BadCheckin", "06/01/2024", "2024-06-08", "checkin"},
		{"BadCheckout", "2024-06-01", "Invalid date", "checkout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRange(tt.in, tt.out)
			var vErr *apperrors.ValidationError
			if !stderrors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if vErr.Field != tt.wantField {
				t.Fatalf("expected field %s, got %s", tt.wantField, vErr.Field)
			}
		})
	}
	if err := (DateRange{}).Validate(); err == nil {
		t.Fatal("expected zero range to be invalid")
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := mustRange(t, "2024-06-10", "2024-06-15")
	tests := []struct {
		name    string
		in, out string
		want    bool
	}{
		{"Identical", "2024-06-10", "2024-06-15", true},
		{"StartsInside", "2024-06-12", "2024-06-20", true},
		{"EndsInside", "2024-06-01", "2024-06-11", true},
		{"Contained", "2024-06-11", "2024-06-13", true},
		{"Contains", "2024-06-01", "2024-06-30", true},
		{"TouchesCheckout", "2024-06-15", "2024-06-18", true},
		{"TouchesCheckin", "2024-06-05", "2024-06-10", true},
		{"Before", "2024-06-01", "2024-06-09", false},
		{"After", "2024-06-16", "2024-06-20", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustRange(t, tt.in, tt.out)
			if got := base.Overlaps(other); got != tt.want {
				t.Fatalf("base.Overlaps(%s) = %v, want %v", other, got, tt.want)
			}
			if base.Overlaps(other) != other.Overlaps(base) {
				t.Fatalf("overlap is not symmetric for %s and %s", base, other)
			}
		})
	}
}

func TestDateRangeIncludesIsHalfOpen(t *testing.T) {
	dr := mustRange(t, "2024-06-01", "2024-06-03")
	if !dr.Includes(day("2024-06-01")) || !dr.Includes(day("2024-06-02")) {
		t.Fatal("expected booked nights to be included")
	}
	if dr.Includes(day("2024-06-03")) || dr.Includes(day("2024-05-31")) {
		t.Fatal("expected checkout day and earlier days to be excluded")
	}
	if dr.String() != "2024-06-01_2024-06-03" {
		t.Fatalf("unexpected string %s", dr.String())
	}
}

func TestBoundsContainsInclusive(t *testing.T) {
	b := Bounds{North: 40.8, East: -73.9, South: 40.7, West: -74.0}
	if !b.Contains(Coords{Lat: 40.75, Lng: -73.95}) {
		t.Fatal("expected point inside bounds")
	}
	if !b.Contains(Coords{Lat: 40.8, Lng: -74.0}) {
		t.Fatal("expected edge point to be inside")
	}
	if b.Contains(Coords{Lat: 41.0, Lng: -73.95}) {
		t.Fatal("expected point north of bounds to be outside")
	}
}
