package models

import (
	"fmt"
	"time"

	apperrors "listing-search/internal/errors"
)

// DateLayout is the calendar date format used in cache keys and query strings.
const DateLayout = "2006-01-02"

// DateRange is a half-open stay interval [Checkin, Checkout) at day granularity.
type DateRange struct {
	Checkin  time.Time `json:"checkin"`
	Checkout time.Time `json:"checkout"`
}

// NewDateRange truncates both ends to UTC calendar dates and rejects empty or inverted stays.
func NewDateRange(checkin, checkout time.Time) (DateRange, error) {
	dr := DateRange{Checkin: ToDate(checkin), Checkout: ToDate(checkout)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// ParseDateRange builds a DateRange from two YYYY-MM-DD strings.
func ParseDateRange(checkin, checkout string) (DateRange, error) {
	in, err := time.Parse(DateLayout, checkin)
	if err != nil {
		return DateRange{}, apperrors.NewValidationError("checkin", "expected YYYY-MM-DD, got %q", checkin)
	}
	out, err := time.Parse(DateLayout, checkout)
	if err != nil {
		return DateRange{}, apperrors.NewValidationError("checkout", "expected YYYY-MM-DD, got %q", checkout)
	}
	return NewDateRange(in, out)
}

// ToDate drops the clock part of t, keeping its calendar date.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (d DateRange) Validate() error {
	if d.Checkin.IsZero() {
		return apperrors.NewValidationError("checkin", "is required")
	}
	if d.Checkout.IsZero() {
		return apperrors.NewValidationError("checkout", "is required")
	}
	if !d.Checkin.Before(d.Checkout) {
		return apperrors.NewValidationError("checkout", "must be after checkin (%s >= %s)",
			d.Checkin.Format(DateLayout), d.Checkout.Format(DateLayout))
	}
	return nil
}

const secondsPerDay = 24 * 60 * 60

// Nights counts whole calendar days from the Unix day numbers, so it cannot saturate the way
// a time.Duration does past about 292 years.
func (d DateRange) Nights() int {
	return int(unixDay(d.Checkout) - unixDay(d.Checkin))
}

// unixDay is exact because ToDate lands on UTC midnight.
func unixDay(t time.Time) int64 {
	return ToDate(t).Unix() / secondsPerDay
}

// Overlaps uses inclusive endpoints: touching ranges overlap, and the test is symmetric.
func (d DateRange) Overlaps(other DateRange) bool {
	return other.contains(d.Checkin) || other.contains(d.Checkout) ||
		d.contains(other.Checkin) || d.contains(other.Checkout)
}

// Includes reports whether day is one of the booked nights.
func (d DateRange) Includes(day time.Time) bool {
	return !day.Before(d.Checkin) && day.Before(d.Checkout)
}

func (d DateRange) contains(t time.Time) bool {
	return !t.Before(d.Checkin) && !t.After(d.Checkout)
}

func (d DateRange) String() string {
	return fmt.Sprintf("%s_%s", d.Checkin.Format(DateLayout), d.Checkout.Format(DateLayout))
}
