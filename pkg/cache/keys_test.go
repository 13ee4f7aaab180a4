package cache

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, _ := time.Parse(keyDateLayout, s)
	return t
}

func TestListingsKeyString(t *testing.T) {
	k := NewListingsKey(5, 0, 0, date("2024-06-01"), date("2024-06-08"))
	if got, want := k.String(), "listings_5_0_02024-06-01_2024-06-08"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
	k = NewListingsKey(12, 3, 44, date("2024-12-30"), date("2025-01-02"))
	if got, want := k.String(), "listings_12_3_442024-12-30_2025-01-02"; got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestParseListingsKeyRoundTrip(t *testing.T) {
	want := NewListingsKey(12, 3, 44, date("2024-12-30"), date("2025-01-02"))
	got, err := ParseListingsKey(want.String())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestNewListingsKeyNormalizesClock(t *testing.T) {
	a := NewListingsKey(1, 0, 0, time.Date(2024, 6, 1, 15, 4, 5, 0, time.UTC), date("2024-06-02"))
	b := NewListingsKey(1, 0, 0, date("2024-06-01"), date("2024-06-02"))
	if a != b {
		t.Fatalf("expected equal keys, got %+v and %+v", a, b)
	}
}

func TestParseListingsKeyMalformed(t *testing.T) {
	for _, key := range []string{
		"listings_5_0_0garbage_2024-06-08",
		"listings_5_0_02024-06-01",
		"listings_x_0_02024-06-01_2024-06-08",
		"listings_5_0_2024-06-01_2024-06-08",
		"other_5_0_02024-06-01_2024-06-08",
		"listings_5_0_02024-06-01_tomorrow",
	} {
		if _, err := ParseListingsKey(key); err == nil {
			t.Errorf("expected error for %q", key)
		}
	}
}

func TestListingsMarketPattern(t *testing.T) {
	if got := ListingsMarketPattern(7); got != "listings_7_*" {
		t.Fatalf("unexpected pattern %s", got)
	}
}
