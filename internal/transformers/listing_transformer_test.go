package transformers

import (
	"testing"
	"time"

	"listing-search/internal/models"
)

func TestNightlyPrice(t *testing.T) {
	tests := []struct {
		name        string
		avg         float64
		cleaningFee float64
		servicePct  float64
		nights      int
		want        int64
	}{
		// 10000 + (10000 + 15000/3) * 0.10
		{"WithCleaningFee", 10000, 150, 10, 3, 11500},
		// 10000 + (10000 + 12000/4) * 0.10
		{"DefaultCleaningFee", 10000, 0, 10, 4, 11300},
		{"NoServiceFee", 10000, 150, 0, 3, 10000},
		{"Truncates", 9999.5, 0, 0, 2, 9999},
		{"ZeroNights", 8000, 100, 10, 0, 8000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NightlyPrice(tt.avg, tt.cleaningFee, tt.servicePct, tt.nights); got != tt.want {
				t.Fatalf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestToSnapshot(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, 0, -10)
	maxBooking := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := models.PropertyRecord{
		ID:                          42,
		MarketID:                    3,
		Name:                        "Loft 3B",
		ExternalPlatformListingName: "Sunny Loft by WanderJaunt",
		PropertyType:                "apartment",
		NumBedrooms:                 2,
		NumBathrooms:                1.5,
		StairsRequired:              true,
		CleaningFee:                 150,
		MarketServiceFee:            10,
		Address:                     models.Address{City: "New York", Coords: models.Coords{Lat: 40.7128, Lng: -74.0060}},
		ActivationCompletedDate:     &recent,
		MaxBookingDate:              &maxBooking,
		AvgNightlyPrice:             10000,
		BlockedDates:                []time.Time{time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)},
	}
	dr := models.DateRange{Checkin: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC), Checkout: time.Date(2024, 6, 13, 0, 0, 0, 0, time.UTC)}

	tr := &listingTransformer{geohashPrecision: 5, now: func() time.Time { return now }}
	snap := tr.ToSnapshot(rec, dr)

	if snap.Price != 11500 || snap.OriginalPrice != 10000 {
		t.Fatalf("unexpected prices %d/%d", snap.Price, snap.OriginalPrice)
	}
	if snap.ExternalPlatformListingName != "Sunny Loft" {
		t.Fatalf("expected brand suffix stripped, got %q", snap.ExternalPlatformListingName)
	}
	if snap.WheelchairFriendly || !snap.StairsRequired {
		t.Fatal("stairs required listings are not wheelchair friendly")
	}
	if !snap.IsNew {
		t.Fatal("expected listing activated 10 days ago to be new")
	}
	if snap.MaxBookingDate != "2025-01-01" {
		t.Fatalf("unexpected max booking date %q", snap.MaxBookingDate)
	}
	if len(snap.BlockedDates) != 1 || snap.BlockedDates[0] != "2024-06-20" {
		t.Fatalf("unexpected blocked dates %v", snap.BlockedDates)
	}
	if snap.Amenities == nil || snap.CheckInDates == nil {
		t.Fatal("list fields must encode as empty arrays")
	}
	if snap.Geohash != "dr5re" {
		t.Fatalf("unexpected geohash %q", snap.Geohash)
	}
}

func TestIsNewWindow(t *testing.T) {
	now := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	tr := &listingTransformer{now: func() time.Time { return now }}
	edge := now.AddDate(0, 0, -30)
	inside := now.AddDate(0, 0, -29)
	if tr.isNew(&edge) {
		t.Fatal("activation exactly 30 days ago is not new")
	}
	if !tr.isNew(&inside) {
		t.Fatal("activation 29 days ago is new")
	}
	if tr.isNew(nil) {
		t.Fatal("never activated is not new")
	}
}
