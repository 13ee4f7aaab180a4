package transformers

import (
	"strings"
	"time"

	"listing-search/internal/models"

	"github.com/mmcloughlin/geohash"
)

const (
	// defaultCleaningFee applies when a property has no cleaning fee, in minor units.
	defaultCleaningFee = 12000
	newListingWindow   = 30 * 24 * time.Hour
	brandSuffix        = " by WanderJaunt"
)

type listingTransformer struct {
	geohashPrecision uint
	now              func() time.Time
}

func NewListingTransformer(geohashPrecision uint) ListingTransformer {
	return &listingTransformer{geohashPrecision: geohashPrecision, now: time.Now}
}

func (t *listingTransformer) ToSnapshot(rec models.PropertyRecord, dr models.DateRange) models.ListingSnapshot {
	snap := models.ListingSnapshot{
		ID:                          rec.ID,
		Address:                     rec.Address,
		ExternalPlatformListingName: strings.ReplaceAll(rec.ExternalPlatformListingName, brandSuffix, ""),
		Amenities:                   nonNil(rec.AmenityCodes),
		BlockedDates:                formatDates(rec.BlockedDates),
		CheckInDates:                formatDates(rec.CheckInDates),
		CheckOutDates:               formatDates(rec.CheckOutDates),
		Description:                 rec.Description,
		Name:                        rec.Name,
		NumBathrooms:                rec.NumBathrooms,
		NumBedrooms:                 rec.NumBedrooms,
		NumBeds:                     rec.NumBeds,
		Occupancy:                   rec.Occupancy,
		Price:                       NightlyPrice(rec.AvgNightlyPrice, rec.CleaningFee, rec.MarketServiceFee, dr.Nights()),
		OriginalPrice:               int64(rec.AvgNightlyPrice),
		PropertyType:                rec.PropertyType,
		WheelchairFriendly:          !rec.StairsRequired,
		StairsRequired:              rec.StairsRequired,
		Market:                      rec.MarketID,
		IsNew:                       t.isNew(rec.ActivationCompletedDate),
		NumBookings:                 rec.NumBookings,
		MinStayLength:               rec.MinStayLength,
	}
	if rec.MaxBookingDate != nil {
		snap.MaxBookingDate = rec.MaxBookingDate.Format(models.DateLayout)
	}
	if t.geohashPrecision > 0 {
		snap.Geohash = geohash.EncodeWithPrecision(rec.Address.Coords.Lat, rec.Address.Coords.Lng, t.geohashPrecision)
	}
	return snap
}

// NightlyPrice adds the service fee to the average nightly rate. The fee is charged on the
// rate plus the cleaning fee spread across the stay. cleaningFee is in whole currency,
// serviceFeePercent is a percentage and the result is in minor units.
func NightlyPrice(avgNightly, cleaningFee, serviceFeePercent float64, nights int) int64 {
	if nights <= 0 {
		return int64(avgNightly)
	}
	cleaning := int64(100 * cleaningFee)
	if cleaning == 0 {
		cleaning = defaultCleaningFee
	}
	cleaningPerNight := float64(cleaning) / float64(nights)
	serviceFee := (avgNightly + cleaningPerNight) * (serviceFeePercent / 100)
	return int64(avgNightly + serviceFee)
}

func (t *listingTransformer) isNew(activated *time.Time) bool {
	if activated == nil {
		return false
	}
	cutoff := models.ToDate(t.now()).Add(-newListingWindow)
	return models.ToDate(*activated).After(cutoff)
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(models.DateLayout)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
