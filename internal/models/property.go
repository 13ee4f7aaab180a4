package models

import "time"

// PropertyRecord is a raw listing row from the property store, annotated for one date range.
type PropertyRecord struct {
	ID                          int64      `bson:"_id"`
	MarketID                    int64      `bson:"market_id"`
	BuildingID                  int64      `bson:"building_id"`
	ComplexID                   int64      `bson:"complex_id"`
	IsTestMarket                bool       `bson:"is_test_market"`
	Name                        string     `bson:"name"`
	Description                 string     `bson:"description"`
	ExternalPlatformListingName string     `bson:"external_platform_listing_name"`
	PropertyType                string     `bson:"property_type"`
	NumBedrooms                 int        `bson:"num_bedrooms"`
	NumBeds                     int        `bson:"num_beds"`
	NumBathrooms                float64    `bson:"num_bathrooms"`
	Occupancy                   int        `bson:"occupancy"`
	StairsRequired              bool       `bson:"stairs_required"`
	AmenityCodes                []string   `bson:"amenity_codes"`
	CleaningFee                 float64    `bson:"cleaning_fee"`
	MarketServiceFee            float64    `bson:"market_service_fee"`
	Address                     Address    `bson:"address"`
	ActivationCompletedDate     *time.Time `bson:"activation_completed_date,omitempty"`
	MaxBookingDate              *time.Time `bson:"max_booking_date,omitempty"`
	MinStayLength               int        `bson:"min_stay_length"`
	NumBookings                 int        `bson:"num_bookings"`

	// Range annotations filled in by the repository.
	AvgNightlyPrice float64     `bson:"-"`
	BlockedDates    []time.Time `bson:"-"`
	CheckInDates    []time.Time `bson:"-"`
	CheckOutDates   []time.Time `bson:"-"`
}

// PropertyDate is one priced calendar night of a property. Price is in minor units.
type PropertyDate struct {
	PropertyID  int64     `bson:"property_id"`
	Date        time.Time `bson:"date"`
	Price       int64     `bson:"price"`
	IsBlock     bool      `bson:"is_block"`
	IsAvailable bool      `bson:"is_available"`
	IsCheckIn   bool      `bson:"is_check_in"`
	IsCheckOut  bool      `bson:"is_check_out"`
}

// ListingQuery is what the repository understands: scope, a date range and open numeric bounds.
type ListingQuery struct {
	Scope
	DateRange      DateRange
	MinPrice       int64
	MaxPrice       int64
	Guests         int
	Bedrooms       int
	Beds           int
	Bathrooms      float64
	ProductionOnly bool
}
