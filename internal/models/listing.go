package models

type Coords struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Address struct {
	ID      int64  `json:"pk" bson:"pk"`
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Country string `json:"country" bson:"country"`
	Zipcode string `json:"zipcode" bson:"zipcode"`
	Coords  Coords `json:"coords" bson:"coords"`
}

// ListingSnapshot is a listing priced for one date range and scope. It is cached as-is and
// must not be mutated after construction.
type ListingSnapshot struct {
	ID                          int64    `json:"pk"`
	Address                     Address  `json:"address"`
	ExternalPlatformListingName string   `json:"external_platform_listing_name"`
	Amenities                   []string `json:"amenities"`
	BlockedDates                []string `json:"blocked_dates"`
	CheckInDates                []string `json:"check_in_dates"`
	CheckOutDates               []string `json:"check_out_dates"`
	Description                 string   `json:"description"`
	Name                        string   `json:"name"`
	NumBathrooms                float64  `json:"num_bathrooms"`
	NumBedrooms                 int      `json:"num_bedrooms"`
	NumBeds                     int      `json:"num_beds"`
	Occupancy                   int      `json:"occupancy"`
	Price                       int64    `json:"price"`
	OriginalPrice               int64    `json:"original_price"`
	PropertyType                string   `json:"property_type"`
	WheelchairFriendly          bool     `json:"wheelchair_friendly"`
	StairsRequired              bool     `json:"stairs_required"`
	MaxBookingDate              string   `json:"max_booking_date,omitempty"`
	Market                      int64    `json:"market"`
	IsNew                       bool     `json:"is_new"`
	NumBookings                 int      `json:"num_bookings"`
	MinStayLength               int      `json:"min_stay_length"`
	Geohash                     string   `json:"geohash,omitempty"`
}

func (l *ListingSnapshot) HasAmenity(code string) bool {
	for _, a := range l.Amenities {
		if a == code {
			return true
		}
	}
	return false
}

// Scope narrows which listings a cache entry covers. Zero building/complex means "any".
type Scope struct {
	MarketID   int64 `json:"market"`
	BuildingID int64 `json:"building"`
	ComplexID  int64 `json:"complex"`
}
