package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/database"
	"listing-search/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const propertyColumns = `p.id, p.market_id, p.building_id, p.complex_id, p.is_test_market,
	p.name, p.description, p.external_platform_listing_name, p.property_type,
	p.num_bedrooms, p.num_beds, p.num_bathrooms, p.occupancy, p.stairs_required,
	p.amenity_codes, p.cleaning_fee, p.market_service_fee,
	p.address_id, p.street, p.city, p.state, p.country, p.zipcode, p.lat, p.lng,
	p.activation_completed_date, p.max_booking_date, p.min_stay_length, p.num_bookings`

type postgresPropertyRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPostgresPropertyRepository(pool *pgxpool.Pool) (PropertyRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &postgresPropertyRepository{pool: pool, now: time.Now}, nil
}

// buildPropertyQuery returns the WHERE clause and its positional arguments.
func buildPropertyQuery(q models.ListingQuery) (string, []interface{}) {
	conditions := []string{"p.market_id = $1"}
	args := []interface{}{q.MarketID}
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if q.BuildingID != 0 {
		add("p.building_id = $%d", q.BuildingID)
	}
	if q.ComplexID != 0 {
		add("p.complex_id = $%d", q.ComplexID)
	}
	if q.ProductionOnly {
		conditions = append(conditions, "p.is_test_market = false")
	}
	if q.Guests > 0 {
		add("p.occupancy >= $%d", q.Guests)
	}
	if q.Bedrooms > 0 {
		add("p.num_bedrooms >= $%d", q.Bedrooms)
	}
	if q.Beds > 0 {
		add("p.num_beds >= $%d", q.Beds)
	}
	if q.Bathrooms > 0 {
		add("p.num_bathrooms >= $%d", q.Bathrooms)
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

func (r *postgresPropertyRepository) FindListings(ctx context.Context, q models.ListingQuery) ([]models.PropertyRecord, error) {
	records, err := r.findProperties(ctx, q)
	if err != nil || len(records) == 0 {
		return records, err
	}

	ids := make([]int64, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	dates, err := r.findDates(ctx, ids, calendarStart(q.DateRange, r.now()))
	if err != nil {
		return nil, err
	}
	return annotateRecords(records, dates, q, r.now()), nil
}

func (r *postgresPropertyRepository) findProperties(ctx context.Context, q models.ListingQuery) ([]models.PropertyRecord, error) {
	where, args := buildPropertyQuery(q)
	query := fmt.Sprintf(`SELECT %s FROM properties p %s ORDER BY p.id ASC`, propertyColumns, where)

	start := time.Now()
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("find", database.PropertiesCollection).Inc()
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer rows.Close()

	var records []models.PropertyRecord
	for rows.Next() {
		var rec models.PropertyRecord
		a := &rec.Address
		if err := rows.Scan(
			&rec.ID, &rec.MarketID, &rec.BuildingID, &rec.ComplexID, &rec.IsTestMarket,
			&rec.Name, &rec.Description, &rec.ExternalPlatformListingName, &rec.PropertyType,
			&rec.NumBedrooms, &rec.NumBeds, &rec.NumBathrooms, &rec.Occupancy, &rec.StairsRequired,
			&rec.AmenityCodes, &rec.CleaningFee, &rec.MarketServiceFee,
			&a.ID, &a.Street, &a.City, &a.State, &a.Country, &a.Zipcode, &a.Coords.Lat, &a.Coords.Lng,
			&rec.ActivationCompletedDate, &rec.MaxBookingDate, &rec.MinStayLength, &rec.NumBookings,
		); err != nil {
			metrics.DatabaseErrorsTotal.WithLabelValues("scan", database.PropertiesCollection).Inc()
			return nil, fmt.Errorf("failed to scan property row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("find", database.PropertiesCollection).Inc()
		return nil, fmt.Errorf("failed to iterate property rows: %w", err)
	}
	metrics.DatabaseOperationDuration.WithLabelValues("find", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	return records, nil
}

func (r *postgresPropertyRepository) findDates(ctx context.Context, ids []int64, from time.Time) ([]models.PropertyDate, error) {
	const query = `SELECT property_id, date, price, is_block, is_available, is_check_in, is_check_out
		FROM property_dates
		WHERE property_id = ANY($1) AND date >= $2
		ORDER BY property_id ASC, date ASC`

	start := time.Now()
	rows, err := r.pool.Query(ctx, query, ids, from)
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("find", database.PropertyDatesCollection).Inc()
		return nil, fmt.Errorf("failed to query property dates: %w", err)
	}
	dates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PropertyDate, error) {
		var d models.PropertyDate
		err := row.Scan(&d.PropertyID, &d.Date, &d.Price, &d.IsBlock, &d.IsAvailable, &d.IsCheckIn, &d.IsCheckOut)
		return d, err
	})
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("scan", database.PropertyDatesCollection).Inc()
		return nil, fmt.Errorf("failed to scan property dates: %w", err)
	}
	metrics.DatabaseOperationDuration.WithLabelValues("find", database.PropertyDatesCollection).Observe(time.Since(start).Seconds())
	return dates, nil
}

func (r *postgresPropertyRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
