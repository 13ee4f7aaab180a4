package repositories

import (
	"context"
	"time"

	"listing-search/internal/models"
	"listing-search/pkg/database"
	"listing-search/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoPropertyRepository struct {
	properties *mongo.Collection
	dates      *mongo.Collection
	now        func() time.Time
}

func NewMongoPropertyRepository(db *mongo.Database) PropertyRepository {
	return &mongoPropertyRepository{
		properties: db.Collection(database.PropertiesCollection),
		dates:      db.Collection(database.PropertyDatesCollection),
		now:        time.Now,
	}
}

func (r *mongoPropertyRepository) FindListings(ctx context.Context, q models.ListingQuery) ([]models.PropertyRecord, error) {
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

func propertyFilter(q models.ListingQuery) bson.M {
	filter := bson.M{"market_id": q.MarketID}
	if q.BuildingID != 0 {
		filter["building_id"] = q.BuildingID
	}
	if q.ComplexID != 0 {
		filter["complex_id"] = q.ComplexID
	}
	if q.ProductionOnly {
		filter["is_test_market"] = bson.M{"$ne": true}
	}
	if q.Guests > 0 {
		filter["occupancy"] = bson.M{"$gte": q.Guests}
	}
	if q.Bedrooms > 0 {
		filter["num_bedrooms"] = bson.M{"$gte": q.Bedrooms}
	}
	if q.Beds > 0 {
		filter["num_beds"] = bson.M{"$gte": q.Beds}
	}
	if q.Bathrooms > 0 {
		filter["num_bathrooms"] = bson.M{"$gte": q.Bathrooms}
	}
	return filter
}

func (r *mongoPropertyRepository) findProperties(ctx context.Context, q models.ListingQuery) ([]models.PropertyRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})

	start := time.Now()
	cursor, err := r.properties.Find(ctx, propertyFilter(q), findOptions)
	metrics.DatabaseOperationDuration.WithLabelValues("find", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("find", database.PropertiesCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.PropertyRecord
	start = time.Now()
	err = cursor.All(ctx, &records)
	metrics.DatabaseOperationDuration.WithLabelValues("cursor_all", database.PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("cursor_all", database.PropertiesCollection).Inc()
		return nil, err
	}
	return records, nil
}

// findDates loads calendar rows from the given date onward, ordered by property and date.
func (r *mongoPropertyRepository) findDates(ctx context.Context, ids []int64, from time.Time) ([]models.PropertyDate, error) {
	filter := bson.M{
		"property_id": bson.M{"$in": ids},
		"date":        bson.M{"$gte": from},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "property_id", Value: 1}, {Key: "date", Value: 1}})

	start := time.Now()
	cursor, err := r.dates.Find(ctx, filter, findOptions)
	metrics.DatabaseOperationDuration.WithLabelValues("find", database.PropertyDatesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("find", database.PropertyDatesCollection).Inc()
		return nil, err
	}
	defer cursor.Close(ctx)

	var dates []models.PropertyDate
	start = time.Now()
	err = cursor.All(ctx, &dates)
	metrics.DatabaseOperationDuration.WithLabelValues("cursor_all", database.PropertyDatesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("cursor_all", database.PropertyDatesCollection).Inc()
		return nil, err
	}
	return dates, nil
}

func (r *mongoPropertyRepository) Ping(ctx context.Context) error {
	start := time.Now()
	err := r.properties.Database().Client().Ping(ctx, nil)
	metrics.DatabaseOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("ping", "").Inc()
	}
	return err
}
