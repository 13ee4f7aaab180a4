package database

import (
	"context"
	"time"

	"listing-search/pkg/logger"
	"listing-search/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateListingIndexes creates the indexes the listing search queries rely on.
func CreateListingIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := db.Collection(PropertiesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "market_id", Value: 1},
				{Key: "building_id", Value: 1},
				{Key: "complex_id", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "is_test_market", Value: 1}},
		},
	})
	metrics.DatabaseOperationDuration.WithLabelValues("create_indexes", PropertiesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("create_indexes", PropertiesCollection).Inc()
		logger.GlobalLogger.Errorf("Failed to create %s indexes: %v", PropertiesCollection, err)
		return err
	}

	start = time.Now()
	_, err = db.Collection(PropertyDatesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "property_id", Value: 1},
			{Key: "date", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	metrics.DatabaseOperationDuration.WithLabelValues("create_indexes", PropertyDatesCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("create_indexes", PropertyDatesCollection).Inc()
		logger.GlobalLogger.Errorf("Failed to create %s indexes: %v", PropertyDatesCollection, err)
		return err
	}

	logger.GlobalLogger.Println("MongoDB indexes created successfully.")
	return nil
}
