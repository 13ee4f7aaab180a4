package database

import (
	"context"
	"fmt"
	"time"

	"listing-search/pkg/config"
	"listing-search/pkg/logger"
	"listing-search/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PropertiesCollection    = "properties"
	PropertyDatesCollection = "property_dates"
)

// ConnectMongo dials and pings MongoDB, returning the client and the configured database.
func ConnectMongo(cfg config.DatabaseConfig) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetMaxPoolSize(100)

	start := time.Now()
	client, err := mongo.Connect(ctx, clientOptions)
	metrics.DatabaseOperationDuration.WithLabelValues("connect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("connect", "").Inc()
		logger.GlobalLogger.Errorf("failed to connect to MongoDB: %v", err)
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	start = time.Now()
	err = client.Ping(ctx, nil)
	metrics.DatabaseOperationDuration.WithLabelValues("ping", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("ping", "").Inc()
		_ = client.Disconnect(ctx)
		logger.GlobalLogger.Errorf("failed to ping MongoDB: %v", err)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.GlobalLogger.Println("MongoDB connected successfully.")
	return client, client.Database(cfg.DBName), nil
}

func CloseMongo(client *mongo.Client) {
	if client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	start := time.Now()
	err := client.Disconnect(ctx)
	metrics.DatabaseOperationDuration.WithLabelValues("disconnect", "").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.DatabaseErrorsTotal.WithLabelValues("disconnect", "").Inc()
		logger.GlobalLogger.Errorf("Error closing MongoDB: %v", err)
	} else {
		logger.GlobalLogger.Println("MongoDB connection closed")
	}
}
