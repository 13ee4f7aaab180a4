package main

import (
	"context"
	"net/http"
	"time"

	"listing-search/internal/consumers"
	"listing-search/internal/handlers"
	"listing-search/internal/middleware"
	"listing-search/internal/repositories"
	"listing-search/internal/services"
	"listing-search/internal/transformers"
	"listing-search/internal/validators"
	"listing-search/pkg/cache"
	"listing-search/pkg/config"
	"listing-search/pkg/database"
	"listing-search/pkg/logger"
	"listing-search/pkg/messaging"
	"listing-search/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// App represents the application structure
type App struct {
	Config         *config.Config
	Router         *gin.Engine
	ListingHandler *handlers.ListingHandler
	HealthHandler  *handlers.HealthHandler
	RateLimiter    *middleware.RateLimiter
	Server         *http.Server

	propertyRepo  repositories.PropertyRepository
	snapshotCache repositories.SnapshotCache
	searchService *services.ListingSearchService
	consumer      *messaging.Consumer

	// background workers stop when ctx is cancelled
	ctx     context.Context
	cancel  context.CancelFunc
	closers []func()
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	app := &App{Config: cfg}
	app.ctx, app.cancel = context.WithCancel(context.Background())

	// Initialize infrastructure
	app.initializeMetrics()
	app.initializeDatabase()
	app.initializeCache()
	app.initializeRateLimiter()

	// Initialize business logic
	app.initializeDependencies()
	app.initializeConsumer()

	// Initialize web layer
	app.initializeRouter()

	return app
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// connect the property store selected by database.driver
func (a *App) initializeDatabase() {
	switch a.Config.Database.Driver {
	case "postgres":
		pool, err := database.ConnectPostgres(a.ctx, a.Config.Database.PostgresDSN)
		if err != nil {
			logger.GlobalLogger.Fatalf("Failed to initialize PostgreSQL: %v", err)
		}
		a.closers = append(a.closers, func() { database.ClosePostgres(pool) })

		repo, err := repositories.NewPostgresPropertyRepository(pool)
		if err != nil {
			logger.GlobalLogger.Fatalf("Failed to initialize property repository: %v", err)
		}
		a.propertyRepo = repo
	default:
		client, db, err := database.ConnectMongo(a.Config.Database)
		if err != nil {
			logger.GlobalLogger.Fatalf("Failed to initialize MongoDB: %v", err)
		}
		a.closers = append(a.closers, func() { database.CloseMongo(client) })

		ctx, cancel := context.WithTimeout(a.ctx, 30*time.Second)
		defer cancel()
		if err := database.CreateListingIndexes(ctx, db); err != nil {
			logger.GlobalLogger.Warnf("Failed to create listing indexes: %v", err)
		}
		a.propertyRepo = repositories.NewMongoPropertyRepository(db)
	}
}

// set up the snapshot cache selected by cache.backend
func (a *App) initializeCache() {
	switch a.Config.Cache.Backend {
	case "memory":
		memCache := repositories.NewMemorySnapshotCache()
		go memCache.RunJanitor(a.ctx, a.Config.Cache.Janitor())
		a.snapshotCache = memCache
		logger.GlobalLogger.Println("Using in-process snapshot cache")
	default:
		client, err := cache.NewRedisClient(a.Config.Redis)
		if err != nil {
			logger.GlobalLogger.Fatalf("Failed to initialize Redis: %v", err)
		}
		// searches fall through to the fetcher until redis answers
		if err := cache.PingRedis(a.ctx, client, 5*time.Second); err != nil {
			logger.GlobalLogger.Warnf("Redis unreachable, continuing degraded: %v", err)
		} else {
			logger.GlobalLogger.Println("Redis connected successfully")
		}
		a.closers = append(a.closers, func() { cache.CloseRedis(client) })
		a.snapshotCache = repositories.NewRedisSnapshotCache(cache.NewStore(client))
	}
}

// initialize the rate limiter
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(a.Config.RateLimit.RequestsPerMinute, a.Config.RateLimit.Burst)
	go a.RateLimiter.Cleanup(a.ctx, time.Minute)
}

// initialize all dependencies
func (a *App) initializeDependencies() {
	search := a.Config.Search

	// transformers
	listingTrans := transformers.NewListingTransformer(search.GeohashPrecision)

	// validators
	listingValidator := validators.NewListingValidator(search)

	// services
	fetcher := services.NewListingFetcher(a.propertyRepo, listingTrans, search.MaxPriceCap)
	a.searchService = services.NewListingSearchService(fetcher, a.snapshotCache, search, a.Config.Cache.TTL())

	// handlers
	a.ListingHandler = handlers.NewListingHandler(a.searchService, listingValidator, search.ListingsPerPage)
	a.HealthHandler = handlers.NewHealthHandler(map[string]handlers.Pinger{
		"database": a.propertyRepo,
		"cache":    a.snapshotCache,
	})
}

// start the availability event consumer when rabbitmq is enabled
func (a *App) initializeConsumer() {
	if !a.Config.RabbitMQ.Enabled {
		return
	}
	consumer, err := messaging.NewConsumer(a.Config.RabbitMQ)
	if err != nil {
		logger.GlobalLogger.Fatalf("Failed to initialize RabbitMQ consumer: %v", err)
	}
	a.consumer = consumer

	handler := consumers.NewAvailabilityConsumer(a.searchService)
	go func() {
		if err := consumer.Consume(a.ctx, handler.HandleDelivery); err != nil {
			logger.GlobalLogger.Errorf("Availability consumer stopped: %v", err)
		}
	}()
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	if a.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	a.cancel()
	if a.consumer != nil {
		if err := a.consumer.Close(); err != nil {
			logger.GlobalLogger.Errorf("Error closing RabbitMQ consumer: %v", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}
