package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_snapshot_cache_hits_total",
			Help: "Total number of listing snapshot cache hits",
		},
	)
	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_snapshot_cache_misses_total",
			Help: "Total number of listing snapshot cache misses",
		},
	)
	CacheInvalidatedKeysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_snapshot_cache_invalidated_keys_total",
			Help: "Cache entries removed by range invalidation",
		},
	)
	CacheSkippedKeysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "listing_snapshot_cache_skipped_keys_total",
			Help: "Malformed cache keys skipped during range invalidation",
		},
	)
	RedisOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_operation_duration_seconds",
			Help:    "Redis operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	RedisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_errors_total",
			Help: "Total number of failed Redis operations",
		},
		[]string{"operation"},
	)
	DatabaseOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "database_operation_duration_seconds",
			Help:    "Database operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)
	DatabaseErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "database_errors_total",
			Help: "Total number of failed database operations",
		},
		[]string{"operation", "collection"},
	)
	RepositoryFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "listing_repository_fetch_duration_seconds",
			Help:    "Duration of unfiltered listing fetches on cache miss",
			Buckets: prometheus.DefBuckets,
		},
	)
	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "availability_events_consumed_total",
			Help: "Availability change events consumed, by outcome",
		},
		[]string{"outcome"},
	)
)

func Init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(CacheInvalidatedKeysTotal)
	prometheus.MustRegister(CacheSkippedKeysTotal)
	prometheus.MustRegister(RedisOperationDuration)
	prometheus.MustRegister(RedisErrorsTotal)
	prometheus.MustRegister(DatabaseOperationDuration)
	prometheus.MustRegister(DatabaseErrorsTotal)
	prometheus.MustRegister(RepositoryFetchDuration)
	prometheus.MustRegister(EventsConsumedTotal)
}
