package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the subset of *redis.Client the store needs.
type CacheClient interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Close() error
}

// CacheOperations is implemented by Store.
type CacheOperations interface {
	Ping(ctx context.Context) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) (int64, error)
	ScanKeys(ctx context.Context, match string) ([]string, error)
}

var _ CacheClient = (*redis.Client)(nil)
var _ CacheOperations = (*Store)(nil)
