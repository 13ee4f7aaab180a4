package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"listing-search/pkg/logger"

	"github.com/go-redis/redis/v8"
)

const scanBatchSize = 500

// Store is a JSON value store on top of a redis client.
type Store struct {
	client CacheClient
}

func NewStore(client CacheClient) *Store {
	return &Store{client: client}
}

func (s *Store) Ping(ctx context.Context) error {
	start := time.Now()
	err := s.client.Ping(ctx).Err()
	RecordOperationDuration("ping", time.Since(start).Seconds())
	if err != nil {
		IncrementError("ping")
		return NewCacheError("ping", err, true)
	}
	return nil
}

// Set stores a value in the cache with the given key and expiration time.
func (s *Store) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	start := time.Now()
	data, err := json.Marshal(value)
	if err != nil {
		IncrementError("set_marshal")
		logger.GlobalLogger.Errorf("failed to marshal value for key %s: %v", key, err)
		return NewCacheError("marshal", err, false).WithKey(key)
	}
	err = s.client.Set(ctx, key, data, expiration).Err()
	RecordOperationDuration("set", time.Since(start).Seconds())
	if err != nil {
		IncrementError("set")
		logger.GlobalLogger.Errorf("failed to set key %s: %v", key, err)
		return NewCacheError("set", err, true).WithKey(key)
	}
	return nil
}

// Get unmarshals the cached value into dest. An absent key yields ErrMiss.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	val, err := s.client.Get(ctx, key).Result()
	RecordOperationDuration("get", time.Since(start).Seconds())
	if errors.Is(err, redis.Nil) {
		return ErrMiss
	}
	if err != nil {
		IncrementError("get")
		logger.GlobalLogger.Errorf("failed to get key %s: %v", key, err)
		return NewCacheError("get", err, true).WithKey(key)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		IncrementError("get_unmarshal")
		logger.GlobalLogger.Errorf("failed to unmarshal value for key %s: %v", key, err)
		return NewCacheError("unmarshal", err, false).WithKey(key)
	}
	return nil
}

// Delete removes keys and returns how many existed.
func (s *Store) Delete(ctx context.Context, keys ...string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	start := time.Now()
	n, err := s.client.Del(ctx, keys...).Result()
	RecordOperationDuration("delete", time.Since(start).Seconds())
	if err != nil {
		IncrementError("delete")
		logger.GlobalLogger.Errorf("failed to delete %d keys: %v", len(keys), err)
		return 0, NewCacheError("delete", err, true)
	}
	return n, nil
}

// ScanKeys walks the keyspace with SCAN and returns every key matching the pattern.
func (s *Store) ScanKeys(ctx context.Context, match string) ([]string, error) {
	start := time.Now()
	defer func() { RecordOperationDuration("scan", time.Since(start).Seconds()) }()

	var (
		keys   []string
		cursor uint64
	)
	seen := make(map[string]struct{})
	for {
		batch, next, err := s.client.Scan(ctx, cursor, match, scanBatchSize).Result()
		if err != nil {
			IncrementError("scan")
			logger.GlobalLogger.Errorf("failed to scan keys matching %s: %v", match, err)
			return nil, NewCacheError("scan", err, true).WithKey(match)
		}
		// SCAN may return a key more than once
		for _, k := range batch {
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
		if next == 0 {
			return keys, nil
		}
		cursor = next
	}
}
