package cache

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"listing-search/pkg/config"
	"listing-search/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient builds a client for the given configuration. It does not dial: go-redis
// connects lazily and reconnects on its own, so an unreachable server is reported by
// PingRedis rather than here. Only a bad TLS setup fails construction.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	var tlsConfig *tls.Config
	if cfg.TLSEnabled {
		if cfg.TLSCertFile != "" {
			keyFile := cfg.TLSKeyFile
			if keyFile == "" {
				keyFile = cfg.TLSCertFile
			}
			cert, err := tls.LoadX509KeyPair(cfg.TLSCertFile, keyFile)
			if err != nil {
				logger.GlobalLogger.Errorf("failed to load TLS certificate: %v", err)
				return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
			}
			tlsConfig = &tls.Config{
				Certificates: []tls.Certificate{cert},
				MinVersion:   tls.VersionTLS12,
			}
		} else {
			tlsConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		TLSConfig:    tlsConfig,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	return client, nil
}

// PingRedis checks that the server answers within timeout.
func PingRedis(ctx context.Context, client CacheClient, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := client.Ping(ctx).Err()
	RecordOperationDuration("ping", time.Since(start).Seconds())
	if err != nil {
		IncrementError("ping")
		return NewCacheError("ping", err, true)
	}
	return nil
}

func CloseRedis(client CacheClient) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.GlobalLogger.Errorf("error closing Redis: %v", err)
	} else {
		logger.GlobalLogger.Println("Redis connection closed")
	}
}
