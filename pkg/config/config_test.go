package config

import (
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ENV", "LOG_LEVEL", "DB_DRIVER", "MONGO_URI", "DB_NAME", "POSTGRES_DSN",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TLS_ENABLED",
		"REDIS_TLS_CERT_FILE", "REDIS_TLS_KEY_FILE", "CACHE_BACKEND", "CACHE_TTL_SECONDS", "RABBITMQ_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestParseAppliesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse([]byte("database:\n  uri: mongodb://localhost:27017\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Cache.TTL() != 600*time.Second {
		t.Fatalf("expected 600s ttl, got %v", cfg.Cache.TTL())
	}
	if cfg.Search.PriceFilterCeiling != 50000 || cfg.Search.MaxPriceCap != 1500000 {
		t.Fatalf("unexpected price limits: %+v", cfg.Search)
	}
	if cfg.Search.ListingsPerPage != 20 {
		t.Fatalf("expected 20 listings per page, got %d", cfg.Search.ListingsPerPage)
	}
	if !cfg.Search.Dedupe() {
		t.Fatal("expected fetch dedupe to default on")
	}
	if cfg.Database.Driver != "mongo" || cfg.Cache.Backend != "redis" {
		t.Fatalf("unexpected backends: driver=%s cache=%s", cfg.Database.Driver, cfg.Cache.Backend)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "postgres://u:p@localhost:5432/listings")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("REDIS_PORT", "6380")

	cfg, err := Parse([]byte("search:\n  dedupe_fetches: false\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Driver != "postgres" {
		t.Fatalf("expected postgres driver, got %s", cfg.Database.Driver)
	}
	if cfg.Cache.Backend != "memory" || cfg.Cache.TTLSeconds != 30 {
		t.Fatalf("unexpected cache config: %+v", cfg.Cache)
	}
	if cfg.Redis.Port != 6380 {
		t.Fatalf("expected redis port 6380, got %d", cfg.Redis.Port)
	}
	if cfg.Search.Dedupe() {
		t.Fatal("expected dedupe disabled by yaml")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"MissingMongoURI", "database:\n  driver: mongo\n", "MONGO_URI"},
		{"MissingPostgresDSN", "database:\n  driver: postgres\n", "POSTGRES_DSN"},
		{"UnknownDriver", "database:\n  driver: sqlite\n", "unknown database driver"},
		{"UnknownCache", "database:\n  uri: mongodb://x\ncache:\n  backend: memcached\n", "unknown cache backend"},
		{"CapBelowCeiling", "database:\n  uri: mongodb://x\nsearch:\n  price_filter_ceiling: 100\n  max_price_cap: 50\n", "max_price_cap"},
		{"RabbitWithoutURL", "database:\n  uri: mongodb://x\nrabbitmq:\n  enabled: true\n", "RABBITMQ_URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseInvalidEnvNumber(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_DB", "zero")
	if _, err := Parse([]byte("database:\n  uri: mongodb://x\n")); err == nil {
		t.Fatal("expected error for non-numeric REDIS_DB")
	}
}
