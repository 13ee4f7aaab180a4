package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Cache     CacheConfig     `yaml:"cache"`
	Search    SearchConfig    `yaml:"search"`
	RabbitMQ  RabbitMQConfig  `yaml:"rabbitmq"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type ServerConfig struct {
	Port           int      `yaml:"port"`
	Env            string   `yaml:"env"`
	AllowedOrigins []string `yaml:"allowed_origins"` // production CORS allow list
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // mongo | postgres
	URI         string `yaml:"uri"`
	DBName      string `yaml:"dbname"`
	PostgresDSN string `yaml:"postgres_dsn"`
}

type RedisConfig struct {
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	Password    string `yaml:"password"`
	DB          int    `yaml:"db"`
	TLSEnabled  bool   `yaml:"tls_enabled"`
	TLSCertFile string `yaml:"tls_cert_file"`
	TLSKeyFile  string `yaml:"tls_key_file"`
}

// CacheConfig selects the snapshot cache backend.
type CacheConfig struct {
	Backend         string `yaml:"backend"` // redis | memory
	TTLSeconds      int    `yaml:"ttl_seconds"`
	JanitorInterval int    `yaml:"janitor_interval_seconds"`
}

func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

func (c CacheConfig) Janitor() time.Duration {
	return time.Duration(c.JanitorInterval) * time.Second
}

// SearchConfig holds the listing search tunables. Prices are in minor units.
type SearchConfig struct {
	PriceFilterCeiling int64 `yaml:"price_filter_ceiling"`
	MaxPriceCap        int64 `yaml:"max_price_cap"`
	ListingsPerPage    int   `yaml:"listings_per_page"`
	DedupeFetches      *bool `yaml:"dedupe_fetches"`
	GeohashPrecision   uint  `yaml:"geohash_precision"`
	DefaultLeadDays    int   `yaml:"default_lead_days"`
	DefaultStayNights  int   `yaml:"default_stay_nights"`
}

func (s SearchConfig) Dedupe() bool {
	return s.DedupeFetches == nil || *s.DedupeFetches
}

type RabbitMQConfig struct {
	Enabled    bool   `yaml:"enabled"`
	URL        string `yaml:"url"`
	Exchange   string `yaml:"exchange"`
	Queue      string `yaml:"queue"`
	RoutingKey string `yaml:"routing_key"`
	Prefetch   int    `yaml:"prefetch"`
}

type RateLimitConfig struct {
	RequestsPerMinute int `yaml:"requests_per_minute"`
	Burst             int `yaml:"burst"`
}

const (
	DefaultCacheTTLSeconds    = 600
	DefaultPriceFilterCeiling = 50000
	DefaultMaxPriceCap        = 1500000
	DefaultListingsPerPage    = 20
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies environment overrides and defaults, then validates.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyEnv(cfg *Config) error {
	if port := os.Getenv("PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid PORT value: %w", err)
		}
		cfg.Server.Port = portNum
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Server.Env = env
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if driver := os.Getenv("DB_DRIVER"); driver != "" {
		cfg.Database.Driver = driver
	}
	if uri := os.Getenv("MONGO_URI"); uri != "" {
		cfg.Database.URI = uri
	}
	if dbname := os.Getenv("DB_NAME"); dbname != "" {
		cfg.Database.DBName = dbname
	}
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		cfg.Database.PostgresDSN = dsn
	}
	if host := os.Getenv("REDIS_HOST"); host != "" {
		cfg.Redis.Host = host
	}
	if port := os.Getenv("REDIS_PORT"); port != "" {
		portNum, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid REDIS_PORT value: %w", err)
		}
		cfg.Redis.Port = portNum
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		dbNum, err := strconv.Atoi(db)
		if err != nil {
			return fmt.Errorf("invalid REDIS_DB value: %w", err)
		}
		cfg.Redis.DB = dbNum
	}
	if tlsEnabled := os.Getenv("REDIS_TLS_ENABLED"); tlsEnabled != "" {
		cfg.Redis.TLSEnabled = tlsEnabled == "true"
	}
	if tlsCertFile := os.Getenv("REDIS_TLS_CERT_FILE"); tlsCertFile != "" {
		cfg.Redis.TLSCertFile = tlsCertFile
	}
	if tlsKeyFile := os.Getenv("REDIS_TLS_KEY_FILE"); tlsKeyFile != "" {
		cfg.Redis.TLSKeyFile = tlsKeyFile
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cfg.Cache.Backend = backend
	}
	if ttl := os.Getenv("CACHE_TTL_SECONDS"); ttl != "" {
		ttlNum, err := strconv.Atoi(ttl)
		if err != nil {
			return fmt.Errorf("invalid CACHE_TTL_SECONDS value: %w", err)
		}
		cfg.Cache.TTLSeconds = ttlNum
	}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		cfg.RabbitMQ.URL = url
		cfg.RabbitMQ.Enabled = true
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "INFO"
	}
	cfg.Database.Driver = strings.ToLower(cfg.Database.Driver)
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mongo"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "listings"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Redis.DB < 0 {
		cfg.Redis.DB = 0
	}
	cfg.Cache.Backend = strings.ToLower(cfg.Cache.Backend)
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = "redis"
	}
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = DefaultCacheTTLSeconds
	}
	if cfg.Cache.JanitorInterval <= 0 {
		cfg.Cache.JanitorInterval = 60
	}
	if cfg.Search.PriceFilterCeiling <= 0 {
		cfg.Search.PriceFilterCeiling = DefaultPriceFilterCeiling
	}
	if cfg.Search.MaxPriceCap <= 0 {
		cfg.Search.MaxPriceCap = DefaultMaxPriceCap
	}
	if cfg.Search.ListingsPerPage <= 0 {
		cfg.Search.ListingsPerPage = DefaultListingsPerPage
	}
	if cfg.Search.GeohashPrecision == 0 {
		cfg.Search.GeohashPrecision = 7
	}
	if cfg.Search.DefaultLeadDays <= 0 {
		cfg.Search.DefaultLeadDays = 7
	}
	if cfg.Search.DefaultStayNights <= 0 {
		cfg.Search.DefaultStayNights = 7
	}
	if cfg.RabbitMQ.Exchange == "" {
		cfg.RabbitMQ.Exchange = "listings.events"
	}
	if cfg.RabbitMQ.Queue == "" {
		cfg.RabbitMQ.Queue = "listing-search.availability-changed"
	}
	if cfg.RabbitMQ.RoutingKey == "" {
		cfg.RabbitMQ.RoutingKey = "availability.changed"
	}
	if cfg.RabbitMQ.Prefetch <= 0 {
		cfg.RabbitMQ.Prefetch = 10
	}
	if cfg.RateLimit.RequestsPerMinute <= 0 {
		cfg.RateLimit.RequestsPerMinute = 100
	}
	if cfg.RateLimit.Burst <= 0 {
		cfg.RateLimit.Burst = 10
	}
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535")
	}
	switch c.Database.Driver {
	case "mongo":
		if c.Database.URI == "" {
			return fmt.Errorf("MONGO_URI is required for the mongo driver")
		}
	case "postgres":
		if c.Database.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown database driver: %s", c.Database.Driver)
	}
	switch c.Cache.Backend {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown cache backend: %s", c.Cache.Backend)
	}
	if c.Redis.Port <= 0 || c.Redis.Port > 65535 {
		return fmt.Errorf("REDIS_PORT must be between 1 and 65535")
	}
	if c.Cache.Backend == "redis" && c.Redis.TLSEnabled && c.Redis.TLSCertFile != "" {
		if _, err := os.Stat(c.Redis.TLSCertFile); os.IsNotExist(err) {
			return fmt.Errorf("TLS certificate file does not exist: %s", c.Redis.TLSCertFile)
		}
	}
	if c.Search.MaxPriceCap < c.Search.PriceFilterCeiling {
		return fmt.Errorf("max_price_cap (%d) must not be below price_filter_ceiling (%d)",
			c.Search.MaxPriceCap, c.Search.PriceFilterCeiling)
	}
	if c.Search.GeohashPrecision > 12 {
		return fmt.Errorf("geohash_precision must be at most 12")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return fmt.Errorf("RABBITMQ_URL is required when rabbitmq is enabled")
	}
	return nil
}
