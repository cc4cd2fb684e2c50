package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Display   DisplayConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds the remote plant catalog API configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Path              string        `mapstructure:"path"`
	Timeout           time.Duration `mapstructure:"timeout"`         // whole refresh, all attempts included
	RequestTimeout    time.Duration `mapstructure:"request_timeout"` // one HTTP attempt
	MaxRetries        int           `mapstructure:"max_retries"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	BreakerFailures   int           `mapstructure:"breaker_failures"` // 0 disables the circuit breaker
	BreakerCooldown   time.Duration `mapstructure:"breaker_cooldown"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	Type string        `mapstructure:"type"` // "memory" or "redis"
	TTL  time.Duration `mapstructure:"ttl"`
}

// RedisConfig holds the connection settings used when cache.type is redis
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig holds inbound rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// DisplayConfig holds the substitutions used when rendering plant records
type DisplayConfig struct {
	PlaceholderImage       string `mapstructure:"placeholder_image"`
	PlaceholderDescription string `mapstructure:"placeholder_description"`
	CurrencySymbol         string `mapstructure:"currency_symbol"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/plantshop/")

	v.SetEnvPrefix("PLANTSHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults are enough
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func loadEnvFile() error {
	err := gotenv.Load(".env")
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://openapi.programming-hero.com/api")
	v.SetDefault("catalog.path", "/plants")
	v.SetDefault("catalog.timeout", "15s")
	v.SetDefault("catalog.request_timeout", "4s")
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.requests_per_second", 5)
	v.SetDefault("catalog.burst", 10)
	v.SetDefault("catalog.breaker_failures", 5)
	v.SetDefault("catalog.breaker_cooldown", "30s")

	// Cache defaults
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", "5m")

	// Redis defaults
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Display defaults
	v.SetDefault("display.placeholder_image", "https://via.placeholder.com/300x200?text=Plant")
	v.SetDefault("display.placeholder_description", "No description available.")
	v.SetDefault("display.currency_symbol", "৳")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set PLANTSHOP_CATALOG_BASE_URL)")
	}

	u, err := url.Parse(config.Catalog.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("catalog base URL must be an absolute http(s) URL, got: %s", config.Catalog.BaseURL)
	}

	if config.Catalog.MaxRetries < 1 {
		return fmt.Errorf("catalog max retries must be at least 1, got: %d", config.Catalog.MaxRetries)
	}

	if config.Catalog.RequestTimeout < 0 {
		return fmt.Errorf("catalog request timeout must not be negative, got: %s", config.Catalog.RequestTimeout)
	}

	// a single attempt may not use up the whole refresh deadline
	if config.Catalog.Timeout > 0 && config.Catalog.RequestTimeout >= config.Catalog.Timeout {
		return fmt.Errorf("catalog request timeout (%s) must be shorter than catalog timeout (%s)",
			config.Catalog.RequestTimeout, config.Catalog.Timeout)
	}

	if config.Catalog.BreakerFailures < 0 {
		return fmt.Errorf("catalog breaker failures must not be negative, got: %d", config.Catalog.BreakerFailures)
	}

	switch config.Cache.Type {
	case "memory":
	case "redis":
		if config.Redis.Addr == "" {
			return fmt.Errorf("redis address is required when cache type is redis (set PLANTSHOP_REDIS_ADDR)")
		}
	default:
		return fmt.Errorf("cache type must be 'memory' or 'redis', got: %s", config.Cache.Type)
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got: %s", config.Cache.TTL)
	}

	return nil
}
