package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("PLANTSHOP_SERVER_PORT")
		os.Unsetenv("PLANTSHOP_SERVER_ENVIRONMENT")
		os.Unsetenv("PLANTSHOP_SERVER_ALLOWED_ORIGINS")
		os.Unsetenv("PLANTSHOP_CATALOG_BASE_URL")
		os.Unsetenv("PLANTSHOP_CATALOG_PATH")
		os.Unsetenv("PLANTSHOP_CATALOG_TIMEOUT")
		os.Unsetenv("PLANTSHOP_CATALOG_REQUEST_TIMEOUT")
		os.Unsetenv("PLANTSHOP_CATALOG_MAX_RETRIES")
		os.Unsetenv("PLANTSHOP_CACHE_TYPE")
		os.Unsetenv("PLANTSHOP_CACHE_TTL")
		os.Unsetenv("PLANTSHOP_REDIS_ADDR")
		os.Unsetenv("PLANTSHOP_RATELIMIT_PER_IP")
		os.Unsetenv("PLANTSHOP_DISPLAY_CURRENCY_SYMBOL")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "8080" {
			t.Errorf("Server.Port = %s, want 8080", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://openapi.programming-hero.com/api" {
			t.Errorf("Catalog.BaseURL = %s, want https://openapi.programming-hero.com/api", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Path != "/plants" {
			t.Errorf("Catalog.Path = %s, want /plants", cfg.Catalog.Path)
		}
		if cfg.Catalog.Timeout != 15*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 15s", cfg.Catalog.Timeout)
		}
		if cfg.Catalog.RequestTimeout != 4*time.Second {
			t.Errorf("Catalog.RequestTimeout = %v, want 4s", cfg.Catalog.RequestTimeout)
		}
		if cfg.Catalog.MaxRetries != 3 {
			t.Errorf("Catalog.MaxRetries = %d, want 3", cfg.Catalog.MaxRetries)
		}
		if cfg.Catalog.BreakerFailures != 5 {
			t.Errorf("Catalog.BreakerFailures = %d, want 5", cfg.Catalog.BreakerFailures)
		}
		if cfg.Catalog.BreakerCooldown != 30*time.Second {
			t.Errorf("Catalog.BreakerCooldown = %v, want 30s", cfg.Catalog.BreakerCooldown)
		}
		if cfg.Cache.Type != "memory" {
			t.Errorf("Cache.Type = %s, want memory", cfg.Cache.Type)
		}
		if cfg.Cache.TTL != 5*time.Minute {
			t.Errorf("Cache.TTL = %v, want 5m", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 100 {
			t.Errorf("RateLimit.PerIP = %d, want 100", cfg.RateLimit.PerIP)
		}
		if cfg.Display.CurrencySymbol != "৳" {
			t.Errorf("Display.CurrencySymbol = %s, want ৳", cfg.Display.CurrencySymbol)
		}
		if cfg.Display.PlaceholderDescription == "" {
			t.Error("Display.PlaceholderDescription should have a default")
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PLANTSHOP_SERVER_PORT", "9090")
		os.Setenv("PLANTSHOP_SERVER_ENVIRONMENT", "production")
		os.Setenv("PLANTSHOP_CATALOG_BASE_URL", "https://plants.example.com/api")
		os.Setenv("PLANTSHOP_CATALOG_TIMEOUT", "3s")
		os.Setenv("PLANTSHOP_CATALOG_REQUEST_TIMEOUT", "1s")
		os.Setenv("PLANTSHOP_CATALOG_MAX_RETRIES", "5")
		os.Setenv("PLANTSHOP_CACHE_TTL", "1h")
		os.Setenv("PLANTSHOP_RATELIMIT_PER_IP", "200")
		os.Setenv("PLANTSHOP_DISPLAY_CURRENCY_SYMBOL", "$")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Catalog.BaseURL != "https://plants.example.com/api" {
			t.Errorf("Catalog.BaseURL = %s, want https://plants.example.com/api", cfg.Catalog.BaseURL)
		}
		if cfg.Catalog.Timeout != 3*time.Second {
			t.Errorf("Catalog.Timeout = %v, want 3s", cfg.Catalog.Timeout)
		}
		if cfg.Catalog.RequestTimeout != time.Second {
			t.Errorf("Catalog.RequestTimeout = %v, want 1s", cfg.Catalog.RequestTimeout)
		}
		if cfg.Catalog.MaxRetries != 5 {
			t.Errorf("Catalog.MaxRetries = %d, want 5", cfg.Catalog.MaxRetries)
		}
		if cfg.Cache.TTL != time.Hour {
			t.Errorf("Cache.TTL = %v, want 1h", cfg.Cache.TTL)
		}
		if cfg.RateLimit.PerIP != 200 {
			t.Errorf("RateLimit.PerIP = %d, want 200", cfg.RateLimit.PerIP)
		}
		if cfg.Display.CurrencySymbol != "$" {
			t.Errorf("Display.CurrencySymbol = %s, want $", cfg.Display.CurrencySymbol)
		}
	})

	t.Run("fails validation for relative base URL", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PLANTSHOP_CATALOG_BASE_URL", "/api")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for relative base URL")
		}
	})

	t.Run("loads redis cache settings", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PLANTSHOP_CACHE_TYPE", "redis")
		os.Setenv("PLANTSHOP_REDIS_ADDR", "redis.internal:6380")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if cfg.Cache.Type != "redis" {
			t.Errorf("Cache.Type = %s, want redis", cfg.Cache.Type)
		}
		if cfg.Redis.Addr != "redis.internal:6380" {
			t.Errorf("Redis.Addr = %s, want redis.internal:6380", cfg.Redis.Addr)
		}
	})

	t.Run("fails validation for invalid cache type", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PLANTSHOP_CACHE_TYPE", "memcached")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for invalid cache type")
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	t.Run("returns nil when .env file doesn't exist", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		err := loadEnvFile()
		if err != nil {
			t.Errorf("loadEnvFile() error = %v, want nil when file doesn't exist", err)
		}
	})

	t.Run("loads variables from .env file", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		envContent := `
# Comment line
PLANTSHOP_TEST_VAR_1=value1
PLANTSHOP_TEST_VAR_2=value2
`
		if err := os.WriteFile(".env", []byte(envContent), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		os.Unsetenv("PLANTSHOP_TEST_VAR_1")
		os.Unsetenv("PLANTSHOP_TEST_VAR_2")
		defer os.Unsetenv("PLANTSHOP_TEST_VAR_1")
		defer os.Unsetenv("PLANTSHOP_TEST_VAR_2")

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("PLANTSHOP_TEST_VAR_1") != "value1" {
			t.Errorf("PLANTSHOP_TEST_VAR_1 = %s, want value1", os.Getenv("PLANTSHOP_TEST_VAR_1"))
		}
		if os.Getenv("PLANTSHOP_TEST_VAR_2") != "value2" {
			t.Errorf("PLANTSHOP_TEST_VAR_2 = %s, want value2", os.Getenv("PLANTSHOP_TEST_VAR_2"))
		}
	})

	t.Run("doesn't override existing environment variables", func(t *testing.T) {
		originalDir, _ := os.Getwd()
		defer os.Chdir(originalDir)

		tempDir := t.TempDir()
		os.Chdir(tempDir)

		os.Setenv("PLANTSHOP_TEST_OVERRIDE", "existing-value")
		defer os.Unsetenv("PLANTSHOP_TEST_OVERRIDE")

		if err := os.WriteFile(".env", []byte("PLANTSHOP_TEST_OVERRIDE=new-value"), 0644); err != nil {
			t.Fatalf("Failed to create test .env file: %v", err)
		}

		if err := loadEnvFile(); err != nil {
			t.Fatalf("loadEnvFile() error = %v, want nil", err)
		}

		if os.Getenv("PLANTSHOP_TEST_OVERRIDE") != "existing-value" {
			t.Errorf("PLANTSHOP_TEST_OVERRIDE = %s, want existing-value (should not override)", os.Getenv("PLANTSHOP_TEST_OVERRIDE"))
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Catalog: CatalogConfig{
				BaseURL:    "https://openapi.programming-hero.com/api",
				MaxRetries: 3,
			},
			Cache: CacheConfig{
				Type: "memory",
				TTL:  time.Minute,
			},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		if err := validate(valid()); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when base URL is empty", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.BaseURL = ""
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for empty base URL")
		}
	})

	t.Run("fails for non-http scheme", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.BaseURL = "ftp://plants.example.com"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for ftp scheme")
		}
	})

	t.Run("fails for redis cache without address", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "redis"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for missing redis address")
		}
	})

	t.Run("accepts redis cache with address", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "redis"
		cfg.Redis.Addr = "localhost:6379"
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when request timeout is not shorter than timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.Timeout = 5 * time.Second
		cfg.Catalog.RequestTimeout = 5 * time.Second
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for request timeout >= timeout")
		}
	})

	t.Run("accepts request timeout shorter than timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.Timeout = 15 * time.Second
		cfg.Catalog.RequestTimeout = 4 * time.Second
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for negative request timeout", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.RequestTimeout = -time.Second
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative request timeout")
		}
	})

	t.Run("fails for negative breaker failures", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.BreakerFailures = -1
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative breaker failures")
		}
	})

	t.Run("fails when max retries is zero", func(t *testing.T) {
		cfg := valid()
		cfg.Catalog.MaxRetries = 0
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for zero retries")
		}
	})

	t.Run("fails for invalid cache type", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "invalid-type"
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for invalid cache type")
		}
	})

	t.Run("allows zero TTL to disable caching", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.TTL = 0
		if err := validate(cfg); err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails for negative TTL", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.TTL = -time.Second
		if err := validate(cfg); err == nil {
			t.Error("validate() error = nil, want error for negative TTL")
		}
	})
}
