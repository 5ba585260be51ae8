package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	Cache     CacheConfig
	Reconcile ReconcileConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds web catalog client configuration
type CatalogConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// CacheConfig holds record cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ReconcileConfig holds reconciliation pipeline configuration
type ReconcileConfig struct {
	Concurrency        int     `mapstructure:"concurrency"`
	WeightTolerancePct float64 `mapstructure:"weight_tolerance_pct"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/partsight/")

	// Environment variable settings
	v.SetEnvPrefix("PARTSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Catalog defaults
	v.SetDefault("catalog.base_url", "https://catalog.partsight.io")
	v.SetDefault("catalog.requests_per_second", 2.0)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")

	// Reconcile defaults
	v.SetDefault("reconcile.concurrency", 6)
	v.SetDefault("reconcile.weight_tolerance_pct", 0.0)
	v.SetDefault("reconcile.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog base URL is required (set PARTSIGHT_CATALOG_BASE_URL)")
	}

	if config.Reconcile.Concurrency < 1 {
		return fmt.Errorf("reconcile concurrency must be at least 1, got: %d", config.Reconcile.Concurrency)
	}

	if config.Reconcile.WeightTolerancePct < 0 {
		return fmt.Errorf("weight tolerance must not be negative, got: %g", config.Reconcile.WeightTolerancePct)
	}

	return nil
}
