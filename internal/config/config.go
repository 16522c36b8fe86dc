// Package config loads the application configuration from file and
// environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/b-ciq/brand-assets-server/internal/api"
	"github.com/b-ciq/brand-assets-server/internal/cache"
	"github.com/b-ciq/brand-assets-server/internal/catalog"
	"github.com/b-ciq/brand-assets-server/internal/defaults"
)

// Config holds the complete application configuration
type Config struct {
	API      api.Config        `mapstructure:"api"`
	Cache    cache.RedisConfig `mapstructure:"cache"`
	Catalog  catalog.Config    `mapstructure:"catalog"`
	Defaults defaults.Config   `mapstructure:"defaults"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Read from config file
	configFile := os.Getenv("BRAND_CONFIG_FILE")
	if configFile == "" {
		configFile = "configs/config.yaml"
	}

	v.SetConfigFile(configFile)

	// Read from environment variables prefixed with BRAND_
	v.SetEnvPrefix("BRAND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Config file is not required if environment variables are set
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.listen_address", ":8080")
	v.SetDefault("api.read_timeout", 30*time.Second)
	v.SetDefault("api.write_timeout", 30*time.Second)
	v.SetDefault("api.idle_timeout", 90*time.Second)
	v.SetDefault("api.enable_cors", true)
	v.SetDefault("api.enable_swagger", false)
	v.SetDefault("api.cache_ttl", 5*time.Minute)

	// API rate limiting defaults
	v.SetDefault("api.rate_limit.enabled", true)
	v.SetDefault("api.rate_limit.limit", 100)
	v.SetDefault("api.rate_limit.burst", 150)
	v.SetDefault("api.rate_limit.expiration", 1*time.Hour)

	// Cache defaults. Caching is opt-in: the noop backend is used unless
	// a Redis address is configured.
	v.SetDefault("cache.type", "none")
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.max_retries", 3)
	v.SetDefault("cache.dial_timeout", 5*time.Second)
	v.SetDefault("cache.read_timeout", 3*time.Second)
	v.SetDefault("cache.write_timeout", 3*time.Second)
	v.SetDefault("cache.pool_size", 10)
	v.SetDefault("cache.min_idle_conns", 2)
	v.SetDefault("cache.pool_timeout", 4*time.Second)

	// Catalog defaults
	v.SetDefault("catalog.source", "embedded")
	v.SetDefault("catalog.request_timeout", 10*time.Second)
	v.SetDefault("catalog.max_retries", 3)

	// Smart defaults engine
	v.SetDefault("defaults.confidence_threshold", 0.6)
	v.SetDefault("defaults.enable_team_patterns", true)
}
