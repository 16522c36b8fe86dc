package api

import (
	"time"
)

// Config holds configuration for the API server
type Config struct {
	ListenAddress string          `mapstructure:"listen_address"`
	ReadTimeout   time.Duration   `mapstructure:"read_timeout"`
	WriteTimeout  time.Duration   `mapstructure:"write_timeout"`
	IdleTimeout   time.Duration   `mapstructure:"idle_timeout"`
	EnableCORS    bool            `mapstructure:"enable_cors"`
	EnableSwagger bool            `mapstructure:"enable_swagger"`
	CacheTTL      time.Duration   `mapstructure:"cache_ttl"`
	RateLimit     RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool          `mapstructure:"enabled"`
	Limit      int           `mapstructure:"limit"`
	Burst      int           `mapstructure:"burst"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		ListenAddress: ":8080",
		ReadTimeout:   30 * time.Second,
		WriteTimeout:  30 * time.Second,
		IdleTimeout:   90 * time.Second,
		EnableCORS:    true,
		EnableSwagger: false,
		CacheTTL:      5 * time.Minute,
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Limit:      100,
			Burst:      150,
			Expiration: time.Hour,
		},
	}
}
