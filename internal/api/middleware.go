package api

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// RequestLogger middleware logs HTTP requests
func RequestLogger(logger observability.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		clientIP := c.ClientIP()

		logger.Info("Request", map[string]interface{}{
			"client":  clientIP,
			"status":  statusCode,
			"latency": latency.String(),
			"method":  c.Request.Method,
			"path":    path,
		})

		if len(c.Errors) > 0 {
			logger.Error("Request errors", map[string]interface{}{
				"path":   path,
				"errors": c.Errors.String(),
			})
		}
	}
}

// CORSMiddleware enables cross-origin requests from the configured origins
func CORSMiddleware(config CORSConfig) gin.HandlerFunc {
	allowed := "*"
	if len(config.AllowedOrigins) > 0 {
		allowed = strings.Join(config.AllowedOrigins, ", ")
	}

	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RateLimiterStorage provides per-client storage for rate limiting
type RateLimiterStorage struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	expiry   map[string]time.Time
	config   RateLimitConfig
}

// NewRateLimiterStorage creates a new rate limiter storage
func NewRateLimiterStorage(config RateLimitConfig) *RateLimiterStorage {
	return &RateLimiterStorage{
		limiters: make(map[string]*rate.Limiter),
		expiry:   make(map[string]time.Time),
		config:   config,
	}
}

// GetLimiter returns a rate limiter for a given key
func (s *RateLimiterStorage) GetLimiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limiter, exists := s.limiters[key]; exists {
		if time.Now().Before(s.expiry[key]) {
			return limiter
		}
		delete(s.limiters, key)
		delete(s.expiry, key)
	}

	limiter := rate.NewLimiter(rate.Limit(s.config.Limit), s.config.Burst)
	s.limiters[key] = limiter
	s.expiry[key] = time.Now().Add(s.config.Expiration)

	return limiter
}

// RateLimiter middleware implements per-client-IP rate limiting
func RateLimiter(config RateLimitConfig) gin.HandlerFunc {
	storage := NewRateLimiterStorage(config)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := storage.GetLimiter(clientIP)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}
