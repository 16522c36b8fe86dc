package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/b-ciq/brand-assets-server/internal/cache"
	"github.com/b-ciq/brand-assets-server/internal/catalog"
	"github.com/b-ciq/brand-assets-server/internal/colors"
	"github.com/b-ciq/brand-assets-server/internal/defaults"
	"github.com/b-ciq/brand-assets-server/internal/observability"
)

// Server represents the API server
type Server struct {
	router  *gin.Engine
	server  *http.Server
	store   *catalog.Store
	engine  *defaults.Engine
	palette *colors.Palette
	cache   cache.Cache
	config  Config
	logger  observability.Logger
}

// NewServer creates a new API server
func NewServer(cfg Config, store *catalog.Store, engine *defaults.Engine, palette *colors.Palette, cacheClient cache.Cache, logger observability.Logger) *Server {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))

	if cfg.RateLimit.Enabled {
		router.Use(RateLimiter(cfg.RateLimit))
	}

	if cfg.EnableCORS {
		corsConfig := CORSConfig{
			AllowedOrigins: []string{"*"}, // Default to allow all origins in development
		}
		router.Use(CORSMiddleware(corsConfig))
	}

	server := &Server{
		router:  router,
		store:   store,
		engine:  engine,
		palette: palette,
		cache:   cacheClient,
		config:  cfg,
		logger:  logger,
		server: &http.Server{
			Addr:         cfg.ListenAddress,
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
	}

	server.setupRoutes()

	return server
}

// setupRoutes initializes all API routes
func (s *Server) setupRoutes() {
	// Public endpoints
	s.router.GET("/health", s.healthHandler)

	// Swagger API documentation
	if s.config.EnableSwagger {
		s.router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := s.router.Group("/api/v1")

	// Root endpoint to provide API entry points (HATEOAS)
	v1.GET("/", func(c *gin.Context) {
		baseURL := s.getBaseURL(c)
		c.JSON(http.StatusOK, gin.H{
			"api_version": "1.0",
			"description": "Brand assets search and download configuration API",
			"links": map[string]string{
				"search":   baseURL + "/api/v1/assets/search",
				"defaults": baseURL + "/api/v1/defaults",
				"colors":   baseURL + "/api/v1/colors",
				"health":   baseURL + "/health",
			},
		})
	})

	searchAPI := NewSearchAPI(s.store, s.cache, s.config.CacheTTL, s.logger)
	searchAPI.RegisterRoutes(v1)

	defaultsAPI := NewDefaultsAPI(s.engine, s.logger)
	defaultsAPI.RegisterRoutes(v1)

	colorsAPI := NewColorsAPI(s.palette)
	colorsAPI.RegisterRoutes(v1)
}

// Start starts the API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// healthHandler returns the health status of all components
func (s *Server) healthHandler(c *gin.Context) {
	health := map[string]string{
		"catalog":  s.store.Health(),
		"defaults": s.engine.Health(),
		"colors":   s.palette.Health(),
		"cache":    s.cacheHealth(c.Request.Context()),
	}

	allHealthy := true
	for _, status := range health {
		if !strings.HasPrefix(status, "healthy") {
			allHealthy = false
			break
		}
	}

	if allHealthy {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"components": health,
		})
	} else {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "unhealthy",
			"components": health,
		})
	}
}

// cacheHealth pings the cache when the backend supports it
func (s *Server) cacheHealth(ctx context.Context) string {
	type pinger interface {
		Ping(ctx context.Context) error
	}

	if p, ok := s.cache.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			return "unhealthy: " + err.Error()
		}
		return "healthy"
	}
	return "healthy (noop)"
}

// getBaseURL extracts the base URL from the request for HATEOAS links
func (s *Server) getBaseURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}

	host := c.Request.Host
	if forwardedHost := c.GetHeader("X-Forwarded-Host"); forwardedHost != "" {
		host = forwardedHost
	}

	return scheme + "://" + host
}
