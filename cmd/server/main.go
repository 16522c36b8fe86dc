package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/b-ciq/brand-assets-server/internal/api"
	"github.com/b-ciq/brand-assets-server/internal/cache"
	"github.com/b-ciq/brand-assets-server/internal/catalog"
	"github.com/b-ciq/brand-assets-server/internal/colors"
	"github.com/b-ciq/brand-assets-server/internal/config"
	"github.com/b-ciq/brand-assets-server/internal/defaults"
	"github.com/b-ciq/brand-assets-server/internal/observability"

	// Import PostgreSQL driver
	_ "github.com/lib/pq"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfiguration(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := observability.NewLogger("server")

	// Database is only needed for the postgres catalog source
	var db *sqlx.DB
	if cfg.Catalog.Source == "postgres" {
		db, err = sqlx.ConnectContext(ctx, "postgres", cfg.Catalog.DSN)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer func() { _ = db.Close() }()
	}

	// Initialize cache
	cacheClient, err := cache.NewCache(ctx, cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}
	defer func() { _ = cacheClient.Close() }()

	// Initialize catalog
	source, err := catalog.NewSource(cfg.Catalog, db)
	if err != nil {
		log.Fatalf("Failed to initialize catalog source: %v", err)
	}
	store, err := catalog.NewStore(source, logger)
	if err != nil {
		log.Fatalf("Failed to initialize catalog store: %v", err)
	}
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize smart defaults engine
	engine := defaults.NewEngine(cfg.Defaults, logger.WithPrefix("defaults"))

	// Initialize color palette
	palette, err := colors.LoadPalette(logger.WithPrefix("colors"))
	if err != nil {
		log.Fatalf("Failed to load color palette: %v", err)
	}

	// Initialize API server
	server := api.NewServer(cfg.API, store, engine, palette, cacheClient, logger.WithPrefix("api"))

	go func() {
		logger.Info("Starting server", map[string]interface{}{
			"address": cfg.API.ListenAddress,
			"catalog": cfg.Catalog.Source,
			"assets":  store.Len(),
		})

		if err := server.Start(); err != nil {
			logger.Info("Server stopped", map[string]interface{}{
				"reason": err.Error(),
			})
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("Received shutdown signal", nil)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("API server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	logger.Info("Server stopped gracefully", nil)
}

// validateConfiguration validates critical configuration settings
func validateConfiguration(cfg *config.Config) error {
	if cfg.API.ReadTimeout == 0 || cfg.API.WriteTimeout == 0 || cfg.API.IdleTimeout == 0 {
		return fmt.Errorf("invalid API timeouts: must be greater than 0")
	}

	if cfg.Catalog.Source == "postgres" && cfg.Catalog.DSN == "" {
		return fmt.Errorf("invalid catalog configuration: postgres source requires a DSN")
	}

	if cfg.Defaults.ConfidenceThreshold <= 0 || cfg.Defaults.ConfidenceThreshold > 1 {
		return fmt.Errorf("invalid confidence threshold: must be within (0,1]")
	}

	return nil
}
