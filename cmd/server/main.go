package main

import (
	"fmt"
	"log"
	"os"

	"github.com/partsight/backend/config"
	httpDelivery "github.com/partsight/backend/internal/delivery/http"
	"github.com/partsight/backend/internal/infrastructure/cache"
	"github.com/partsight/backend/internal/infrastructure/catalog"
	"github.com/partsight/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Partsight Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (%.1f req/s)", cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerSecond)

	// Initialize infrastructure dependencies
	recordCache := cache.NewMemoryCache()
	log.Printf("Record cache TTL: %s", cfg.Cache.TTL)

	catalogClient := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.RequestsPerSecond)

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		catalogClient.SetDebug(true)
		log.Printf("Catalog client debug mode enabled")
	}

	fetcher := cache.NewCachedFetcher(catalogClient, recordCache, cfg.Cache.TTL)

	// Initialize usecase layer
	reconcileService := usecase.NewReconcileService(fetcher, usecase.ReconcileConfig{
		Concurrency:        cfg.Reconcile.Concurrency,
		WeightTolerancePct: cfg.Reconcile.WeightTolerancePct,
		EnableDebugLogging: cfg.Reconcile.EnableDebugLogging,
	})

	log.Printf("Reconcile: concurrency=%d, weight tolerance=%.1f%%",
		cfg.Reconcile.Concurrency, cfg.Reconcile.WeightTolerancePct)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(fetcher, reconcileService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
