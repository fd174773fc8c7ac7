package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/infrastructure/csvstore"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopLens Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s", cfg.Catalog.CSVPath)

	// Load the product catalog. It is built once here and stays immutable
	// for the process lifetime.
	store := csvstore.New(cfg.Catalog.CSVPath)
	if cfg.Server.Environment == "development" {
		store.SetDebug(true)
	}

	products, err := store.Load(context.Background())
	if err != nil {
		log.Fatalf("Failed to load product catalog: %v", err)
	}

	catalog := usecase.NewCatalog(products)
	log.Printf("Loaded %d products (%d categories, %d brands)",
		catalog.Len(), len(catalog.Categories()), len(catalog.Brands()))
	log.Printf("Products on sale: %d", len(catalog.OnSale(catalog.Len())))

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(catalog, memoryCache, usecase.SearchConfig{
		CacheTTL:           cfg.Cache.TTL,
		EnableDebugLogging: cfg.Search.EnableDebugLogging,
	})

	log.Printf("Search: default_max_results=%d, debug=%v",
		cfg.Search.DefaultMaxResults, cfg.Search.EnableDebugLogging)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, catalog, cfg.Search.DefaultMaxResults)

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
