package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ecomart/backend/config"
	httpDelivery "github.com/ecomart/backend/internal/delivery/http"
	"github.com/ecomart/backend/internal/infrastructure/cache"
	"github.com/ecomart/backend/internal/infrastructure/catalog"
	"github.com/ecomart/backend/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting EcoMart Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (watch: %v)", cfg.Catalog.Path, cfg.Catalog.Watch)

	// Catalog store: load once up front, then rebuild on file changes
	source := catalog.NewFileSource(cfg.Catalog.Path)
	store := catalog.NewStore(source)
	if err := store.Refresh(context.Background()); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	if cfg.Catalog.Watch {
		go func() {
			if err := store.Watch(context.Background(), cfg.Catalog.Path); err != nil {
				log.Printf("catalog watcher stopped: %v", err)
			}
		}()
	}

	resultCache := cache.NewMemoryCache()
	log.Printf("Result cache TTL: %s", cfg.Cache.TTL)

	recommendationService := usecase.NewRecommendationService(
		store,
		resultCache,
		usecase.RankingConfig{
			SearchTopK:            cfg.Ranking.SearchTopK,
			CartTopK:              cfg.Ranking.CartTopK,
			DefaultPriceTolerance: cfg.Ranking.PriceTolerance,
			DuplicateThreshold:    cfg.Ranking.DuplicateThreshold,
			CacheTTL:              cfg.Cache.TTL,
		},
	)
	log.Printf("Ranking: searchTopK=%d, cartTopK=%d, tolerance=%.2f, dupThreshold=%.2f",
		cfg.Ranking.SearchTopK, cfg.Ranking.CartTopK,
		cfg.Ranking.PriceTolerance, cfg.Ranking.DuplicateThreshold)

	motivation := usecase.NewMotivationGenerator(time.Now().UnixNano())

	handler := httpDelivery.NewHandler(recommendationService, motivation, store)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
