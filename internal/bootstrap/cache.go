package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
)

// initializeMetrics initializes Prometheus metrics
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	prometheusMetrics := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return prometheusMetrics
}

// initializeAICache initializes the recommendation response cache based on
// configuration.
func initializeAICache(
	cfg *config.Config,
) (cache.Cache[ai.RecommendationResult], func() error, error) {
	switch cfg.AICacheType {
	case config.AICacheTypeRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		c, err := cache.NewRueidisCache[ai.RecommendationResult](
			ctx,
			cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			"xzmovies:ai:",
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize redis AI cache: %w", err)
		}
		log.Printf("AI cache: redis (addr=%s, db=%d, ttl=%s)", cfg.RedisAddr, cfg.RedisDB, cfg.AICacheTTL)
		return c, c.Close, nil

	default: // memory
		c := cache.NewMemoryCache[ai.RecommendationResult]()
		log.Printf("AI cache: memory (single instance only, ttl=%s)", cfg.AICacheTTL)
		return c, c.Close, nil
	}
}
