package bootstrap

import (
	"log"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/middleware"

	"github.com/gin-gonic/gin"
)

// rateLimitMiddlewares holds rate limiting middlewares for different endpoints
type rateLimitMiddlewares struct {
	login          gin.HandlerFunc
	register       gin.HandlerFunc
	forgotPassword gin.HandlerFunc
	ai             gin.HandlerFunc
}

// setupRateLimiting configures rate limiting middlewares based on configuration
func setupRateLimiting(cfg *config.Config) rateLimitMiddlewares {
	noOpMiddleware := func(c *gin.Context) { c.Next() }

	if !cfg.EnableRateLimit {
		return rateLimitMiddlewares{
			login:          noOpMiddleware,
			register:       noOpMiddleware,
			forgotPassword: noOpMiddleware,
			ai:             noOpMiddleware,
		}
	}

	return createRateLimiters(cfg)
}

// createRateLimiters creates rate limiting middlewares for all endpoints
func createRateLimiters(cfg *config.Config) rateLimitMiddlewares {
	log.Printf("Rate limiting enabled (store: %s)", cfg.RateLimitStore)

	storeType := middleware.RateLimitStoreType(cfg.RateLimitStore)
	if storeType == middleware.RateLimitStoreRedis {
		log.Printf("Redis rate limiting configured (addr=%s)", cfg.RedisAddr)
	} else {
		log.Printf("In-memory rate limiting configured (single instance only)")
	}

	createLimiter := func(requestsPerMinute int, endpoint string) gin.HandlerFunc {
		limiter, err := middleware.NewRateLimiter(middleware.RateLimitConfig{
			RequestsPerMinute: requestsPerMinute,
			StoreType:         storeType,
			CleanupInterval:   cfg.RateLimitCleanupInterval,
			RedisAddr:         cfg.RedisAddr,
			RedisPassword:     cfg.RedisPassword,
			RedisDB:           cfg.RedisDB,
		})
		if err != nil {
			log.Fatalf("Failed to create rate limiter for %s: %v", endpoint, err)
		}
		return limiter
	}

	return rateLimitMiddlewares{
		login:          createLimiter(cfg.LoginRateLimit, "/api/auth/login"),
		register:       createLimiter(cfg.RegisterRateLimit, "/api/auth/register"),
		forgotPassword: createLimiter(cfg.ForgotPasswordRateLimit, "/api/auth/forgot-password"),
		ai:             createLimiter(cfg.AIRateLimit, "/api/ai"),
	}
}
