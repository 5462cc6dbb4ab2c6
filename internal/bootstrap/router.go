package bootstrap

import (
	"log"
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	tokens *token.Provider,
	h handlerSet,
	prometheusMetrics metrics.Recorder,
) *gin.Engine {
	setupGinMode(cfg)
	r := gin.New()

	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Rate limiting
	rateLimiters := setupRateLimiting(cfg)

	setupAllRoutes(r, db, tokens, h, rateLimiters)

	logServerStartup(cfg)

	return r
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	case cfg.MetricsToken != "":
		log.Printf("Prometheus metrics enabled at /metrics with Bearer token authentication")
		r.GET(
			"/metrics",
			middleware.MetricsAuthMiddleware(cfg.MetricsToken),
			gin.WrapH(promhttp.Handler()),
		)
	default:
		log.Printf("Prometheus metrics enabled at /metrics (no authentication)")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(
	r *gin.Engine,
	db *store.Store,
	tokens *token.Provider,
	h handlerSet,
	rateLimiters rateLimitMiddlewares,
) {
	requireAuth := middleware.RequireAuth(tokens, db)

	// Auth routes (public)
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", rateLimiters.register, h.auth.Register)
		authGroup.POST("/login", rateLimiters.login, h.auth.Login)
		authGroup.POST("/google", rateLimiters.login, h.auth.GoogleAuth)
		authGroup.GET("/verify-email", h.auth.VerifyEmail)
		authGroup.POST("/resend-verification", rateLimiters.forgotPassword, h.auth.ResendVerification)
		authGroup.POST("/forgot-password", rateLimiters.forgotPassword, h.auth.ForgotPassword)
		authGroup.POST("/reset-password", h.auth.ResetPassword)
	}

	// Review routes; the per-movie listing is the one public read
	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/:id", h.review.GetMovieReviews)
		reviews.POST("", requireAuth, h.review.AddReview)
		reviews.GET("/user/:userId", requireAuth, h.review.GetUserReviews)
		reviews.PATCH("/:id", requireAuth, h.review.UpdateReview)
		reviews.DELETE("/:id", requireAuth, h.review.DeleteReview)
		reviews.POST("/:id/like", requireAuth, h.review.Like)
		reviews.POST("/:id/dislike", requireAuth, h.review.Dislike)
	}

	// Account routes (require login)
	users := r.Group("/api/users", requireAuth)
	{
		users.GET("/:id", h.user.GetProfile)
		users.PATCH("/:id", h.user.UpdateProfile)
		users.DELETE("/:id", h.user.DeleteAccount)
		users.GET("/:id/watchlist", h.user.GetWatchlist)
		users.POST("/:id/watchlist", h.user.AddToWatchlist)
		users.DELETE("/:id/watchlist/:movieId", h.user.RemoveFromWatchlist)
	}

	// Admin routes (require admin role)
	admin := r.Group("/api/admin", requireAuth, middleware.RequireAdmin())
	{
		admin.GET("/users", h.admin.ListUsers)
		admin.DELETE("/users/:id", h.admin.DeleteUser)
		admin.PATCH("/users/:id/promote", h.admin.PromoteUser)
		admin.PATCH("/users/:id/demote", h.admin.DemoteUser)
		admin.GET("/reviews", h.admin.ListReviews)
		admin.DELETE("/reviews/:id", h.admin.DeleteReview)
		admin.GET("/stats", h.admin.GetStats)
	}

	// AI routes; analysis endpoints are public, everything personalized
	// requires login
	aiGroup := r.Group("/api/ai")
	{
		aiGroup.GET("/test", h.ai.TestConnection)
		aiGroup.POST("/recommendations", requireAuth, rateLimiters.ai, h.ai.Recommendations)
		aiGroup.POST("/search", requireAuth, rateLimiters.ai, h.ai.Search)
		aiGroup.POST("/analyze-reviews/:movieId", rateLimiters.ai, h.ai.AnalyzeReviews)
		aiGroup.POST("/chat", requireAuth, rateLimiters.ai, h.ai.Chat)
		aiGroup.POST("/analyze-movie", rateLimiters.ai, h.ai.AnalyzeMovie)
	}
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		log.Printf("Gin mode: release")
		return
	}
	gin.SetMode(gin.DebugMode)
	log.Printf("Gin mode: debug")
}

func logServerStartup(cfg *config.Config) {
	log.Printf("Server starting on %s (env=%s, db=%s)", cfg.ServerAddr, cfg.Environment, cfg.DatabaseDriver)
}
