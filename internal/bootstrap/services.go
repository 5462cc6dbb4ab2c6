package bootstrap

import (
	"log"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/auth"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/mailer"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/services"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"
)

// initializeServices creates all business logic services
func initializeServices(
	cfg *config.Config,
	db *store.Store,
	tokens *token.Provider,
	aiCache cache.Cache[ai.RecommendationResult],
	prometheusMetrics metrics.Recorder,
) (*services.AuthService, *services.ReviewService, *services.AccountService, *services.AdminService, *services.AIService) {
	// Google sign-in verifier
	googleVerifier := auth.NewGoogleVerifier(cfg.GoogleClientID)
	if cfg.GoogleClientID == "" {
		log.Println("Google sign-in disabled (GOOGLE_CLIENT_ID not set)")
	}

	// Outbound email
	smtpMailer := mailer.New(cfg)
	if !smtpMailer.Configured() {
		log.Println("SMTP not configured; verification and reset emails will not be sent")
	}

	// Gemini model wrapper
	aiClient := ai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout, cfg.GeminiMaxRetries)
	aiModel := ai.NewService(aiClient)
	if cfg.GeminiAPIKey == "" {
		log.Println("Gemini API key not set; AI endpoints will report upstream errors")
	}

	authService := services.NewAuthService(db, tokens, googleVerifier, smtpMailer, prometheusMetrics, cfg)
	reviewService := services.NewReviewService(db, prometheusMetrics)
	accountService := services.NewAccountService(db, prometheusMetrics)
	adminService := services.NewAdminService(db, prometheusMetrics)
	aiService := services.NewAIService(db, aiModel, aiCache, cfg.AICacheTTL, prometheusMetrics)

	return authService, reviewService, accountService, adminService, aiService
}
