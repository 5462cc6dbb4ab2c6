package bootstrap

import (
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/handlers"
	"github.com/Jayzwillz/backend-movie-app/internal/services"
)

// handlerSet holds all HTTP handlers
type handlerSet struct {
	auth   *handlers.AuthHandler
	review *handlers.ReviewHandler
	user   *handlers.UserHandler
	admin  *handlers.AdminHandler
	ai     *handlers.AIHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	authService *services.AuthService,
	reviewService *services.ReviewService,
	accountService *services.AccountService,
	adminService *services.AdminService,
	aiService *services.AIService,
) handlerSet {
	return handlerSet{
		auth:   handlers.NewAuthHandler(authService, cfg),
		review: handlers.NewReviewHandler(reviewService),
		user:   handlers.NewUserHandler(accountService),
		admin:  handlers.NewAdminHandler(adminService),
		ai:     handlers.NewAIHandler(aiService),
	}
}
