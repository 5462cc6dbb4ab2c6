package bootstrap

import (
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/services"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"

	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB              *store.Store
	Tokens          *token.Provider
	MetricsRecorder metrics.Recorder
	AICache         cache.Cache[ai.RecommendationResult]
	AICacheCloser   func() error

	// Services
	AuthService    *services.AuthService
	ReviewService  *services.ReviewService
	AccountService *services.AccountService
	AdminService   *services.AdminService
	AIService      *services.AIService

	// HTTP
	HandlerSet handlerSet
	Router     *gin.Engine
	Server     *http.Server
}

// Run initializes and starts the application
func Run(cfg *config.Config) error {
	app := &Application{Config: cfg}

	// Phase 1: Validate configuration
	validateConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up database, metrics, and the AI cache
func (app *Application) initializeInfrastructure() error {
	var err error

	app.DB, err = initializeDatabase(app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	app.AICache, app.AICacheCloser, err = initializeAICache(app.Config)
	if err != nil {
		return err
	}

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.Tokens = token.NewProvider(app.Config)

	app.AuthService,
		app.ReviewService,
		app.AccountService,
		app.AdminService,
		app.AIService = initializeServices(
		app.Config,
		app.DB,
		app.Tokens,
		app.AICache,
		app.MetricsRecorder,
	)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	app.HandlerSet = initializeHandlers(
		app.Config,
		app.AuthService,
		app.ReviewService,
		app.AccountService,
		app.AdminService,
		app.AIService,
	)

	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.Tokens,
		app.HandlerSet,
		app.MetricsRecorder,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}
