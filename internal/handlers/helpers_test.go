package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/auth"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/mailer"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/retry"
	"github.com/Jayzwillz/backend-movie-app/internal/services"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"
)

// fakeGoogle satisfies the auth service's verifier without real Google
// certificates.
type fakeGoogle struct {
	profile *auth.GoogleProfile
	err     error
}

func (f *fakeGoogle) Verify(ctx context.Context, credential string) (*auth.GoogleProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

type testApp struct {
	router *gin.Engine
	store  *store.Store
	tokens *token.Provider
	config *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:               "http://localhost:8080",
		FrontendURL:           "http://localhost:5173",
		JWTSecret:             "test-session-secret",
		JWTExpiration:         time.Hour,
		EmailTokenSecret:      "test-email-secret",
		VerificationTokenTTL:  24 * time.Hour,
		PasswordResetTokenTTL: time.Hour,
	}
}

// newTestApp wires the full route table over an in-memory database, a fake
// Google verifier, a stub model endpoint, and an unconfigured mailer.
func newTestApp(t *testing.T, modelText string) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": modelText}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	aiClient := ai.NewClient("test-key", "gemini-1.5-flash", 5*time.Second, 0,
		ai.WithBaseURL(srv.URL),
		ai.WithHTTPClient(retry.NewClient(retry.WithMaxRetries(0))),
	)

	rec := metrics.NewNoopMetrics()
	tokens := token.NewProvider(cfg)
	google := &fakeGoogle{profile: &auth.GoogleProfile{
		GoogleID: "goog-1",
		Email:    "googler@example.com",
		Name:     "Googler",
	}}

	authService := services.NewAuthService(s, tokens, google, mailer.New(cfg), rec, cfg)
	reviewService := services.NewReviewService(s, rec)
	accountService := services.NewAccountService(s, rec)
	adminService := services.NewAdminService(s, rec)
	aiService := services.NewAIService(s, ai.NewService(aiClient),
		cache.NewMemoryCache[ai.RecommendationResult](), time.Minute, rec)

	h := struct {
		auth   *AuthHandler
		review *ReviewHandler
		user   *UserHandler
		admin  *AdminHandler
		ai     *AIHandler
	}{
		auth:   NewAuthHandler(authService, cfg),
		review: NewReviewHandler(reviewService),
		user:   NewUserHandler(accountService),
		admin:  NewAdminHandler(adminService),
		ai:     NewAIHandler(aiService),
	}

	r := gin.New()
	requireAuth := middleware.RequireAuth(tokens, s)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", h.auth.Register)
	authGroup.POST("/login", h.auth.Login)
	authGroup.POST("/google", h.auth.GoogleAuth)
	authGroup.GET("/verify-email", h.auth.VerifyEmail)
	authGroup.POST("/resend-verification", h.auth.ResendVerification)
	authGroup.POST("/forgot-password", h.auth.ForgotPassword)
	authGroup.POST("/reset-password", h.auth.ResetPassword)

	reviews := r.Group("/api/reviews")
	reviews.GET("/:id", h.review.GetMovieReviews)
	reviews.POST("", requireAuth, h.review.AddReview)
	reviews.GET("/user/:userId", requireAuth, h.review.GetUserReviews)
	reviews.PATCH("/:id", requireAuth, h.review.UpdateReview)
	reviews.DELETE("/:id", requireAuth, h.review.DeleteReview)
	reviews.POST("/:id/like", requireAuth, h.review.Like)
	reviews.POST("/:id/dislike", requireAuth, h.review.Dislike)

	users := r.Group("/api/users", requireAuth)
	users.GET("/:id", h.user.GetProfile)
	users.PATCH("/:id", h.user.UpdateProfile)
	users.DELETE("/:id", h.user.DeleteAccount)
	users.GET("/:id/watchlist", h.user.GetWatchlist)
	users.POST("/:id/watchlist", h.user.AddToWatchlist)
	users.DELETE("/:id/watchlist/:movieId", h.user.RemoveFromWatchlist)

	admin := r.Group("/api/admin", requireAuth, middleware.RequireAdmin())
	admin.GET("/users", h.admin.ListUsers)
	admin.DELETE("/users/:id", h.admin.DeleteUser)
	admin.PATCH("/users/:id/promote", h.admin.PromoteUser)
	admin.PATCH("/users/:id/demote", h.admin.DemoteUser)
	admin.GET("/reviews", h.admin.ListReviews)
	admin.DELETE("/reviews/:id", h.admin.DeleteReview)
	admin.GET("/stats", h.admin.GetStats)

	aiGroup := r.Group("/api/ai")
	aiGroup.GET("/test", h.ai.TestConnection)
	aiGroup.POST("/recommendations", requireAuth, h.ai.Recommendations)
	aiGroup.POST("/search", requireAuth, h.ai.Search)
	aiGroup.POST("/analyze-reviews/:movieId", h.ai.AnalyzeReviews)
	aiGroup.POST("/chat", requireAuth, h.ai.Chat)
	aiGroup.POST("/analyze-movie", h.ai.AnalyzeMovie)

	return &testApp{router: r, store: s, tokens: tokens, config: cfg}
}

func (a *testApp) createUser(t *testing.T, email, role string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		IsVerified:   true,
	}
	require.NoError(t, a.store.CreateUser(user))

	tok, err := a.tokens.GenerateSessionToken(user.ID)
	require.NoError(t, err)
	return user, tok
}

func (a *testApp) createReview(t *testing.T, userID, movieID string, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:         uuid.NewString(),
		MovieID:    movieID,
		UserID:     userID,
		Rating:     rating,
		Comment:    "A test review",
		MovieTitle: "Test Movie",
	}
	require.NoError(t, a.store.CreateReview(review))
	return review
}

// do performs a JSON request against the test router and decodes the body.
func (a *testApp) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	}
	return w, decoded
}
