package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	// Use in-memory SQLite database for testing
	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)
	return s
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

func createTestUser(t *testing.T, s *store.Store, email string, verified bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		IsVerified:   verified,
	}
	require.NoError(t, s.CreateUser(user))
	return user
}

func createTestReview(t *testing.T, s *store.Store, userID, movieID string, rating int) *models.Review {
	t.Helper()
	review := &models.Review{
		ID:         uuid.NewString(),
		MovieID:    movieID,
		UserID:     userID,
		Rating:     rating,
		Comment:    "A test review",
		MovieTitle: "Test Movie",
	}
	require.NoError(t, s.CreateReview(review))
	return review
}
