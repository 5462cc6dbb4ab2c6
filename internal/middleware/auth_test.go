package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayzwillz/backend-movie-app/internal/config"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"
)

func setupAuthTest(t *testing.T) (*gin.Engine, *store.Store, *token.Provider) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s, err := store.New("sqlite", ":memory:")
	require.NoError(t, err)

	cfg := &config.Config{
		BaseURL:       "http://localhost:8080",
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
	}
	tokens := token.NewProvider(cfg)

	r := gin.New()
	r.GET("/protected", RequireAuth(tokens, s), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": CurrentUser(c).ID})
	})
	r.GET("/admin", RequireAuth(tokens, s), RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r, s, tokens
}

func createUser(t *testing.T, s *store.Store, role string) *models.User {
	t.Helper()
	user := &models.User{
		ID:    "user-" + role,
		Name:  "Test",
		Email: role + "@example.com",
		Role:  role,
	}
	require.NoError(t, s.CreateUser(user))
	return user
}

func TestRequireAuth_MissingToken(t *testing.T) {
	r, _, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_BadToken(t *testing.T) {
	r, _, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_DeletedUser(t *testing.T) {
	r, _, tokens := setupAuthTest(t)

	// Valid signature but no matching user record
	sessionToken, err := tokens.GenerateSessionToken("ghost-user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_Success(t *testing.T) {
	r, s, tokens := setupAuthTest(t)
	user := createUser(t, s, models.RoleUser)

	sessionToken, err := tokens.GenerateSessionToken(user.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID)
}

func TestRequireAdmin(t *testing.T) {
	r, s, tokens := setupAuthTest(t)

	user := createUser(t, s, models.RoleUser)
	admin := createUser(t, s, models.RoleAdmin)

	userToken, err := tokens.GenerateSessionToken(user.ID)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateSessionToken(admin.ID)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
