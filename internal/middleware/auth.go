package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
	"github.com/Jayzwillz/backend-movie-app/internal/token"
)

const (
	// ContextUserKey is the gin context key holding the authenticated *models.User.
	ContextUserKey = "user"
	// ContextUserIDKey is the gin context key holding the authenticated user id.
	ContextUserIDKey = "user_id"
)

// RequireAuth validates the bearer session token and loads the current
// user record from the store, so deleted accounts and stale tokens are
// rejected even while the signature is still valid.
func RequireAuth(tokens *token.Provider, s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized, no token",
			})
			return
		}

		userID, err := tokens.ValidateSessionToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized, token failed",
			})
			return
		}

		user, err := s.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized, user not found",
			})
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextUserIDKey, user.ID)
		c.Next()
	}
}

// RequireAdmin gates a route on the stored admin role. Must run after
// RequireAuth. The role comes from the freshly loaded user record, so
// a demotion takes effect on the next request; there is no promotion
// side channel here.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Not authorized",
			})
			return
		}

		if !user.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Access denied. Admin privileges required.",
			})
			return
		}

		c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth, or
// nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
