package handlers

import (
	"errors"
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the self-service account surface: profile, watchlist,
// and account deletion. Every route is scoped to the authenticated caller.
type UserHandler struct {
	accountService *services.AccountService
}

func NewUserHandler(as *services.AccountService) *UserHandler {
	return &UserHandler{accountService: as}
}

// GetProfile returns the caller's own profile with the watchlist count.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	profile, err := h.accountService.GetProfile(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only view your own profile."})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":             profile.User.ID,
			"name":           profile.User.Name,
			"email":          profile.User.Email,
			"createdAt":      profile.User.CreatedAt,
			"watchlistCount": profile.WatchlistCount,
		},
	})
}

type updateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateProfile changes the caller's name or email. Omitted fields are
// left unchanged.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	updated, err := h.accountService.UpdateProfile(c.Request.Context(), user.ID, c.Param("id"), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only update your own profile."})
		case errors.Is(err, services.ErrEmailInUse):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already in use"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"id":        updated.ID,
			"name":      updated.Name,
			"email":     updated.Email,
			"createdAt": updated.CreatedAt,
		},
	})
}

// GetWatchlist returns the caller's watchlist, most recently added first.
func (h *UserHandler) GetWatchlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := h.accountService.Watchlist(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only view your own watchlist."})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"watchlist": watchlistJSON(entries)})
}

type addWatchlistRequest struct {
	MovieID string `json:"movieId"`
	Title   string `json:"title"`
	Poster  string `json:"poster"`
	Year    string `json:"year"`
}

// AddToWatchlist saves a movie on the caller's watchlist and returns the
// refreshed list.
func (h *UserHandler) AddToWatchlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	entries, err := h.accountService.AddToWatchlist(
		c.Request.Context(), user.ID, c.Param("id"), req.MovieID, req.Title, req.Poster, req.Year,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only modify your own watchlist."})
		case errors.Is(err, services.ErrWatchlistMovieMissing):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		case errors.Is(err, services.ErrMovieAlreadyInList):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Movie already in watchlist"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":   "Movie added to watchlist successfully",
		"watchlist": watchlistJSON(entries),
	})
}

// RemoveFromWatchlist drops a movie from the caller's watchlist and returns
// the refreshed list.
func (h *UserHandler) RemoveFromWatchlist(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := h.accountService.RemoveFromWatchlist(
		c.Request.Context(), user.ID, c.Param("id"), c.Param("movieId"),
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only modify your own watchlist."})
		case errors.Is(err, services.ErrMovieNotInList):
			c.JSON(http.StatusNotFound, gin.H{"message": "Movie not found in watchlist"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Movie removed from watchlist successfully",
		"watchlist": watchlistJSON(entries),
	})
}

// DeleteAccount removes the caller's account along with their reviews and
// watchlist.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)

	_, err := h.accountService.DeleteAccount(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only delete your own account."})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User account deleted successfully. All associated data has been removed.",
		"deletedUser": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
