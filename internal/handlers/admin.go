package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the moderation surface: user and review listings,
// deletions, role changes, and aggregate statistics. Routes are mounted
// behind the admin middleware.
type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(as *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// ListUsers returns one page of all accounts, newest first.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit := pageParams(c)

	users, pagination, err := h.adminService.ListUsers(c.Request.Context(), page, limit)
	if err != nil {
		serverError(c, err)
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":             u.ID,
			"name":           u.Name,
			"email":          u.Email,
			"role":           u.Role,
			"watchlistCount": len(u.Watchlist),
			"createdAt":      u.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": out,
		"pagination": gin.H{
			"currentPage": pagination.CurrentPage,
			"totalPages":  pagination.TotalPages,
			"totalUsers":  pagination.Total,
			"hasNext":     pagination.HasNext,
			"hasPrev":     pagination.HasPrev,
		},
	})
}

// DeleteUser removes any account along with its reviews.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	result, err := h.adminService.DeleteUser(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You cannot delete your own admin account"})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User account deleted successfully by admin.",
		"deletedUser": gin.H{
			"id":             result.UserID,
			"name":           result.Name,
			"email":          result.Email,
			"watchlistCount": result.WatchlistCount,
		},
		"deletedReviewsCount": result.ReviewsDeleted,
	})
}

// PromoteUser grants the admin role to an account.
func (h *AdminHandler) PromoteUser(c *gin.Context) {
	user, err := h.adminService.PromoteUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrAlreadyAdmin):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User is already an admin"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User promoted to admin successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// DemoteUser revokes the admin role from an account.
func (h *AdminHandler) DemoteUser(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	user, err := h.adminService.DemoteUser(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		case errors.Is(err, services.ErrAlreadyUser):
			c.JSON(http.StatusBadRequest, gin.H{"message": "User is already a regular user"})
		case errors.Is(err, services.ErrSelfDemote):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot demote yourself"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Admin demoted to user successfully",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// ListReviews returns one page of all reviews with author identity.
func (h *AdminHandler) ListReviews(c *gin.Context) {
	page, limit := pageParams(c)

	reviews, pagination, err := h.adminService.ListReviews(c.Request.Context(), page, limit)
	if err != nil {
		serverError(c, err)
		return
	}

	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		entry := reviewWithAuthorJSON(r)
		entry["user"] = gin.H{
			"id":    r.UserID,
			"name":  r.AuthorName,
			"email": r.AuthorEmail,
		}
		out = append(out, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"reviews": out,
		"pagination": gin.H{
			"currentPage":  pagination.CurrentPage,
			"totalPages":   pagination.TotalPages,
			"totalReviews": pagination.Total,
			"hasNext":      pagination.HasNext,
			"hasPrev":      pagination.HasPrev,
		},
	})
}

// DeleteReview removes any review regardless of author.
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	err := h.adminService.DeleteReview(c.Request.Context(), actor.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrReviewNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
			return
		}
		serverError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully by admin"})
}

// GetStats returns aggregate platform statistics.
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		serverError(c, err)
		return
	}

	topReviewers := make([]gin.H, 0, len(stats.TopReviewers))
	for _, r := range stats.TopReviewers {
		topReviewers = append(topReviewers, gin.H{
			"userId":      r.UserID,
			"reviewCount": r.ReviewCount,
			"userName":    r.Name,
			"userEmail":   r.Email,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalUsers":            stats.TotalUsers,
		"totalAdmins":           stats.TotalAdmins,
		"totalReviews":          stats.TotalReviews,
		"recentUsers":           stats.RecentUsers,
		"topReviewers":          topReviewers,
		"averageReviewsPerUser": stats.AverageReviewsPerUser,
	})
}
