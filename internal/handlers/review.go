package handlers

import (
	"errors"
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/services"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review CRUD, the per-movie listing with its
// aggregate rating, and the like/dislike vote toggles.
type ReviewHandler struct {
	reviewService *services.ReviewService
}

func NewReviewHandler(rs *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: rs}
}

type addReviewRequest struct {
	MovieID    string `json:"movieId" binding:"required"`
	MovieTitle string `json:"movieTitle" binding:"required"`
	Rating     int    `json:"rating" binding:"required"`
	Comment    string `json:"comment" binding:"required"`
	Title      string `json:"title"`
}

// AddReview creates the caller's review for a movie. One review per
// (user, movie); a second submission is rejected.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req addReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	review, err := h.reviewService.AddReview(
		c.Request.Context(), user.ID, req.MovieID, req.MovieTitle, req.Rating, req.Comment, req.Title,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateReview):
			c.JSON(http.StatusBadRequest, gin.H{"message": "You have already reviewed this movie"})
		case errors.Is(err, services.ErrInvalidRating),
			errors.Is(err, services.ErrInvalidComment),
			errors.Is(err, services.ErrInvalidTitle):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": []string{err.Error()}})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"review":  ownReviewJSON(review, user.Name),
	})
}

// GetMovieReviews is the public listing of one movie's reviews, newest
// first, with the average rating.
func (h *ReviewHandler) GetMovieReviews(c *gin.Context) {
	movieID := c.Param("id")

	result, err := h.reviewService.MovieReviews(c.Request.Context(), movieID)
	if err != nil {
		serverError(c, err)
		return
	}

	reviews := make([]gin.H, 0, len(result.Reviews))
	for _, r := range result.Reviews {
		reviews = append(reviews, reviewWithAuthorJSON(r))
	}

	c.JSON(http.StatusOK, gin.H{
		"movieId":       movieID,
		"totalReviews":  result.Total,
		"averageRating": result.AverageRating,
		"reviews":       reviews,
	})
}

// GetUserReviews lists the caller's own reviews.
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	user := middleware.CurrentUser(c)
	targetID := c.Param("userId")

	reviews, err := h.reviewService.UserReviews(c.Request.Context(), user.ID, targetID)
	if err != nil {
		if errors.Is(err, services.ErrAccessDenied) {
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only view your own reviews."})
			return
		}
		serverError(c, err)
		return
	}

	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, gin.H{
			"id":         r.ID,
			"movieId":    r.MovieID,
			"movieTitle": r.MovieTitle,
			"rating":     r.Rating,
			"title":      r.Title,
			"comment":    r.Comment,
			"likes":      r.Likes,
			"dislikes":   r.Dislikes,
			"createdAt":  r.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalReviews": len(reviews),
		"reviews":      out,
	})
}

type updateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Title   string `json:"title"`
}

// UpdateReview partially updates the caller's review. Omitted fields are
// left unchanged.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error"})
		return
	}

	review, err := h.reviewService.UpdateReview(
		c.Request.Context(), user.ID, c.Param("id"), req.Rating, req.Comment, req.Title,
	)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		case errors.Is(err, services.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only update your own reviews."})
		case errors.Is(err, services.ErrInvalidRating),
			errors.Is(err, services.ErrInvalidComment),
			errors.Is(err, services.ErrInvalidTitle):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Validation error", "errors": []string{err.Error()}})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  ownReviewJSON(review, user.Name),
	})
}

// DeleteReview removes the caller's review.
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	user := middleware.CurrentUser(c)

	err := h.reviewService.DeleteReview(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		case errors.Is(err, services.ErrNotReviewOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. You can only delete your own reviews."})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

// Like toggles the caller's like on a review.
func (h *ReviewHandler) Like(c *gin.Context) {
	h.toggleVote(c, models.VoteLike)
}

// Dislike toggles the caller's dislike on a review.
func (h *ReviewHandler) Dislike(c *gin.Context) {
	h.toggleVote(c, models.VoteDislike)
}

func (h *ReviewHandler) toggleVote(c *gin.Context, direction string) {
	user := middleware.CurrentUser(c)

	result, err := h.reviewService.ToggleVote(c.Request.Context(), user.ID, c.Param("id"), direction)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Review not found"})
		case errors.Is(err, services.ErrInvalidDirection):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Vote direction must be like or dislike"})
		default:
			serverError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Vote updated successfully",
		"likes":    result.Likes,
		"dislikes": result.Dislikes,
		"userVote": result.UserVote,
	})
}
