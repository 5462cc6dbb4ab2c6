package handlers

import (
	"log"
	"net/http"

	"github.com/Jayzwillz/backend-movie-app/internal/models"
	"github.com/Jayzwillz/backend-movie-app/internal/store"

	"github.com/gin-gonic/gin"
)

// serverError is the generic failure response. Internal detail stays in the
// logs, never in the body.
func serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func watchlistJSON(entries []models.WatchlistEntry) []gin.H {
	out := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		out = append(out, gin.H{
			"movieId": e.MovieID,
			"title":   e.Title,
			"poster":  e.Poster,
			"year":    e.Year,
			"addedAt": e.AddedAt,
		})
	}
	return out
}

func reviewWithAuthorJSON(r store.ReviewWithAuthor) gin.H {
	return gin.H{
		"id":         r.ID,
		"movieId":    r.MovieID,
		"movieTitle": r.MovieTitle,
		"rating":     r.Rating,
		"title":      r.Title,
		"comment":    r.Comment,
		"likes":      r.Likes,
		"dislikes":   r.Dislikes,
		"user": gin.H{
			"id":   r.UserID,
			"name": r.AuthorName,
		},
		"createdAt": r.CreatedAt,
	}
}

func ownReviewJSON(r *models.Review, authorName string) gin.H {
	return gin.H{
		"id":         r.ID,
		"movieId":    r.MovieID,
		"movieTitle": r.MovieTitle,
		"rating":     r.Rating,
		"title":      r.Title,
		"comment":    r.Comment,
		"likes":      r.Likes,
		"dislikes":   r.Dislikes,
		"user": gin.H{
			"id":   r.UserID,
			"name": authorName,
		},
		"createdAt": r.CreatedAt,
	}
}
