package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/middleware"
	"github.com/Jayzwillz/backend-movie-app/internal/services"

	"github.com/gin-gonic/gin"
)

// AIHandler exposes the model-backed endpoints: recommendations,
// natural-language search, review and movie analysis, and the chatbot.
type AIHandler struct {
	aiService *services.AIService
}

func NewAIHandler(as *services.AIService) *AIHandler {
	return &AIHandler{aiService: as}
}

// TestConnection probes the model end to end.
func (h *AIHandler) TestConnection(c *gin.Context) {
	msg, err := h.aiService.TestConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "AI service test failed",
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": msg,
	})
}

type recommendationsRequest struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// Recommendations generates personalized picks from the caller's
// watchlist and review history.
func (h *AIHandler) Recommendations(c *gin.Context) {
	user := middleware.CurrentUser(c)

	// Theme and count are both optional; an empty body is fine.
	var req recommendationsRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.aiService.Recommendations(c.Request.Context(), user.ID, req.Theme, req.Count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate AI recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"recommendations":      result.Result.Recommendations,
		"analysis":             result.Result.Analysis,
		"themed_collection":    result.Result.ThemedCollection,
		"user_profile_summary": result.Summary,
	})
}

type searchRequest struct {
	Query string `json:"query"`
}

// Search interprets a natural-language movie query.
func (h *AIHandler) Search(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req searchRequest
	_ = c.ShouldBindJSON(&req)

	analysis, err := h.aiService.Search(c.Request.Context(), user.ID, strings.TrimSpace(req.Query))
	if err != nil {
		if errors.Is(err, services.ErrEmptyQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to analyze search query",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"query":             req.Query,
		"interpretation":    analysis.Interpretation,
		"search_parameters": analysis.SearchParameters,
		"movie_suggestions": analysis.MovieSuggestions,
		"search_tips":       analysis.SearchTips,
	})
}

type tmdbReview struct {
	Content       string `json:"content"`
	Author        string `json:"author"`
	AuthorDetails struct {
		Rating float64 `json:"rating"`
	} `json:"author_details"`
}

type analyzeReviewsRequest struct {
	MovieTitle  string       `json:"movieTitle"`
	TMDBReviews []tmdbReview `json:"tmdbReviews"`
}

// AnalyzeReviews summarizes a movie's reviews, combining client-supplied
// external reviews with locally stored ones.
func (h *AIHandler) AnalyzeReviews(c *gin.Context) {
	movieID := c.Param("movieId")

	var req analyzeReviewsRequest
	_ = c.ShouldBindJSON(&req)

	clientReviews := make([]ai.ReviewInput, 0, len(req.TMDBReviews))
	for _, r := range req.TMDBReviews {
		clientReviews = append(clientReviews, ai.ReviewInput{
			Text:   r.Content,
			Rating: int(r.AuthorDetails.Rating),
			Author: r.Author,
		})
	}

	result, err := h.aiService.AnalyzeReviews(c.Request.Context(), movieID, req.MovieTitle, clientReviews)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to analyze reviews",
		})
		return
	}

	if result.ReviewsAnalyzed == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "No reviews available for analysis",
			"analysis": nil,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"movie_title":      req.MovieTitle,
		"reviews_analyzed": result.ReviewsAnalyzed,
		"analysis":         result.Analysis,
		"review_sources": gin.H{
			"tmdb_reviews": result.ClientReviews,
			"user_reviews": result.LocalReviews,
		},
	})
}

type chatRequest struct {
	Message             string          `json:"message"`
	MovieTitle          string          `json:"movieTitle"`
	ConversationHistory json.RawMessage `json:"conversationHistory"`
}

// Chat answers a movie question with the caller's profile as context.
func (h *AIHandler) Chat(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req chatRequest
	_ = c.ShouldBindJSON(&req)

	result, err := h.aiService.Chat(
		c.Request.Context(), user.ID, strings.TrimSpace(req.Message), req.MovieTitle, req.ConversationHistory,
	)
	if err != nil {
		if errors.Is(err, services.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Chat message is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to generate chat response",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   req.Message,
		"response":  result.Response,
		"timestamp": result.Timestamp,
		"context": gin.H{
			"movie_title":      req.MovieTitle,
			"has_user_context": true,
		},
	})
}

type analyzeMovieRequest struct {
	MovieData ai.MovieData `json:"movieData"`
}

// AnalyzeMovie produces the plot and theme analysis for one movie.
func (h *AIHandler) AnalyzeMovie(c *gin.Context) {
	var req analyzeMovieRequest
	_ = c.ShouldBindJSON(&req)

	analysis, err := h.aiService.AnalyzeMovie(c.Request.Context(), req.MovieData)
	if err != nil {
		if errors.Is(err, services.ErrMovieDataRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Movie data is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to analyze movie",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"movie_title": req.MovieData.Title,
		"analysis":    analysis,
	})
}
