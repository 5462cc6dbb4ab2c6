package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

var (
	ErrEmptyQuery        = errors.New("search query is required")
	ErrEmptyMessage      = errors.New("chat message is required")
	ErrMovieDataRequired = errors.New("movie data is required")
)

// ProfileSummary reports how much context backed an AI request.
type ProfileSummary struct {
	WatchlistCount int    `json:"watchlist_count"`
	ReviewsCount   int    `json:"reviews_count"`
	Theme          string `json:"theme"`
}

// Recommendations bundles the model output with its profile summary.
type Recommendations struct {
	Result  *ai.RecommendationResult
	Summary ProfileSummary
}

// ReviewAnalysis is the outcome of the per-movie review analysis.
type ReviewAnalysis struct {
	Analysis        json.RawMessage
	ReviewsAnalyzed int
	LocalReviews    int
	ClientReviews   int
}

// AIService assembles user context from the store, delegates to the
// model wrapper, and caches recommendation responses.
type AIService struct {
	store    *store.Store
	ai       *ai.Service
	cache    cache.Cache[ai.RecommendationResult]
	cacheTTL time.Duration
	metrics  metrics.Recorder
}

func NewAIService(
	s *store.Store,
	svc *ai.Service,
	c cache.Cache[ai.RecommendationResult],
	cacheTTL time.Duration,
	rec metrics.Recorder,
) *AIService {
	return &AIService{
		store:    s,
		ai:       svc,
		cache:    c,
		cacheTTL: cacheTTL,
		metrics:  rec,
	}
}

// Recommendations generates personalized picks from the user's
// watchlist and review history. Responses are cached per
// (user, theme, count) so repeated page loads skip the model.
func (s *AIService) Recommendations(ctx context.Context, userID, theme string, count int) (*Recommendations, error) {
	if count <= 0 || count > 25 {
		count = 10
	}

	profile, err := s.buildProfile(userID)
	if err != nil {
		return nil, err
	}
	profile.Theme = theme

	summary := ProfileSummary{
		WatchlistCount: len(profile.Watchlist),
		ReviewsCount:   len(profile.Ratings),
		Theme:          theme,
	}
	if summary.Theme == "" {
		summary.Theme = "Personalized"
	}

	cacheKey := fmt.Sprintf("recs:%s:%s:%d", userID, theme, count)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		s.metrics.RecordAICacheLookup(true)
		return &Recommendations{Result: &cached, Summary: summary}, nil
	}
	s.metrics.RecordAICacheLookup(false)

	start := time.Now()
	result, err := s.ai.GenerateRecommendations(ctx, profile, count)
	s.metrics.RecordAIRequest("recommendations", err == nil, time.Since(start))
	if err != nil {
		return nil, err
	}

	_ = s.cache.Set(ctx, cacheKey, *result, s.cacheTTL)
	return &Recommendations{Result: result, Summary: summary}, nil
}

// Search turns a natural-language movie query into structured search
// parameters, using the user's watchlist as context.
func (s *AIService) Search(ctx context.Context, userID, query string) (*ai.SearchAnalysis, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}

	profile, err := s.buildProfile(userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.ai.AnalyzeSearchQuery(ctx, query, profile)
	s.metrics.RecordAIRequest("search", err == nil, time.Since(start))
	return result, err
}

// AnalyzeReviews summarizes a movie's reviews, combining locally
// stored reviews with any the client supplied from external sources.
// Returns a nil Analysis when there is nothing to analyze.
func (s *AIService) AnalyzeReviews(ctx context.Context, movieID, movieTitle string, clientReviews []ai.ReviewInput) (*ReviewAnalysis, error) {
	local, err := s.store.ListMovieReviews(movieID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	combined := make([]ai.ReviewInput, 0, len(clientReviews)+len(local))
	combined = append(combined, clientReviews...)
	for _, r := range local {
		combined = append(combined, ai.ReviewInput{
			Text:   r.Comment,
			Rating: r.Rating,
			Author: r.AuthorName,
		})
	}

	if len(combined) == 0 {
		return &ReviewAnalysis{}, nil
	}

	start := time.Now()
	analysis := s.ai.AnalyzeReviews(ctx, combined, movieTitle)
	s.metrics.RecordAIRequest("review_analysis", true, time.Since(start))

	return &ReviewAnalysis{
		Analysis:        analysis,
		ReviewsAnalyzed: len(combined),
		LocalReviews:    len(local),
		ClientReviews:   len(clientReviews),
	}, nil
}

// Chat answers a movie question with the user's profile as context.
func (s *AIService) Chat(ctx context.Context, userID, message, movieTitle string, history json.RawMessage) (*ai.ChatResult, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}

	profile, err := s.buildProfile(userID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.ai.Chat(ctx, message, ai.ChatContext{
		MovieTitle:          movieTitle,
		Profile:             profile,
		ConversationHistory: history,
	})
	s.metrics.RecordAIRequest("chat", err == nil, time.Since(start))
	return result, err
}

// AnalyzeMovie produces the plot and theme analysis for one movie.
func (s *AIService) AnalyzeMovie(ctx context.Context, movie ai.MovieData) (json.RawMessage, error) {
	if movie.Title == "" {
		return nil, ErrMovieDataRequired
	}

	start := time.Now()
	result, err := s.ai.AnalyzeMovie(ctx, movie)
	s.metrics.RecordAIRequest("movie_analysis", err == nil, time.Since(start))
	return result, err
}

// TestConnection probes the model end to end.
func (s *AIService) TestConnection(ctx context.Context) (string, error) {
	start := time.Now()
	msg, err := s.ai.TestConnection(ctx)
	s.metrics.RecordAIRequest("test", err == nil, time.Since(start))
	return msg, err
}

func (s *AIService) buildProfile(userID string) (ai.Profile, error) {
	var profile ai.Profile

	watchlist, err := s.store.ListWatchlist(userID)
	if err != nil {
		return profile, fmt.Errorf("list watchlist: %w", err)
	}
	for _, entry := range watchlist {
		profile.Watchlist = append(profile.Watchlist, ai.WatchlistItem{
			Title: entry.Title,
			Year:  entry.Year,
		})
	}

	reviews, err := s.store.ListUserReviews(userID)
	if err != nil {
		return profile, fmt.Errorf("list reviews: %w", err)
	}
	for _, r := range reviews {
		profile.Ratings = append(profile.Ratings, ai.RatingItem{
			MovieTitle: r.MovieTitle,
			Rating:     r.Rating,
			Comment:    r.Comment,
		})
	}

	// Declared-preference fields are not collected yet; the prompt
	// degrades gracefully on empty slices.
	return profile, nil
}
