package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayzwillz/backend-movie-app/internal/ai"
	"github.com/Jayzwillz/backend-movie-app/internal/cache"
	"github.com/Jayzwillz/backend-movie-app/internal/metrics"
	"github.com/Jayzwillz/backend-movie-app/internal/retry"
	"github.com/Jayzwillz/backend-movie-app/internal/store"
)

func newAIService(t *testing.T, modelText string, calls *atomic.Int64) (*AIService, *store.Store) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": modelText}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)

	client := ai.NewClient("test-key", "gemini-1.5-flash", 5*time.Second, 0,
		ai.WithBaseURL(srv.URL),
		ai.WithHTTPClient(retry.NewClient(retry.WithMaxRetries(0))),
	)

	s := setupTestStore(t)
	svc := NewAIService(s, ai.NewService(client),
		cache.NewMemoryCache[ai.RecommendationResult](), time.Minute,
		metrics.NewNoopMetrics())
	return svc, s
}

func TestRecommendations_UsesCache(t *testing.T) {
	var calls atomic.Int64
	modelText := `{"recommendations": [{"title": "Arrival"}], "analysis": "Sci-fi leaning", "themed_collection": {"title": "Picks"}}`
	svc, s := newAIService(t, modelText, &calls)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com", true)
	createTestReview(t, s, alice.ID, "m1", 9)

	result, err := svc.Recommendations(ctx, alice.ID, "space", 5)
	require.NoError(t, err)
	assert.Equal(t, "Sci-fi leaning", result.Result.Analysis)
	assert.Equal(t, 1, result.Summary.ReviewsCount)
	assert.Equal(t, "space", result.Summary.Theme)
	assert.Equal(t, int64(1), calls.Load())

	// Same (user, theme, count) hits the cache
	_, err = svc.Recommendations(ctx, alice.ID, "space", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), calls.Load())

	// A different theme misses
	_, err = svc.Recommendations(ctx, alice.ID, "noir", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestSearch_RequiresQuery(t *testing.T) {
	svc, s := newAIService(t, `{"interpretation": "anything"}`, nil)
	alice := createTestUser(t, s, "alice@example.com", true)

	_, err := svc.Search(context.Background(), alice.ID, "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestAnalyzeReviews_CombinesSources(t *testing.T) {
	modelText := `{"overall_sentiment": {"score": 8, "label": "Positive"}, "summary": "Liked"}`
	svc, s := newAIService(t, modelText, nil)
	ctx := context.Background()

	alice := createTestUser(t, s, "alice@example.com", true)
	createTestReview(t, s, alice.ID, "m1", 9)

	result, err := svc.AnalyzeReviews(ctx, "m1", "Dune",
		[]ai.ReviewInput{{Text: "External take", Rating: 7, Author: "critic"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.ReviewsAnalyzed)
	assert.Equal(t, 1, result.LocalReviews)
	assert.Equal(t, 1, result.ClientReviews)
	assert.Contains(t, string(result.Analysis), "Positive")
}

func TestAnalyzeReviews_NothingToAnalyze(t *testing.T) {
	svc, _ := newAIService(t, `{}`, nil)

	result, err := svc.AnalyzeReviews(context.Background(), "unreviewed", "Ghost Movie", nil)
	require.NoError(t, err)
	assert.Zero(t, result.ReviewsAnalyzed)
	assert.Nil(t, result.Analysis)
}

func TestChat_RequiresMessage(t *testing.T) {
	svc, s := newAIService(t, "hello", nil)
	alice := createTestUser(t, s, "alice@example.com", true)

	_, err := svc.Chat(context.Background(), alice.ID, "", "", nil)
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestAnalyzeMovie_RequiresTitle(t *testing.T) {
	svc, _ := newAIService(t, `{}`, nil)

	_, err := svc.AnalyzeMovie(context.Background(), ai.MovieData{})
	assert.ErrorIs(t, err, ErrMovieDataRequired)
}
