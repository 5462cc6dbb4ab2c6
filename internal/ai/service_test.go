package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jayzwillz/backend-movie-app/internal/retry"
)

// fakeModel returns an httptest server that answers every
// generateContent call with the given text.
func fakeModel(t *testing.T, text string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")

		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestService(baseURL string) *Service {
	client := NewClient("test-key", "gemini-1.5-flash", 5*time.Second, 0,
		WithBaseURL(baseURL),
		WithHTTPClient(retry.NewClient(retry.WithMaxRetries(0))),
	)
	return NewService(client)
}

func TestGenerateRecommendations(t *testing.T) {
	modelOutput := "```json\n" + `{
		"recommendations": [{"title": "Arrival", "year": 2016, "confidence": 88}],
		"analysis": "Leans toward cerebral sci-fi",
		"themed_collection": {"title": "Personalized Picks", "description": "Thoughtful sci-fi"}
	}` + "\n```"

	srv := fakeModel(t, modelOutput)
	defer srv.Close()

	svc := newTestService(srv.URL)
	result, err := svc.GenerateRecommendations(context.Background(), Profile{
		Watchlist: []WatchlistItem{{Title: "Interstellar", Year: "2014"}},
		Ratings:   []RatingItem{{MovieTitle: "Inception", Rating: 9}},
	}, 5)

	require.NoError(t, err)
	assert.Equal(t, "Leans toward cerebral sci-fi", result.Analysis)
	assert.Contains(t, string(result.Recommendations), "Arrival")
}

func TestGenerateRecommendations_NotConfigured(t *testing.T) {
	client := NewClient("", "gemini-1.5-flash", time.Second, 0)
	svc := NewService(client)

	_, err := svc.GenerateRecommendations(context.Background(), Profile{}, 10)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyzeSearchQuery(t *testing.T) {
	srv := fakeModel(t, `{
		"interpretation": "90s science fiction",
		"search_parameters": {"genres": ["Science Fiction"], "year_range": {"min": 1990, "max": 1999}},
		"movie_suggestions": [{"title": "The Matrix", "year": 1999}],
		"search_tips": "Try narrowing by director"
	}`)
	defer srv.Close()

	svc := newTestService(srv.URL)
	result, err := svc.AnalyzeSearchQuery(context.Background(), "90s sci-fi", Profile{})

	require.NoError(t, err)
	assert.Equal(t, "90s science fiction", result.Interpretation)
	assert.Contains(t, string(result.MovieSuggestions), "The Matrix")
}

func TestAnalyzeReviews_Fallback(t *testing.T) {
	// Upstream failure must degrade to the fallback payload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL)
	payload := svc.AnalyzeReviews(context.Background(),
		[]ReviewInput{{Text: "Great movie", Rating: 9}}, "Dune")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, true, parsed["error"])
	assert.Equal(t, "Review analysis temporarily unavailable", parsed["summary"])
}

func TestAnalyzeReviews_NoContent(t *testing.T) {
	svc := newTestService("http://unused.invalid")

	// Empty and whitespace-only reviews never reach the model
	payload := svc.AnalyzeReviews(context.Background(),
		[]ReviewInput{{Text: "   "}, {Text: ""}}, "Dune")

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(payload, &parsed))
	assert.Equal(t, "No reviews to analyze", parsed["summary"])
}

func TestChat(t *testing.T) {
	srv := fakeModel(t, "Blade Runner 2049 explores memory and identity.")
	defer srv.Close()

	svc := newTestService(srv.URL)
	result, err := svc.Chat(context.Background(), "What is Blade Runner about?", ChatContext{
		MovieTitle: "Blade Runner 2049",
	})

	require.NoError(t, err)
	assert.Contains(t, result.Response, "memory and identity")
	assert.False(t, result.Timestamp.IsZero())
}

func TestAnalyzeMovie_InvalidJSON(t *testing.T) {
	srv := fakeModel(t, "this is not json at all")
	defer srv.Close()

	svc := newTestService(srv.URL)
	_, err := svc.AnalyzeMovie(context.Background(), MovieData{Title: "Dune"})
	assert.Error(t, err)
}

func TestTestConnection(t *testing.T) {
	srv := fakeModel(t, "Gemini AI is connected to XZMovies!")
	defer srv.Close()

	svc := newTestService(srv.URL)
	msg, err := svc.TestConnection(context.Background())
	require.NoError(t, err)
	assert.Contains(t, msg, "connected to XZMovies")
}

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain json",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: "{\"a\": 1}",
		},
		{
			name:     "surrounding prose",
			input:    "Here is the analysis:\n{\"a\": 1}\nHope that helps!",
			expected: `{"a": 1}`,
		},
		{
			name:     "no braces",
			input:    "no json here",
			expected: "no json here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSONResponse(tt.input))
		})
	}
}

func TestClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error": {"code": 400, "message": "API key not valid", "status": "INVALID_ARGUMENT"}}`)
	}))
	defer srv.Close()

	svc := newTestService(srv.URL)
	_, err := svc.TestConnection(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Contains(t, err.Error(), "API key not valid")
}
