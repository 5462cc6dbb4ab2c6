package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAITestConnection(t *testing.T) {
	app := newTestApp(t, "Gemini AI is connected to XZMovies!")

	w, body := app.do(t, http.MethodGet, "/api/ai/test", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Gemini AI is connected to XZMovies!", body["message"])
}

func TestAIRecommendations(t *testing.T) {
	modelText := `{"recommendations": [{"title": "Arrival"}], "analysis": "Sci-fi leaning", "themed_collection": {"title": "Picks"}}`
	app := newTestApp(t, modelText)
	alice, tok := app.createUser(t, "alice@example.com", "user")
	app.createReview(t, alice.ID, "m1", 9)

	w, body := app.do(t, http.MethodPost, "/api/ai/recommendations", tok, map[string]any{
		"theme": "space",
		"count": 5,
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Sci-fi leaning", body["analysis"])
	assert.NotNil(t, body["recommendations"])

	summary := body["user_profile_summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["reviews_count"])
	assert.Equal(t, "space", summary["theme"])
}

func TestAIRecommendations_RequireAuth(t *testing.T) {
	app := newTestApp(t, "{}")

	w, _ := app.do(t, http.MethodPost, "/api/ai/recommendations", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAISearch(t *testing.T) {
	modelText := `{"interpretation": "Dark space movies", "search_parameters": {"genres": ["sci-fi"]}, "movie_suggestions": ["Sunshine"], "search_tips": "Try a year filter"}`
	app := newTestApp(t, modelText)
	_, tok := app.createUser(t, "alice@example.com", "user")

	w, body := app.do(t, http.MethodPost, "/api/ai/search", tok, map[string]any{
		"query": "something dark in space",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "something dark in space", body["query"])
	assert.Equal(t, "Dark space movies", body["interpretation"])
}

func TestAISearch_EmptyQuery(t *testing.T) {
	app := newTestApp(t, "{}")
	_, tok := app.createUser(t, "alice@example.com", "user")

	w, body := app.do(t, http.MethodPost, "/api/ai/search", tok, map[string]any{
		"query": "   ",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Search query is required", body["message"])
}

func TestAIAnalyzeReviews(t *testing.T) {
	modelText := `{"summary": "Mostly positive"}`
	app := newTestApp(t, modelText)
	alice, _ := app.createUser(t, "alice@example.com", "user")
	app.createReview(t, alice.ID, "m1", 8)

	w, body := app.do(t, http.MethodPost, "/api/ai/analyze-reviews/m1", "", map[string]any{
		"movieTitle": "Dune",
		"tmdbReviews": []map[string]any{
			{"content": "Visually stunning", "author": "critic1", "author_details": map[string]any{"rating": 8.0}},
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Dune", body["movie_title"])
	assert.Equal(t, float64(2), body["reviews_analyzed"])

	sources := body["review_sources"].(map[string]any)
	assert.Equal(t, float64(1), sources["tmdb_reviews"])
	assert.Equal(t, float64(1), sources["user_reviews"])
}

func TestAIAnalyzeReviews_NothingToAnalyze(t *testing.T) {
	app := newTestApp(t, "{}")

	w, body := app.do(t, http.MethodPost, "/api/ai/analyze-reviews/unreviewed", "", map[string]any{
		"movieTitle": "Obscure Film",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "No reviews available for analysis", body["message"])
	assert.Nil(t, body["analysis"])
}

func TestAIChat(t *testing.T) {
	app := newTestApp(t, "Blade Runner would suit you.")
	_, tok := app.createUser(t, "alice@example.com", "user")

	w, body := app.do(t, http.MethodPost, "/api/ai/chat", tok, map[string]any{
		"message":    "What should I watch tonight?",
		"movieTitle": "Blade Runner",
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "What should I watch tonight?", body["message"])
	assert.Equal(t, "Blade Runner would suit you.", body["response"])

	context := body["context"].(map[string]any)
	assert.Equal(t, "Blade Runner", context["movie_title"])
}

func TestAIChat_EmptyMessage(t *testing.T) {
	app := newTestApp(t, "{}")
	_, tok := app.createUser(t, "alice@example.com", "user")

	w, body := app.do(t, http.MethodPost, "/api/ai/chat", tok, map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Chat message is required", body["message"])
}

func TestAIAnalyzeMovie(t *testing.T) {
	modelText := `{"plot_analysis": "A meditation on memory"}`
	app := newTestApp(t, modelText)

	w, body := app.do(t, http.MethodPost, "/api/ai/analyze-movie", "", map[string]any{
		"movieData": map[string]any{
			"title":    "Memento",
			"overview": "A man with short-term memory loss.",
		},
	})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Memento", body["movie_title"])
	assert.NotNil(t, body["analysis"])
}

func TestAIAnalyzeMovie_MissingData(t *testing.T) {
	app := newTestApp(t, "{}")

	w, body := app.do(t, http.MethodPost, "/api/ai/analyze-movie", "", map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Movie data is required", body["message"])
}
