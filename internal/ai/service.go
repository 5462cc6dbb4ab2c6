package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
)

// WatchlistItem is the slice of a user's watchlist fed into prompts.
type WatchlistItem struct {
	Title string `json:"title"`
	Year  string `json:"year,omitempty"`
}

// RatingItem is a user review condensed for prompt context.
type RatingItem struct {
	MovieTitle string `json:"movieTitle"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// Preferences holds declared taste signals.
type Preferences struct {
	Genres            []string `json:"genres"`
	FavoriteActors    []string `json:"favoriteActors"`
	FavoriteDirectors []string `json:"favoriteDirectors"`
}

// Profile is everything the recommendation prompt knows about a user.
type Profile struct {
	Watchlist   []WatchlistItem `json:"watchlist"`
	Ratings     []RatingItem    `json:"ratings"`
	Preferences Preferences     `json:"preferences"`
	Theme       string          `json:"theme,omitempty"`
}

// RecommendationResult is the parsed model output for recommendations.
type RecommendationResult struct {
	Recommendations  json.RawMessage `json:"recommendations"`
	Analysis         string          `json:"analysis"`
	ThemedCollection json.RawMessage `json:"themed_collection"`
}

// SearchAnalysis is the parsed model output for a natural-language query.
type SearchAnalysis struct {
	Interpretation   string          `json:"interpretation"`
	SearchParameters json.RawMessage `json:"search_parameters"`
	MovieSuggestions json.RawMessage `json:"movie_suggestions"`
	SearchTips       string          `json:"search_tips"`
}

// ReviewInput is one review handed to the analysis prompt.
type ReviewInput struct {
	Text   string `json:"text"`
	Rating int    `json:"rating,omitempty"`
	Author string `json:"author,omitempty"`
}

// ChatContext carries optional discussion context into the chatbot prompt.
type ChatContext struct {
	MovieTitle          string          `json:"movieTitle,omitempty"`
	Profile             Profile         `json:"userProfile"`
	ConversationHistory json.RawMessage `json:"conversationHistory,omitempty"`
}

// ChatResult is a chatbot turn.
type ChatResult struct {
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}

// MovieData describes a movie for the plot and theme analysis prompt.
type MovieData struct {
	Title       string   `json:"title"`
	Overview    string   `json:"overview,omitempty"`
	GenreNames  []string `json:"genre_names,omitempty"`
	ReleaseDate string   `json:"release_date,omitempty"`
	VoteAverage float64  `json:"vote_average,omitempty"`
	Runtime     int      `json:"runtime,omitempty"`
}

// Service builds prompts and parses model responses.
type Service struct {
	client *Client
}

// NewService wraps a generateContent client.
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// Configured reports whether the underlying client has an API key.
func (s *Service) Configured() bool {
	return s.client.Configured()
}

// GenerateRecommendations asks the model for personalized picks based
// on the user's watchlist, review history, and optional theme.
func (s *Service) GenerateRecommendations(ctx context.Context, profile Profile, count int) (*RecommendationResult, error) {
	if count <= 0 {
		count = 10
	}

	// Keep prompt size bounded
	watchlist := profile.Watchlist
	if len(watchlist) > 20 {
		watchlist = watchlist[:20]
	}
	ratings := profile.Ratings
	if len(ratings) > 20 {
		ratings = ratings[:20]
	}

	watchlistJSON, _ := json.Marshal(watchlist)
	ratingsJSON, _ := json.Marshal(ratings)
	prefsJSON, _ := json.Marshal(profile.Preferences)

	var b strings.Builder
	fmt.Fprintf(&b, `As a movie expert, analyze this user's profile and generate %d personalized movie recommendations.

User Profile:
- Watchlist: %s
- Ratings: %s
- Preferences: %s`, count, watchlistJSON, ratingsJSON, prefsJSON)

	if profile.Theme != "" {
		fmt.Fprintf(&b, "\n- Theme Request: %q", profile.Theme)
	}

	collectionTitle := profile.Theme
	if collectionTitle == "" {
		collectionTitle = "Personalized Picks"
	}

	fmt.Fprintf(&b, `

Please provide recommendations in this exact JSON format:
{
  "recommendations": [
    {
      "title": "Movie Title",
      "year": 2023,
      "explanation": "Detailed explanation of why this user would enjoy this movie based on their profile",
      "confidence": 85,
      "themes": ["theme1", "theme2"],
      "mood": "exciting/relaxing/emotional/etc",
      "reasoning": "Specific reasoning based on their watchlist and ratings"
    }
  ],
  "analysis": "Brief analysis of the user's movie preferences",
  "themed_collection": {
    "title": %q,
    "description": "Description of this collection"
  }
}

Ensure all movies are real and popular. Provide confidence scores between 70-95. Be specific about why each movie matches their taste.`, collectionTitle)

	raw, err := s.client.GenerateContent(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var result RecommendationResult
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &result); err != nil {
		return nil, fmt.Errorf("ai: parse recommendations: %w", err)
	}
	return &result, nil
}

// AnalyzeSearchQuery converts a natural-language movie query into
// structured search parameters plus suggestions.
func (s *Service) AnalyzeSearchQuery(ctx context.Context, query string, userContext Profile) (*SearchAnalysis, error) {
	contextJSON, _ := json.Marshal(userContext)

	prompt := fmt.Sprintf(`Convert this natural language movie search query into structured search parameters and provide movie recommendations.

User Query: %q
User Context: %s

Analyze the query and provide response in this JSON format:
{
  "interpretation": "What the user is looking for",
  "search_parameters": {
    "genres": [],
    "year_range": {"min": null, "max": null},
    "rating_range": {"min": null, "max": null},
    "themes": [],
    "mood": "",
    "similar_to": [],
    "keywords": [],
    "exclude": []
  },
  "movie_suggestions": [
    {
      "title": "Movie Title",
      "year": 2023,
      "match_reason": "Why this matches the query",
      "confidence": 90
    }
  ],
  "search_tips": "Tips for refining the search"
}

Examples of what to extract:
- "like Avengers but more emotional" -> similar_to: ["Avengers"], themes: ["emotional", "superhero"]
- "90s sci-fi with strong female leads" -> year_range: {"min": 1990, "max": 1999}, genres: ["Science Fiction"], themes: ["strong female protagonist"]
- "feel-good movies for after a breakup" -> mood: "feel-good", themes: ["healing", "uplifting", "romance"], exclude: ["sad", "tragic"]
- "mind-bending thrillers like Christopher Nolan" -> genres: ["Thriller"], themes: ["mind-bending", "complex plot"], similar_to: ["Inception", "Interstellar", "The Dark Knight"]`, query, contextJSON)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result SearchAnalysis
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &result); err != nil {
		return nil, fmt.Errorf("ai: parse search analysis: %w", err)
	}
	return &result, nil
}

// AnalyzeReviews summarizes sentiment across a movie's reviews. On any
// model failure it returns a fallback payload instead of an error so
// the endpoint degrades instead of breaking the movie page.
func (s *Service) AnalyzeReviews(ctx context.Context, reviews []ReviewInput, movieTitle string) json.RawMessage {
	filtered := make([]ReviewInput, 0, len(reviews))
	for _, r := range reviews {
		if strings.TrimSpace(r.Text) == "" {
			continue
		}
		filtered = append(filtered, r)
		if len(filtered) == 30 {
			break
		}
	}

	if len(filtered) == 0 {
		return emptyReviewAnalysis
	}

	reviewsJSON, _ := json.Marshal(filtered)
	prompt := fmt.Sprintf(`Analyze these movie reviews for %q and provide comprehensive insights.

Reviews Data: %s

Provide analysis in this exact JSON format (no additional text):
{
  "overall_sentiment": {
    "score": 7.5,
    "label": "Positive",
    "explanation": "Overall sentiment explanation"
  },
  "summary": "2-3 sentence summary of all reviews",
  "pros": ["List of main positive points"],
  "cons": ["List of main criticisms"],
  "key_themes": ["themes mentioned in reviews"],
  "target_audience": {
    "primary": "Who would love this movie",
    "secondary": "Who might also enjoy it",
    "avoid_if": "Who should probably skip it"
  },
  "critics_vs_audience": "Comparison if both types of reviews present",
  "recommendation": "Final recommendation based on reviews",
  "confidence": 85
}`, movieTitle, reviewsJSON)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		log.Printf("ai: review analysis failed for %q: %v", movieTitle, err)
		return fallbackReviewAnalysis
	}

	cleaned := cleanJSONResponse(raw)
	if !json.Valid([]byte(cleaned)) {
		log.Printf("ai: review analysis returned invalid JSON for %q", movieTitle)
		return fallbackReviewAnalysis
	}

	return json.RawMessage(cleaned)
}

// Chat answers a free-form movie question with optional context.
func (s *Service) Chat(ctx context.Context, message string, chatCtx ChatContext) (*ChatResult, error) {
	movieTitle := chatCtx.MovieTitle
	if movieTitle == "" {
		movieTitle = "General movie discussion"
	}

	profileJSON, _ := json.Marshal(chatCtx.Profile)
	history := chatCtx.ConversationHistory
	if len(history) == 0 {
		history = json.RawMessage("[]")
	}

	prompt := fmt.Sprintf(`You are an expert movie assistant for XZMovies app. You're knowledgeable about movies, actors, directors, and can provide recommendations, trivia, and insights.

Current Context:
- Movie being discussed: %s
- User profile: %s
- Conversation history: %s

User message: %q

Respond in a helpful, engaging way. You can:
- Answer questions about movies, actors, directors
- Provide movie recommendations
- Share interesting trivia and behind-the-scenes facts
- Help users decide what to watch
- Explain movie plots, themes, or symbolism
- Discuss movie history and cultural impact

Keep responses conversational but informative, around 2-3 paragraphs maximum.`, movieTitle, profileJSON, history, message)

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return &ChatResult{Response: text, Timestamp: time.Now().UTC()}, nil
}

// AnalyzeMovie produces a deep thematic analysis of a single movie.
func (s *Service) AnalyzeMovie(ctx context.Context, movie MovieData) (json.RawMessage, error) {
	year := movie.ReleaseDate
	if idx := strings.IndexByte(year, '-'); idx > 0 {
		year = year[:idx]
	}

	prompt := fmt.Sprintf(`Provide deep analysis of this movie for film enthusiasts and discussion groups.

Movie: %q (%s)
Overview: %s
Genres: %s
Rating: %.1f/10
Runtime: %d minutes

Provide comprehensive analysis in this JSON format:
{
  "themes": {
    "primary": ["Main themes"],
    "secondary": ["Supporting themes"],
    "symbolism": ["Key symbols and metaphors"]
  },
  "character_analysis": {
    "protagonist_journey": "Character development arc",
    "relationships": "Key relationship dynamics",
    "archetypes": "Character archetypes present"
  },
  "cinematography": {
    "style": "Visual style and techniques",
    "mood": "Visual mood and atmosphere",
    "notable_elements": ["Distinctive visual elements"]
  },
  "cultural_context": {
    "historical_period": "Historical context if relevant",
    "social_commentary": "Social issues addressed",
    "cultural_impact": "Cultural significance"
  },
  "discussion_questions": [
    "Thought-provoking questions for movie clubs",
    "Questions about themes and meaning",
    "Questions about character motivations"
  ],
  "similar_films": [
    {
      "title": "Similar Movie",
      "reason": "Why it's similar"
    }
  ],
  "educational_value": "What viewers can learn from this film",
  "rewatch_value": "Why this movie rewards multiple viewings"
}

Focus on meaningful insights that enhance understanding and appreciation of the film.`,
		movie.Title, year, movie.Overview, strings.Join(movie.GenreNames, ", "),
		movie.VoteAverage, movie.Runtime)

	raw, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, err
	}

	cleaned := cleanJSONResponse(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, fmt.Errorf("ai: movie analysis returned invalid JSON")
	}
	return json.RawMessage(cleaned), nil
}

// TestConnection verifies the API key works end to end.
func (s *Service) TestConnection(ctx context.Context) (string, error) {
	return s.client.GenerateContent(ctx, `Say "Gemini AI is connected to XZMovies!" if you can read this.`)
}

// cleanJSONResponse strips markdown code fences and any text outside
// the outermost JSON object. Models regularly wrap JSON in ```json
// fences despite instructions not to.
func cleanJSONResponse(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	first := strings.IndexByte(cleaned, '{')
	last := strings.LastIndexByte(cleaned, '}')
	if first != -1 && last != -1 && last > first {
		cleaned = cleaned[first : last+1]
	}

	return cleaned
}

var emptyReviewAnalysis = json.RawMessage(`{
  "overall_sentiment": {"score": 0, "label": "No Reviews", "explanation": "No reviews available for analysis"},
  "summary": "No reviews to analyze",
  "pros": [],
  "cons": [],
  "key_themes": [],
  "target_audience": {"primary": "Unknown", "secondary": "Unknown", "avoid_if": "Unknown"},
  "critics_vs_audience": "No data available",
  "recommendation": "No reviews available for recommendation",
  "confidence": 0
}`)

var fallbackReviewAnalysis = json.RawMessage(`{
  "overall_sentiment": {"score": 5, "label": "Analysis Failed", "explanation": "Unable to analyze reviews at this time"},
  "summary": "Review analysis temporarily unavailable",
  "pros": ["Analysis temporarily unavailable"],
  "cons": ["Analysis temporarily unavailable"],
  "key_themes": ["Unable to determine themes"],
  "target_audience": {"primary": "All audiences", "secondary": "Movie lovers", "avoid_if": "None specified"},
  "critics_vs_audience": "Analysis unavailable",
  "recommendation": "Please check individual reviews for detailed opinions",
  "confidence": 0,
  "error": true
}`)
