// Package ai wraps the Google generative-language REST API. It formats
// prompts, calls the model with retries and a per-call timeout, and
// parses the JSON the model returns.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Jayzwillz/backend-movie-app/internal/retry"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

var (
	ErrNotConfigured = errors.New("ai: API key not configured")
	ErrEmptyResponse = errors.New("ai: model returned no candidates")
	ErrUpstream      = errors.New("ai: upstream request failed")
)

// Client is a minimal generateContent client.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	http    *retry.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API endpoint, used in tests.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the retrying HTTP client.
func WithHTTPClient(rc *retry.Client) ClientOption {
	return func(c *Client) { c.http = rc }
}

// NewClient creates a generateContent client. maxRetries applies to
// transient failures (network errors, 5xx, 429).
func NewClient(apiKey, model string, timeout time.Duration, maxRetries int, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		timeout: timeout,
		http: retry.NewClient(
			retry.WithMaxRetries(maxRetries),
			retry.WithInitialRetryDelay(500*time.Millisecond),
		),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateContent sends a single-turn prompt and returns the model's
// text response.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("ai: encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("ai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUpstream, err)
	}

	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s (%s)", ErrUpstream, parsed.Error.Message, parsed.Error.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %d", ErrUpstream, resp.StatusCode)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}

	var text string
	for _, p := range parsed.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
