package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://graphql.anilist.co"
	defaultMinInterval = 500 * time.Millisecond
)

// Sentinel errors for AniList responses.
var (
	ErrNotFound    = errors.New("anime not found")
	ErrRateLimited = errors.New("rate limited: too many requests")
)

const searchQuery = `query ($search: String) {
  Media(search: $search, type: ANIME, sort: SEARCH_MATCH) {
    id
    title { romaji english native }
    description
    coverImage { large }
    season
    seasonYear
    episodes
    status
    genres
    averageScore
    studios(isMain: true) { nodes { name } }
    startDate { year month day }
  }
}`

// Client is an AniList GraphQL client.
// Requests are spaced by a rate limiter; the client never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithMinInterval sets the minimum spacing between requests.
// Zero or negative disables pacing.
func WithMinInterval(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "anilist")
	}
}

// New creates a new AniList client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(defaultMinInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchAnime returns the best search match for query.
// Returns ErrNotFound when AniList has no match and ErrRateLimited on HTTP 429.
func (c *Client) SearchAnime(ctx context.Context, query string) (*Media, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for rate limiter: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{
		Query:     searchQuery,
		Variables: map[string]any{"search": query},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute search request: %w", err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.Debug("search", "query", query, "status", resp.StatusCode, "elapsed", time.Since(start))
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("search failed: %s", resp.Status)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if out.Data.Media == nil {
		for _, e := range out.Errors {
			if e.Status != 0 && e.Status != http.StatusNotFound {
				return nil, fmt.Errorf("search failed: %s", e.Message)
			}
		}
		return nil, ErrNotFound
	}

	return out.Data.Media, nil
}
