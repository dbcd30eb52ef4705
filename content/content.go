// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/danielhkuo/product-vote/models"
)

// CardCount is how many sample items the widget displays
const CardCount = 3

// TextsResponse is the body returned by the texts endpoint
type TextsResponse struct {
	Status string        `json:"status"`
	Code   int           `json:"code"`
	Total  int           `json:"total"`
	Data   []models.Card `json:"data"`
}

// DefaultCacheTTL is how long a fetched response, or a failure, is reused
const DefaultCacheTTL = time.Minute

// Client fetches sample texts from the public demo API
type Client struct {
	url  string
	http *http.Client
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	fetchedAt time.Time
	cached    TextsResponse
	cachedErr error
}

// Option configures a Client
type Option func(*Client)

// WithCacheTTL reuses the last result for ttl. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.ttl = ttl }
}

// WithClock replaces the clock used for cache expiry
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

func NewClient(url string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		url:  url,
		http: &http.Client{Timeout: timeout},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchTexts returns the cached result while it is fresh and fetches otherwise.
// Concurrent callers share a single upstream request.
func (c *Client) FetchTexts(ctx context.Context) (TextsResponse, error) {
	if c.ttl <= 0 {
		return c.fetch(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.cached, c.cachedErr
	}

	resp, err := c.fetch(ctx)
	// A cancelled caller says nothing about the upstream
	if ctx.Err() != nil {
		return resp, err
	}

	c.cached, c.cachedErr, c.fetchedAt = resp, err, c.now()
	return resp, err
}

// fetch GETs the configured URL and decodes the body
func (c *Client) fetch(ctx context.Context) (TextsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return TextsResponse{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return TextsResponse{}, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		io.Copy(io.Discard, resp.Body)
		return TextsResponse{}, fmt.Errorf("HTTP error! status: %d", resp.StatusCode)
	}

	var body TextsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return TextsResponse{}, fmt.Errorf("failed to decode content: %w", err)
	}

	return body, nil
}

// Cards returns at most n items from resp
func Cards(resp TextsResponse, n int) []models.Card {
	if n > len(resp.Data) {
		n = len(resp.Data)
	}
	if n < 0 {
		n = 0
	}
	cards := make([]models.Card, n)
	copy(cards, resp.Data[:n])
	return cards
}
