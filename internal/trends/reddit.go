package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
)

// RedditFetcher reads r/popular through Reddit's public JSON API. Reddit
// throttles anonymous clients aggressively, so requests are spaced out.
type RedditFetcher struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	mu          sync.Mutex
	lastRequest time.Time
	minInterval time.Duration
}

func NewRedditFetcher() *RedditFetcher {
	return &RedditFetcher{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		baseURL:     "https://www.reddit.com",
		userAgent:   "TrendStory/1.0 (themed story generator; +https://github.com/thinkscotty/trendstory)",
		minInterval: 1100 * time.Millisecond,
	}
}

func (f *RedditFetcher) Fetch(ctx context.Context, limit int) ([]models.Topic, error) {
	if err := f.waitForRateLimit(ctx); err != nil {
		return nil, err
	}

	apiURL := fmt.Sprintf("%s/r/popular.json?limit=%d", f.baseURL, limit*3)
	req, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch r/popular: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, fmt.Errorf("reddit rate limit exceeded")
		}
		return nil, fmt.Errorf("reddit API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("parse reddit JSON: %w", err)
	}

	var topics []models.Topic
	for i, child := range listing.Data.Children {
		topics = append(topics, models.Topic{
			Text:   child.Data.Title,
			Source: string(SourceReddit),
			Rank:   i + 1,
		})
	}
	return topics, nil
}

func (f *RedditFetcher) waitForRateLimit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	elapsed := time.Since(f.lastRequest)
	if elapsed < f.minInterval {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.minInterval - elapsed):
		}
	}
	f.lastRequest = time.Now()
	return nil
}

// Reddit JSON API types

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string `json:"title"`
	Subreddit string `json:"subreddit"`
	Score     int    `json:"score"`
}
