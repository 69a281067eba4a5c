package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
)

const newsAPIBaseURL = "https://newsapi.org"

// NewsAPIFetcher pulls top headlines from newsapi.org. Articles arrive
// sorted by popularity, which becomes the topic rank.
type NewsAPIFetcher struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsAPIFetcher(apiKey string) *NewsAPIFetcher {
	return &NewsAPIFetcher{
		apiKey:     apiKey,
		baseURL:    newsAPIBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title string `json:"title"`
}

func (f *NewsAPIFetcher) Fetch(ctx context.Context, limit int) ([]models.Topic, error) {
	if f.apiKey == "" {
		return nil, fmt.Errorf("news api key not configured")
	}

	q := url.Values{}
	q.Set("country", "us")
	q.Set("pageSize", strconv.Itoa(limit*3))

	reqURL := f.baseURL + "/v2/top-headlines?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Api-Key", f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed newsAPIResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse newsapi response: %w", err)
	}

	if resp.StatusCode != http.StatusOK || parsed.Status != "ok" {
		msg := parsed.Message
		if msg == "" {
			msg = string(body)
		}
		return nil, fmt.Errorf("newsapi returned status %d: %s", resp.StatusCode, msg)
	}

	var topics []models.Topic
	for i, a := range parsed.Articles {
		topics = append(topics, models.Topic{
			Text:   a.Title,
			Source: string(SourceNews),
			Rank:   i + 1,
		})
	}
	return topics, nil
}
