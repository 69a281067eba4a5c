package trends

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/thinkscotty/trendstory/internal/models"
)

const hackerNewsURL = "https://news.ycombinator.com/"

// HackerNewsFetcher scrapes the Hacker News front page. Position on the
// page is the popularity rank.
type HackerNewsFetcher struct {
	userAgent      string
	requestTimeout time.Duration
	pageURL        string
}

func NewHackerNewsFetcher() *HackerNewsFetcher {
	return &HackerNewsFetcher{
		userAgent:      "TrendStory/1.0 (themed story generator; +https://github.com/thinkscotty/trendstory)",
		requestTimeout: 15 * time.Second,
		pageURL:        hackerNewsURL,
	}
}

func (f *HackerNewsFetcher) Fetch(ctx context.Context, limit int) ([]models.Topic, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := colly.NewCollector(
		colly.UserAgent(f.userAgent),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(f.requestTimeout)

	var mu sync.Mutex
	var topics []models.Topic
	var scrapeErr error

	c.OnHTML("span.titleline > a:first-child", func(e *colly.HTMLElement) {
		mu.Lock()
		defer mu.Unlock()
		topics = append(topics, models.Topic{
			Text:   e.Text,
			Source: string(SourceHackerNews),
			Rank:   len(topics) + 1,
		})
	})

	c.OnError(func(_ *colly.Response, err error) {
		mu.Lock()
		defer mu.Unlock()
		scrapeErr = err
	})

	if err := c.Visit(f.pageURL); err != nil {
		return nil, fmt.Errorf("visit hacker news: %w", err)
	}
	c.Wait()

	if scrapeErr != nil {
		return nil, fmt.Errorf("scrape hacker news: %w", scrapeErr)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	maxItems := limit * 3
	if maxItems > 0 && len(topics) > maxItems {
		topics = topics[:maxItems]
	}
	return topics, nil
}
