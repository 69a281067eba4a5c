package trends

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/thinkscotty/trendstory/internal/models"
)

const googleNewsFeedURL = "https://news.google.com/rss?hl=en-US&gl=US&ceid=US:en"

// GoogleNewsFetcher reads the Google News top-stories RSS feed. Item order
// in the feed is the source's popularity ranking.
type GoogleNewsFetcher struct {
	parser  *gofeed.Parser
	feedURL string
}

func NewGoogleNewsFetcher() *GoogleNewsFetcher {
	p := gofeed.NewParser()
	p.Client = &http.Client{Timeout: 15 * time.Second}
	return &GoogleNewsFetcher{parser: p, feedURL: googleNewsFeedURL}
}

func (f *GoogleNewsFetcher) Fetch(ctx context.Context, limit int) ([]models.Topic, error) {
	feed, err := f.parser.ParseURLWithContext(f.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse google news feed: %w", err)
	}

	// Overfetch beyond limit so dedup filtering still leaves enough.
	maxItems := limit * 3
	var topics []models.Topic
	for i, item := range feed.Items {
		if maxItems > 0 && i >= maxItems {
			break
		}
		topics = append(topics, models.Topic{
			Text:   item.Title,
			Source: string(SourceGoogle),
			Rank:   i + 1,
		})
	}
	return topics, nil
}
