package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/retry"
	"github.com/thinkscotty/trendstory/internal/trends"
)

type countingFetcher struct {
	calls atomic.Int32
}

func (f *countingFetcher) Fetch(ctx context.Context, limit int) ([]models.Topic, error) {
	f.calls.Add(1)
	return []models.Topic{{Text: "warm topic", Source: "news", Rank: 1}}, nil
}

func TestParseWarmTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    WarmTarget
		wantErr bool
	}{
		{in: "news:5", want: WarmTarget{Source: trends.SourceNews, Limit: 5}},
		{in: " reddit : 3 ", want: WarmTarget{Source: trends.SourceReddit, Limit: 3}},
		{in: "news", wantErr: true},
		{in: "myspace:5", wantErr: true},
		{in: "news:zero", wantErr: true},
		{in: "news:0", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseWarmTarget(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseWarmTarget(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseWarmTarget(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWarmTarget(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestRefreshAllWarmsCache(t *testing.T) {
	fetcher := &countingFetcher{}
	cache := trends.NewCache(time.Minute)
	trendSvc := trends.NewService(
		map[trends.Source]trends.Fetcher{trends.SourceNews: fetcher},
		cache,
		nil,
		retry.Policy{MaxAttempts: 1, InitialInterval: time.Millisecond, Multiplier: 1.0},
		time.Second,
	)

	s := New(trendSvc, []WarmTarget{
		{Source: trends.SourceNews, Limit: 5},
		{Source: trends.SourceNews, Limit: 3},
	})
	s.refreshAll(context.Background())

	if got := cache.Len(); got != 2 {
		t.Errorf("cache holds %d entries after warm, want 2", got)
	}
	if got := fetcher.calls.Load(); got != 2 {
		t.Errorf("fetcher called %d times, want 2", got)
	}

	// A second pass within the TTL is served from cache.
	s.refreshAll(context.Background())
	if got := fetcher.calls.Load(); got != 2 {
		t.Errorf("fetcher called %d times after warm re-run, want 2", got)
	}
}
