// Package trends fetches trending topics from external sources and caches
// normalized results with a TTL and single-flight fetch discipline.
package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/retry"
	"github.com/thinkscotty/trendstory/internal/similarity"
)

// ErrUnavailable indicates the upstream trend source failed after the
// fetch layer's retry budget.
var ErrUnavailable = errors.New("trend source unavailable")

// Source identifies a supported trend source. The set is closed; requests
// naming anything else are rejected during validation.
type Source string

const (
	SourceNews       Source = "news"
	SourceGoogle     Source = "google"
	SourceReddit     Source = "reddit"
	SourceHackerNews Source = "hackernews"
)

// SupportedSources lists the sources a request may name.
func SupportedSources() []Source {
	return []Source{SourceNews, SourceGoogle, SourceReddit, SourceHackerNews}
}

// ParseSource resolves a requested source string.
func ParseSource(s string) (Source, bool) {
	for _, src := range SupportedSources() {
		if string(src) == s {
			return src, true
		}
	}
	return "", false
}

// Fetcher pulls raw trending topics from one external source. Implementations
// return topics in source popularity order with Rank set; normalization and
// truncation happen in the Service.
type Fetcher interface {
	Fetch(ctx context.Context, limit int) ([]models.Topic, error)
}

// Service coordinates fetchers, the cache, and the retry policy.
type Service struct {
	fetchers map[Source]Fetcher
	cache    *Cache
	sim      *similarity.Checker
	retry    retry.Policy
	timeout  time.Duration
	flight   singleflight.Group
}

// NewService builds a trends service over an explicit cache instance.
// The cache is shared by reference wherever topic fetches happen.
func NewService(fetchers map[Source]Fetcher, cache *Cache, sim *similarity.Checker, policy retry.Policy, fetchTimeout time.Duration) *Service {
	return &Service{
		fetchers: fetchers,
		cache:    cache,
		sim:      sim,
		retry:    policy,
		timeout:  fetchTimeout,
	}
}

// Fetch returns up to limit normalized topics for source. Live cache entries
// are served without an external call; concurrent misses for the same
// (source, limit) key share one upstream fetch. Failed fetches are never
// cached.
func (s *Service) Fetch(ctx context.Context, source Source, limit int) ([]models.Topic, error) {
	f, ok := s.fetchers[source]
	if !ok {
		return nil, fmt.Errorf("no fetcher registered for source %q", source)
	}

	key := fmt.Sprintf("%s:%d", source, limit)
	if topics, ok := s.cache.Get(key); ok {
		return topics, nil
	}

	// The upstream fetch runs detached from the individual caller so that
	// one waiter cancelling does not fail the flight for the rest. The
	// per-attempt timeout and the retry cap still bound its lifetime.
	fetchCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		if topics, ok := s.cache.Get(key); ok {
			return topics, nil
		}
		topics, err := s.fetchUpstream(fetchCtx, f, source, limit)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, topics)
		return topics, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]models.Topic), nil
	}
}

func (s *Service) fetchUpstream(ctx context.Context, f Fetcher, source Source, limit int) ([]models.Topic, error) {
	var raw []models.Topic
	op := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()

		var err error
		raw, err = f.Fetch(attemptCtx, limit)
		if err != nil {
			slog.Warn("Trend fetch attempt failed", "source", source, "error", err)
		}
		return err
	}

	if err := s.retry.Do(ctx, op); err != nil {
		return nil, fmt.Errorf("fetch %s trends: %w: %w", source, ErrUnavailable, err)
	}

	topics := Normalize(raw, limit, s.sim)
	slog.Info("Fetched trends", "source", source, "count", len(topics))
	return topics, nil
}
