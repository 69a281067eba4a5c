package trends

import (
	"testing"
	"time"

	"github.com/thinkscotty/trendstory/internal/models"
)

func TestCacheHitWithinTTL(t *testing.T) {
	c := NewCache(15 * time.Minute)
	topics := []models.Topic{{Text: "a", Source: "news", Rank: 1}}

	c.Set("news:5", topics)

	got, ok := c.Get("news:5")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Text != "a" {
		t.Errorf("got %v, want stored topics", got)
	}
}

func TestCacheMissAfterExpiry(t *testing.T) {
	c := NewCache(15 * time.Minute)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	c.now = func() time.Time { return now }

	c.Set("news:5", []models.Topic{{Text: "a"}})

	now = base.Add(14 * time.Minute)
	if _, ok := c.Get("news:5"); !ok {
		t.Error("entry expired early")
	}

	now = base.Add(15 * time.Minute)
	if _, ok := c.Get("news:5"); ok {
		t.Error("entry still live past TTL")
	}
	if c.Len() != 0 {
		t.Error("expired entry not evicted on access")
	}
}

func TestCacheKeysAreIndependent(t *testing.T) {
	c := NewCache(time.Minute)
	c.Set("news:5", []models.Topic{{Text: "a"}})

	if _, ok := c.Get("news:3"); ok {
		t.Error("different limit must be a different key")
	}
	if _, ok := c.Get("google:5"); ok {
		t.Error("different source must be a different key")
	}
}
