// Package scheduler keeps configured trend lookups warm so interactive
// requests rarely pay the upstream fetch cost.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/thinkscotty/trendstory/internal/trends"
)

// WarmTarget is one (source, limit) pair the scheduler refreshes.
type WarmTarget struct {
	Source trends.Source
	Limit  int
}

// ParseWarmTarget parses a "source:limit" config entry.
func ParseWarmTarget(s string) (WarmTarget, error) {
	name, limitStr, ok := strings.Cut(s, ":")
	if !ok {
		return WarmTarget{}, fmt.Errorf("warm target %q: want source:limit", s)
	}
	source, valid := trends.ParseSource(strings.TrimSpace(name))
	if !valid {
		return WarmTarget{}, fmt.Errorf("warm target %q: unknown source", s)
	}
	limit, err := strconv.Atoi(strings.TrimSpace(limitStr))
	if err != nil || limit < 1 {
		return WarmTarget{}, fmt.Errorf("warm target %q: bad limit", s)
	}
	return WarmTarget{Source: source, Limit: limit}, nil
}

type Scheduler struct {
	trends  *trends.Service
	targets []WarmTarget
	cron    *cron.Cron
	locks   sync.Map // per-target locks: "source:limit" -> *sync.Mutex
}

func New(trendSvc *trends.Service, targets []WarmTarget) *Scheduler {
	return &Scheduler{
		trends:  trendSvc,
		targets: targets,
		cron:    cron.New(),
	}
}

// Start registers the refresh job under cronExpr and begins the cron loop.
// An empty expression or empty target list disables warming.
func (s *Scheduler) Start(ctx context.Context, cronExpr string) error {
	if cronExpr == "" || len(s.targets) == 0 {
		slog.Info("Trend cache warming disabled")
		return nil
	}

	if _, err := s.cron.AddFunc(cronExpr, func() { s.refreshAll(ctx) }); err != nil {
		return fmt.Errorf("schedule warm refresh: %w", err)
	}
	s.cron.Start()
	slog.Info("Trend cache warming started", "schedule", cronExpr, "targets", len(s.targets))

	// Warm once immediately at startup
	go s.refreshAll(ctx)
	return nil
}

// Stop halts the cron loop and waits for any running job to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	slog.Info("Trend cache warming stopped")
}

func (s *Scheduler) refreshAll(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Panic in trend cache refresh", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	for _, target := range s.targets {
		if ctx.Err() != nil {
			return
		}
		s.refreshTarget(ctx, target)
	}
}

// refreshTarget fetches one target, skipping it when a previous refresh for
// the same key is still in flight.
func (s *Scheduler) refreshTarget(ctx context.Context, target WarmTarget) {
	key := fmt.Sprintf("%s:%d", target.Source, target.Limit)
	val, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	if !mu.TryLock() {
		slog.Debug("Warm refresh already in flight, skipping", "target", key)
		return
	}
	defer mu.Unlock()

	topics, err := s.trends.Fetch(ctx, target.Source, target.Limit)
	if err != nil {
		slog.Warn("Warm refresh failed", "target", key, "error", err)
		return
	}
	slog.Debug("Warmed trend cache", "target", key, "topics", len(topics))
}
