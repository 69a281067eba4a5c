package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/thinkscotty/trendstory/internal/ai"
	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/database"
	"github.com/thinkscotty/trendstory/internal/mood"
	"github.com/thinkscotty/trendstory/internal/retry"
	"github.com/thinkscotty/trendstory/internal/scheduler"
	"github.com/thinkscotty/trendstory/internal/server"
	"github.com/thinkscotty/trendstory/internal/similarity"
	"github.com/thinkscotty/trendstory/internal/story"
	"github.com/thinkscotty/trendstory/internal/trends"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("TrendStory %s (built %s)\n", version, buildTime)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	var logLevel slog.Level
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting TrendStory", "version", version)

	// Initialize database
	db, err := database.New(cfg.Database.Path)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Database initialized", "path", cfg.Database.Path)

	// Trend fetching
	fetchers := map[trends.Source]trends.Fetcher{
		trends.SourceGoogle:     trends.NewGoogleNewsFetcher(),
		trends.SourceReddit:     trends.NewRedditFetcher(),
		trends.SourceHackerNews: trends.NewHackerNewsFetcher(),
		trends.SourceNews:       trends.NewNewsAPIFetcher(cfg.Trends.NewsAPIKey),
	}
	sim := similarity.New(cfg.Trends.SimilarityThreshold, cfg.Trends.NGramSize)
	trendSvc := trends.NewService(
		fetchers,
		trends.NewCache(time.Duration(cfg.Trends.CacheTTLMinutes)*time.Minute),
		sim,
		retry.DefaultPolicy().WithAttempts(cfg.Trends.RetryAttempts),
		time.Duration(cfg.Trends.FetchTimeoutSeconds)*time.Second,
	)

	// Mood detection
	var recognizer mood.Recognizer
	if cfg.Mood.Endpoint != "" {
		recognizer = mood.NewFaceAPIClient(
			cfg.Mood.Endpoint,
			cfg.Mood.ConfidenceThreshold,
			time.Duration(cfg.Mood.TimeoutSeconds)*time.Second,
			cfg.Mood.MaxConcurrent,
		)
	}

	// Text generation backend
	provider, err := buildProvider(cfg.Generation)
	if err != nil {
		slog.Error("Failed to configure generation provider", "error", err)
		os.Exit(1)
	}
	slog.Info("Generation provider configured", "provider", provider.Name())

	storySvc := story.NewService(cfg, trendSvc, recognizer, provider, db)

	// Trend cache warming
	targets := make([]scheduler.WarmTarget, 0, len(cfg.Scheduler.Warm))
	for _, raw := range cfg.Scheduler.Warm {
		target, err := scheduler.ParseWarmTarget(raw)
		if err != nil {
			slog.Error("Bad warm target in config", "error", err)
			os.Exit(1)
		}
		targets = append(targets, target)
	}
	sched := scheduler.New(trendSvc, targets)

	// Build HTTP server
	srv := server.New(cfg, storySvc, db, version, buildTime)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := sched.Start(ctx, cfg.Scheduler.CronExpr); err != nil {
		slog.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		slog.Info("Shutting down...")
		cancel()
		sched.Stop()
		srv.Shutdown(context.Background())
	}()

	// Start serving
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}

func buildProvider(cfg config.GenerationConfig) (ai.Provider, error) {
	switch cfg.Provider {
	case "ollama":
		return ai.NewOllamaProvider(cfg.OllamaURL, cfg.OllamaModel), nil
	case "gemini":
		return ai.NewGeminiProvider(cfg.GeminiAPIKey), nil
	case "chutes":
		return ai.NewChutesProvider(cfg.ChutesAPIKey, cfg.ChutesModel), nil
	default:
		return nil, fmt.Errorf("unknown provider %q: must be ollama, gemini, or chutes", cfg.Provider)
	}
}
