// Package story orchestrates a single generation request: validate, gather
// trends and mood concurrently, build the prompt, call the text backend, and
// archive the result.
package story

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/thinkscotty/trendstory/internal/ai"
	"github.com/thinkscotty/trendstory/internal/config"
	"github.com/thinkscotty/trendstory/internal/models"
	"github.com/thinkscotty/trendstory/internal/mood"
	"github.com/thinkscotty/trendstory/internal/retry"
	"github.com/thinkscotty/trendstory/internal/trends"
)

// Request is a validated-on-entry generation request. Image is the raw
// decoded photo bytes, or nil when the caller sent none.
type Request struct {
	Source string
	Theme  string
	Limit  int
	Image  []byte
}

// StoryStore archives finished stories. Saving is best-effort; a failing
// store never fails the request.
type StoryStore interface {
	SaveStory(ctx context.Context, rec models.StoryRecord) error
}

type Service struct {
	cfg        config.Config
	trends     *trends.Service
	recognizer mood.Recognizer
	provider   ai.Provider
	store      StoryStore

	retry retry.Policy
	now   func() time.Time
}

// NewService wires the orchestrator. recognizer and store may be nil, which
// disables mood detection and archiving respectively.
func NewService(cfg config.Config, trendSvc *trends.Service, recognizer mood.Recognizer, provider ai.Provider, store StoryStore) *Service {
	return &Service{
		cfg:        cfg,
		trends:     trendSvc,
		recognizer: recognizer,
		provider:   provider,
		store:      store,
		retry:      retry.DefaultPolicy().WithAttempts(cfg.Generation.RetryAttempts),
		now:        time.Now,
	}
}

// Generate runs the full pipeline for one request. Every returned error is a
// *Error carrying a taxonomy kind; helpers upstream only need KindOf.
func (s *Service) Generate(ctx context.Context, req Request) (*models.StoryResult, error) {
	source, ok := trends.ParseSource(req.Source)
	if !ok {
		return nil, newError(KindInvalidArgument, "unsupported source %q: must be one of %s", req.Source, joinSources())
	}
	if req.Limit < 1 || req.Limit > s.cfg.Trends.MaxLimit {
		return nil, newError(KindInvalidArgument, "limit %d out of range: must be between 1 and %d", req.Limit, s.cfg.Trends.MaxLimit)
	}
	theme, ok := config.ParseTheme(req.Theme)
	if !ok {
		return nil, newError(KindInvalidArgument, "unsupported theme %q: must be one of %s", req.Theme, joinThemes())
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Request.DeadlineSeconds)*time.Second)
	defer cancel()

	var (
		topics     []models.Topic
		moodResult = mood.Unknown()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		topics, err = s.trends.Fetch(gctx, source, req.Limit)
		return err
	})
	if len(req.Image) > 0 && s.recognizer != nil {
		g.Go(func() error {
			res, err := s.recognizer.Detect(gctx, req.Image)
			if err != nil {
				// Mood is an enhancement, never a hard dependency: log
				// and carry on with unknown.
				slog.Warn("Mood detection failed, continuing without mood", "error", err)
				return nil
			}
			moodResult = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.classifyFetchError(ctx, source, err)
	}

	moodLabel := ""
	if moodResult.Label != mood.LabelUnknown {
		moodLabel = moodResult.Label
	}
	effective := theme
	if req.Theme == "" {
		effective = config.ThemeForMood(moodResult.Label)
	}

	prompt := BuildPrompt(effective, topics, moodLabel, s.now())

	genTimeout := time.Duration(s.cfg.Generation.TimeoutSeconds) * time.Second
	var genResp *ai.Response
	err := s.retry.Do(ctx, func() error {
		callCtx, cancelCall := context.WithTimeout(ctx, genTimeout)
		defer cancelCall()
		resp, err := s.provider.Generate(callCtx, ai.Request{
			Prompt:      prompt,
			MaxTokens:   s.cfg.Generation.MaxTokens,
			Temperature: s.cfg.Generation.Temperature,
		})
		if err != nil {
			if ctx.Err() != nil {
				// Overall budget is gone; further attempts are pointless.
				return retry.Permanent(err)
			}
			return err
		}
		genResp = resp
		return nil
	})
	if err != nil {
		return nil, s.classifyGenerationError(ctx, err)
	}

	result := &models.StoryResult{
		Story:       sanitizeOutput(genResp.Text),
		TopicsUsed:  topicTexts(topics),
		Theme:       string(effective),
		Mood:        moodLabel,
		Source:      string(source),
		ModelName:   genResp.Model,
		GeneratedAt: s.now().UTC(),
	}

	if s.store != nil {
		rec := models.StoryRecord{
			ID:     uuid.NewString(),
			Story:  result.Story,
			Theme:  result.Theme,
			Mood:   result.Mood,
			Source: result.Source,
			Topics: result.TopicsUsed,
			ModelName: result.ModelName,
			CreatedAt: result.GeneratedAt,
		}
		if err := s.store.SaveStory(context.WithoutCancel(ctx), rec); err != nil {
			slog.Warn("Failed to archive story", "id", rec.ID, "error", err)
		}
	}

	return result, nil
}

func (s *Service) classifyFetchError(ctx context.Context, source trends.Source, err error) *Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == context.DeadlineExceeded:
		return newError(KindDeadlineExceeded, "request deadline exceeded while fetching %s trends", source)
	case errors.Is(err, trends.ErrUnavailable):
		return newError(KindUpstreamUnavailable, "trend source %s is unavailable: %v", source, err)
	default:
		return newError(KindInternal, "fetching %s trends: %v", source, err)
	}
}

func (s *Service) classifyGenerationError(ctx context.Context, err error) *Error {
	switch {
	case ctx.Err() == context.DeadlineExceeded:
		return newError(KindDeadlineExceeded, "request deadline exceeded during story generation")
	case errors.Is(err, ai.ErrTimeout), errors.Is(err, ai.ErrBackend):
		return newError(KindGenerationFailed, "story generation failed after %d attempts: %v", s.retry.MaxAttempts, err)
	default:
		return newError(KindInternal, "story generation: %v", err)
	}
}

func topicTexts(topics []models.Topic) []string {
	out := make([]string, len(topics))
	for i, t := range topics {
		out[i] = t.Text
	}
	return out
}

func joinSources() string {
	parts := make([]string, 0, len(trends.SupportedSources()))
	for _, s := range trends.SupportedSources() {
		parts = append(parts, string(s))
	}
	return strings.Join(parts, ", ")
}

func joinThemes() string {
	parts := make([]string, 0, len(config.SupportedThemes()))
	for _, t := range config.SupportedThemes() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
