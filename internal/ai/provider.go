// Package ai adapts text-generation backends behind a single Provider
// interface. Providers translate backend-specific failures into ErrTimeout
// and ErrBackend; retry discipline lives with the caller so timeout budgets
// are enforced end-to-end rather than per attempt.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout indicates the backend call exceeded its time budget.
var ErrTimeout = errors.New("generation timed out")

// ErrBackend indicates the backend refused, failed, or answered garbage.
var ErrBackend = errors.New("generation backend error")

// Provider is the interface all text-generation backends implement.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	Name() string // "ollama", "gemini", or "chutes"
}

// Request is a provider-agnostic generation request.
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Response is a provider-agnostic generation result.
type Response struct {
	Text       string
	Model      string
	Provider   string
	TokensUsed int
}

// translateTransportError maps an HTTP transport failure onto the package's
// error taxonomy. Caller cancellation passes through untouched so the
// orchestrator can tell it apart from a slow backend.
func translateTransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s request timed out: %w", provider, ErrTimeout)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%s request timed out: %w", provider, ErrTimeout)
	}
	return fmt.Errorf("%s request failed: %w: %w", provider, ErrBackend, err)
}
