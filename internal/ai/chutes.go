package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const chutesBaseURL = "https://llm.chutes.ai/v1/chat/completions"

// ChutesProvider implements Provider for the Chutes.ai OpenAI-compatible API.
type ChutesProvider struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewChutesProvider creates a Chutes.ai provider.
func NewChutesProvider(apiKey, model string) *ChutesProvider {
	if strings.TrimSpace(model) == "" {
		model = "deepseek-ai/DeepSeek-V3"
	}
	return &ChutesProvider{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		apiKey:     strings.TrimSpace(apiKey),
		model:      strings.TrimSpace(model),
		baseURL:    chutesBaseURL,
	}
}

func (c *ChutesProvider) Name() string { return "chutes" }

func (c *ChutesProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("chutes API key not configured: %w", ErrBackend)
	}

	body := openAIChatRequest{
		Model:       c.model,
		Messages:    []openAIMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      false,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, translateTransportError("chutes", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, translateTransportError("chutes", err)
	}

	if resp.StatusCode != 200 {
		errMsg := extractOpenAIError(respBody)
		if errMsg == "" {
			errMsg = string(respBody)
		}
		slog.Error("Chutes API error", "status", resp.StatusCode, "model", c.model, "error", errMsg)
		return nil, fmt.Errorf("chutes returned status %d: %s: %w", resp.StatusCode, errMsg, ErrBackend)
	}

	var chatResp openAIChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, fmt.Errorf("parse chutes response: %w: %w", err, ErrBackend)
	}

	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("chutes returned no content: %w", ErrBackend)
	}

	tokensUsed := 0
	if chatResp.Usage != nil {
		tokensUsed = chatResp.Usage.TotalTokens
	}

	slog.Debug("Chutes request completed", "model", c.model, "elapsed", time.Since(start), "tokens", tokensUsed)

	return &Response{
		Text:       chatResp.Choices[0].Message.Content,
		Model:      c.model,
		Provider:   "chutes",
		TokensUsed: tokensUsed,
	}, nil
}
