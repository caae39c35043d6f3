package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/contentforge/contentforge/pkg/logger"
)

// CompletionConfig carries the external-provider parameters. MaxTokens
// bounds the output length and Temperature fixes the sampling behavior.
type CompletionConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// OpenAIGenerator forwards the triple to an OpenAI-compatible completion
// endpoint and relays its trimmed output verbatim. Provider failures are
// wrapped in ErrGenerationFailed; there is no retry and no fallback to
// template mode.
type OpenAIGenerator struct {
	cfg        CompletionConfig
	httpClient *http.Client
}

func NewOpenAIGenerator(cfg CompletionConfig) *OpenAIGenerator {
	return &OpenAIGenerator{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 90 * time.Second},
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, title, contentType, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"model":       g.cfg.Model,
		"prompt":      fmt.Sprintf("Create a %s with the title %q about %q.", contentType, title, prompt),
		"max_tokens":  g.cfg.MaxTokens,
		"temperature": g.cfg.Temperature,
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%w: marshal completion request: %v", ErrGenerationFailed, err)
	}

	url := strings.TrimRight(g.cfg.BaseURL, "/") + "/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: build completion request: %v", ErrGenerationFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: completion request: %v", ErrGenerationFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read completion response: %v", ErrGenerationFailed, err)
	}
	if resp.StatusCode >= 300 {
		logger.Warnf("completion provider returned status %d: %s", resp.StatusCode, string(raw))
		return "", fmt.Errorf("%w: provider status %d", ErrGenerationFailed, resp.StatusCode)
	}

	var parsed struct {
		Choices []struct {
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: parse completion response: %v", ErrGenerationFailed, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion choices", ErrGenerationFailed)
	}
	return strings.TrimSpace(parsed.Choices[0].Text), nil
}
