// Package ollama is the HTTP client for the local inference service's
// non-streaming generate API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/askflow/internal/domain"
	"github.com/kailas-cloud/askflow/internal/metrics"
)

// Client issues generate requests against an Ollama-compatible API.
type Client struct {
	baseURL string
	model   string
	http    *http.Client
	logger  *zap.Logger
}

// Config holds the inference service settings.
type Config struct {
	BaseURL string
	Model   string
	// Timeout bounds the whole outbound request. Zero means no timeout,
	// which reproduces the original behavior of hanging on a stuck upstream.
	Timeout time.Duration
	Logger  *zap.Logger
}

// Options tune a single generate call.
type Options struct {
	Temperature float64 `json:"temperature,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

type generateRequest struct {
	Model   string   `json:"model"`
	Prompt  string   `json:"prompt"`
	Stream  bool     `json:"stream"`
	System  string   `json:"system,omitempty"`
	Options *Options `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// NewClient creates a generate client.
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: cfg.BaseURL,
		model:   cfg.Model,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate issues a single non-streaming generate request. system may be
// empty. Any transport or protocol failure is returned as an error wrapped
// with domain.ErrLLMUnavailable; the caller decides how to degrade.
func (c *Client) Generate(ctx context.Context, prompt, system string) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		System: system,
	})
}

// GenerateWithOptions is Generate with per-call model options.
func (c *Client) GenerateWithOptions(ctx context.Context, prompt, system string, opts *Options) (string, error) {
	return c.generate(ctx, generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		System:  system,
		Options: opts,
	})
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(start)

	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("generate request: %v: %w", err, domain.ErrLLMUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("generate request rejected",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", detail),
		)
		return "", fmt.Errorf("generate request: status %d: %w", resp.StatusCode, domain.ErrLLMUnavailable)
	}

	var result generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, "error").Inc()
		return "", fmt.Errorf("decode generate response: %v: %w", err, domain.ErrLLMUnavailable)
	}

	metrics.LLMRequestsTotal.WithLabelValues(c.model, "success").Inc()
	metrics.LLMRequestDuration.WithLabelValues(c.model).Observe(duration.Seconds())

	// A valid body without a response field yields an empty completion,
	// not an error.
	return result.Response, nil
}
