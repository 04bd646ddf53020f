// Package automation is the REST client for the workflow-automation tool's
// v1 API (n8n-compatible).
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client talks to the automation tool.
type Client struct {
	host   string
	apiKey string
	http   *http.Client
	logger *zap.Logger
}

// Config holds automation tool connection settings.
type Config struct {
	Host   string
	APIKey string
	Logger *zap.Logger
}

// Workflow is a registered workflow definition.
type Workflow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewClient creates an automation API client.
func NewClient(cfg *Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		host:   cfg.Host,
		apiKey: cfg.APIKey,
		http:   &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

// WaitUntilReady polls the health endpoint until it answers 200, up to
// attempts tries spaced by delay.
func (c *Client) WaitUntilReady(ctx context.Context, attempts int, delay time.Duration) error {
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("wait for automation tool: %w", ctx.Err())
			case <-time.After(delay):
			}
		}

		if err := c.checkHealth(ctx); err == nil {
			return nil
		}
		c.logger.Info("Waiting for automation tool",
			zap.Int("attempt", i+1),
			zap.Int("max_attempts", attempts),
		)
	}
	return fmt.Errorf("automation tool not available after %d attempts", attempts)
}

func (c *Client) checkHealth(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/v1/health", nil)
	if err != nil {
		return fmt.Errorf("build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("health request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health status %d", resp.StatusCode)
	}
	return nil
}

// ListWorkflows returns the registered workflows.
func (c *Client) ListWorkflows(ctx context.Context) ([]Workflow, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/v1/workflows", nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list workflows: status %d", resp.StatusCode)
	}

	var parsed struct {
		Data []Workflow `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode workflow list: %w", err)
	}
	return parsed.Data, nil
}

// CreateWorkflow registers a workflow definition.
func (c *Client) CreateWorkflow(ctx context.Context, definition json.RawMessage) error {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.host+"/api/v1/workflows", bytes.NewReader(definition),
	)
	if err != nil {
		return fmt.Errorf("build create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("create workflow: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("create workflow: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-N8N-API-KEY", c.apiKey)
	}
}
