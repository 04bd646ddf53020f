// Package askflow is the Go client for the askflow HTTP API.
package askflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is the askflow SDK entry point.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("askflow: base URL required")
	}

	cfg := &clientConfig{
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    cfg.httpClient,
	}, nil
}

// Query sends a query through the assistant workflow.
func (c *Client) Query(ctx context.Context, query string) (QueryResult, error) {
	body, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return QueryResult{}, fmt.Errorf("askflow: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body),
	)
	if err != nil {
		return QueryResult{}, fmt.Errorf("askflow: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return QueryResult{}, fmt.Errorf("askflow: query: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return QueryResult{}, fmt.Errorf("askflow: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return QueryResult{}, apiError(resp.StatusCode, data)
	}

	var result QueryResult
	if err := json.Unmarshal(data, &result); err != nil {
		return QueryResult{}, fmt.Errorf("askflow: decode response: %w", err)
	}
	return result, nil
}

// Health checks service availability.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("askflow: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("askflow: health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apiError(resp.StatusCode, data)
	}
	return nil
}

func apiError(status int, body []byte) error {
	var parsed struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		return &APIError{Status: status, Message: parsed.Error}
	}
	return &APIError{Status: status, Message: http.StatusText(status)}
}
