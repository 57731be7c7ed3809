// Package handbookqa provides a thin HTTP client for the handbookqa API.
package handbookqa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 2 * time.Minute

// Client calls a running handbookqa API server.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the Bearer token sent with every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client for the given server base URL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("handbookqa: base URL required")
	}

	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

type askRequest struct {
	Query string `json:"query"`
	Top   int    `json:"top,omitempty"`
}

type askResponse struct {
	Answer string `json:"answer"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Ask sends a question and returns the rendered answer. top <= 0 uses the
// server's configured default.
func (c *Client) Ask(ctx context.Context, query string, top int) (string, error) {
	if top < 0 {
		top = 0
	}

	body, err := json.Marshal(askRequest{Query: query, Top: top})
	if err != nil {
		return "", fmt.Errorf("handbookqa: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+"/v1/ask", bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("handbookqa: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("handbookqa: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", apiError(resp)
	}

	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("handbookqa: decode response: %w", err)
	}
	return out.Answer, nil
}

func apiError(resp *http.Response) error {
	var errResp errorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if json.Unmarshal(data, &errResp) == nil && errResp.Message != "" {
		return fmt.Errorf("handbookqa: %s (status %d): %s", errResp.Code, resp.StatusCode, errResp.Message)
	}
	return fmt.Errorf("handbookqa: unexpected status %d", resp.StatusCode)
}
