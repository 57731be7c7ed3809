// Package azsearch is a minimal client for the Azure AI Search documents
// REST API, covering the single hybrid query this service issues.
package azsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/contoso-cloud/handbookqa/internal/domain"
	"github.com/contoso-cloud/handbookqa/internal/metrics"
)

// Client issues hybrid queries against one search index.
type Client struct {
	endpoint   string
	index      string
	apiKey     string
	apiVersion string
	httpClient *http.Client
	logger     *zap.Logger
}

// Config holds the search service settings.
type Config struct {
	Endpoint   string
	Index      string
	APIKey     string
	APIVersion string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// NewClient creates a search client for the configured index.
func NewClient(cfg *Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = "2023-11-01"
	}

	return &Client{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		index:      cfg.Index,
		apiKey:     cfg.APIKey,
		apiVersion: apiVersion,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// vectorQuery is the KNN leg of a hybrid query.
type vectorQuery struct {
	Kind   string    `json:"kind"`
	Vector []float32 `json:"vector"`
	K      int       `json:"k"`
	Fields string    `json:"fields"`
}

// searchRequest is the REST request body for POST .../docs/search.
type searchRequest struct {
	Search        string        `json:"search"`
	VectorQueries []vectorQuery `json:"vectorQueries,omitempty"`
	Filter        string        `json:"filter,omitempty"`
	Select        string        `json:"select"`
	Top           int           `json:"top"`
}

// searchHit is one element of the response "value" array. Score comes from
// the service; the rest are index fields that may be absent.
type searchHit struct {
	Score    float64 `json:"@search.score"`
	ChunkID  string  `json:"chunk_id"`
	Content  string  `json:"content"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Filepath string  `json:"filepath"`
	ParentID string  `json:"parent_id"`
}

type searchResponse struct {
	Value []searchHit `json:"value"`
}

// Search runs one hybrid query: the raw text plus a vector query against the
// contentVector field, with req.Filter applied server-side when present.
// Result ordering is whatever the service returns.
func (c *Client) Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error) {
	body := searchRequest{
		Search: req.Query,
		VectorQueries: []vectorQuery{{
			Kind:   "vector",
			Vector: req.Vector,
			K:      req.Top,
			Fields: "contentVector",
		}},
		Filter: req.Filter,
		Select: "*",
		Top:    req.Top,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/indexes/%s/docs/search?api-version=%s",
		c.endpoint, url.PathEscape(c.index), url.QueryEscape(c.apiVersion))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	start := time.Now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.ProviderRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("search API error %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("search", "error").Inc()
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("search", "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues("search").Observe(time.Since(start).Seconds())

	results := make([]domain.SearchResult, len(parsed.Value))
	for i, hit := range parsed.Value {
		results[i] = domain.SearchResult{
			Score:    hit.Score,
			ChunkID:  hit.ChunkID,
			Content:  hit.Content,
			Title:    hit.Title,
			URL:      hit.URL,
			Filepath: hit.Filepath,
			ParentID: hit.ParentID,
		}
	}
	return results, nil
}

// Ping probes the index definition endpoint to verify reachability.
func (c *Client) Ping(ctx context.Context) error {
	reqURL := fmt.Sprintf("%s/indexes/%s?api-version=%s",
		c.endpoint, url.PathEscape(c.index), url.QueryEscape(c.apiVersion))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("build index request: %w", err)
	}
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("index probe returned %d", resp.StatusCode)
	}
	return nil
}

// readErrorBody returns a bounded snippet of an error response body.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 512))
	if err != nil || len(data) == 0 {
		return "(no body)"
	}
	return string(data)
}
