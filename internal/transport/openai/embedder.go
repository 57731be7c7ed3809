// Package openai implements the embedding and chat collaborators against the
// Azure OpenAI REST surface: {endpoint}/openai/deployments/{deployment}/...
// with the api-key header.
package openai

import (
	"fmt"
	"time"

	"context"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/contoso-cloud/handbookqa/internal/domain"
	"github.com/contoso-cloud/handbookqa/internal/metrics"
)

// Embedder is the embedding provider for query vectorization.
type Embedder struct {
	client     *openai.Client
	deployment string
	logger     *zap.Logger
}

// EmbedderConfig holds the embedding deployment settings.
type EmbedderConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Logger     *zap.Logger
}

// NewEmbedder creates an Azure OpenAI embedding provider.
func NewEmbedder(cfg *EmbedderConfig) *Embedder {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &Embedder{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: cfg.Deployment,
		logger:     cfg.Logger,
	}
}

// Embed implements domain.Embedder. Returns the vector and token usage with
// transport-level metrics.
func (e *Embedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.deployment),
	}

	start := time.Now()

	resp, err := e.client.CreateEmbeddings(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("embedding", "error").Inc()
		return domain.EmbeddingResult{}, parseAPIError("embedding", err, domain.ErrEmbeddingProvider)
	}

	if len(resp.Data) == 0 {
		metrics.ProviderRequestsTotal.WithLabelValues("embedding", "error").Inc()
		return domain.EmbeddingResult{}, fmt.Errorf("empty embedding response: %w", domain.ErrEmbeddingProvider)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("embedding", "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues("embedding").Observe(duration.Seconds())

	totalTokens := resp.Usage.TotalTokens
	promptTokens := resp.Usage.PromptTokens
	if totalTokens > 0 {
		metrics.EmbeddingTokensTotal.WithLabelValues("prompt").Add(float64(promptTokens))
		metrics.EmbeddingTokensTotal.WithLabelValues("total").Add(float64(totalTokens))
	}

	return domain.EmbeddingResult{
		Embedding:    resp.Data[0].Embedding,
		PromptTokens: promptTokens,
		TotalTokens:  totalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (e *Embedder) HealthCheck(ctx context.Context) error {
	if _, err := e.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}
