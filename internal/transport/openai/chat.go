package openai

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/contoso-cloud/handbookqa/internal/domain"
	"github.com/contoso-cloud/handbookqa/internal/metrics"
)

// rephraseSystemPrompt instructs the chat model how to rewrite handbook passages.
const rephraseSystemPrompt = `You are a helpful assistant that rephrases and improves content from an employee handbook.
Your task is to:
1. Make the content clear and easy to understand
2. Keep all important information intact
3. Structure the response in a professional manner
4. Focus on answering the specific question asked
5. Remove any redundant or unclear text
6. Provide a direct, specific answer to the question`

const rephraseUserPrompt = `Please rephrase and improve the following content from Contoso's employee handbook to directly answer this specific question: %q

Content from handbook:
%s

Please provide a clear, professional, and direct response that specifically answers the question. Do not include generic information that doesn't address the question.`

// Rephraser rewrites retrieved handbook passages into a direct answer via the
// Azure OpenAI chat completion API.
type Rephraser struct {
	client     *openai.Client
	deployment string
	logger     *zap.Logger
}

// RephraserConfig holds the chat deployment settings.
type RephraserConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
	Logger     *zap.Logger
}

// NewRephraser creates an Azure OpenAI chat rephraser.
func NewRephraser(cfg *RephraserConfig) *Rephraser {
	clientCfg := openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	if cfg.APIVersion != "" {
		clientCfg.APIVersion = cfg.APIVersion
	}
	deployment := cfg.Deployment
	clientCfg.AzureModelMapperFunc = func(string) string { return deployment }

	return &Rephraser{
		client:     openai.NewClientWithConfig(clientCfg),
		deployment: cfg.Deployment,
		logger:     cfg.Logger,
	}
}

// Rephrase asks the chat model to rewrite content into a direct answer to
// query. Returns the generated text trimmed of surrounding whitespace.
// Callers treat failures as non-fatal and keep the original content.
func (r *Rephraser) Rephrase(ctx context.Context, content, query string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: r.deployment,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: rephraseSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf(rephraseUserPrompt, query, content)},
		},
		MaxTokens:   1000,
		Temperature: 0.2,
		TopP:        0.9,
	}

	start := time.Now()

	resp, err := r.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues("chat", "error").Inc()
		return "", parseAPIError("chat", err, domain.ErrChatProvider)
	}

	if len(resp.Choices) == 0 {
		metrics.ProviderRequestsTotal.WithLabelValues("chat", "error").Inc()
		return "", fmt.Errorf("empty chat response: %w", domain.ErrChatProvider)
	}

	metrics.ProviderRequestsTotal.WithLabelValues("chat", "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues("chat").Observe(duration.Seconds())

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
