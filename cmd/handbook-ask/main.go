// Command handbook-ask answers a single handbook question from the terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/contoso-cloud/handbookqa/internal/config"
	logpkg "github.com/contoso-cloud/handbookqa/internal/logger"
	"github.com/contoso-cloud/handbookqa/internal/metrics"
	"github.com/contoso-cloud/handbookqa/internal/transport/azsearch"
	openaiProv "github.com/contoso-cloud/handbookqa/internal/transport/openai"
	answeruc "github.com/contoso-cloud/handbookqa/internal/usecase/answer"
)

const defaultQuery = "What is Contoso's vacation policy?"

func main() {
	query := flag.String("q", defaultQuery, "question to ask the handbook")
	top := flag.Int("top", 0, "number of passages to retrieve (0 = configured default)")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	flag.Parse()

	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout carries only the answer.
	logger, err := logpkg.NewLogger(env, "error")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	metrics.RegisterProviderMetrics()

	embedder := openaiProv.NewEmbedder(&openaiProv.EmbedderConfig{
		Endpoint:   cfg.OpenAI.EmbeddingEndpoint(),
		APIKey:     cfg.OpenAI.APIKey,
		Deployment: cfg.OpenAI.Embedding.Deployment,
		APIVersion: cfg.OpenAI.Embedding.APIVersion,
		Logger:     logger,
	})

	searchClient := azsearch.NewClient(&azsearch.Config{
		Endpoint:   cfg.Search.Endpoint,
		Index:      cfg.Search.Index,
		APIKey:     cfg.Search.APIKey,
		APIVersion: cfg.Search.APIVersion,
		Logger:     logger,
	})

	rephraser := openaiProv.NewRephraser(&openaiProv.RephraserConfig{
		Endpoint:   cfg.OpenAI.Endpoint,
		APIKey:     cfg.OpenAI.APIKey,
		Deployment: cfg.OpenAI.Chat.Deployment,
		APIVersion: cfg.OpenAI.Chat.APIVersion,
		Logger:     logger,
	})

	svc := answeruc.New(embedder, searchClient, rephraser, logger)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	n := *top
	if n == 0 {
		n = cfg.Answer.Top
	}
	if n < 0 {
		fmt.Fprintln(os.Stderr, "top must not be negative")
		os.Exit(1)
	}

	fmt.Println(svc.QueryHandbook(ctx, *query, n))
}
