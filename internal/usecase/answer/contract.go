package answer

import (
	"context"

	"github.com/contoso-cloud/handbookqa/internal/domain"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Searcher runs one hybrid query against the handbook index.
type Searcher interface {
	Search(ctx context.Context, req domain.SearchRequest) ([]domain.SearchResult, error)
}

// Rephraser rewrites retrieved passages into a direct answer to the query.
type Rephraser interface {
	Rephrase(ctx context.Context, content, query string) (string, error)
}
