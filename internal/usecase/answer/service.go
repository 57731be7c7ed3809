// Package answer orchestrates the handbook query flow: embed the question,
// run a hybrid search, narrow the retrieved passages, rephrase them with the
// chat model, and render the answer with source attributions.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/contoso-cloud/handbookqa/internal/domain"
	"github.com/contoso-cloud/handbookqa/internal/domain/topic"
	"github.com/contoso-cloud/handbookqa/internal/metrics"
)

// DefaultTop is the default number of passages retrieved per query.
const DefaultTop = 3

// noContentPlaceholder substitutes for a hit that carries no content field.
const noContentPlaceholder = "No content available"

// Narrowing keyword lists. Applied per search hit when the query matches the
// corresponding trigger phrases; they differ deliberately from the topic
// classifier's groups.
var (
	securityNarrowKeywords = []string{
		"password", "encryption", "access", "confidential",
		"protect", "secure", "data handling", "classification",
	}
	vacationNarrowKeywords = []string{
		"days", "hours", "request", "approval", "accrual", "balance", "holiday",
	}
)

// Service answers handbook questions. Safe for concurrent use: nothing is
// mutated after construction.
type Service struct {
	embed  Embedder
	search Searcher
	chat   Rephraser
	logger *zap.Logger
}

// New creates an answer service.
func New(embed Embedder, search Searcher, chat Rephraser, logger *zap.Logger) *Service {
	return &Service{embed: embed, search: search, chat: chat, logger: logger}
}

// GenerateEmbedding vectorizes text. Empty text fails with ErrEmptyInput
// before any network call.
func (s *Service) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, domain.ErrEmptyInput
	}
	res, err := s.embed.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("generate embedding: %w", err)
	}
	return res.Embedding, nil
}

// SearchDocuments embeds the query and issues one hybrid search with an
// optional keyword-derived filter. A failed search call is retried once
// without the filter; if the retry also fails the error wraps
// ErrSearchProvider. An embedding failure propagates immediately and is
// never retried. Result ordering is the service's.
func (s *Service) SearchDocuments(ctx context.Context, query string, top int) ([]domain.SearchResult, error) {
	if top <= 0 {
		top = DefaultTop
	}

	vec, err := s.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}

	req := domain.SearchRequest{
		Query:  query,
		Vector: vec,
		Filter: searchFilter(query),
		Top:    top,
	}

	results, err := s.search.Search(ctx, req)
	if err == nil {
		return results, nil
	}

	s.logger.Warn("search failed, retrying without filter",
		zap.String("filter", req.Filter),
		zap.Error(err),
	)

	req.Filter = ""
	results, retryErr := s.search.Search(ctx, req)
	if retryErr != nil {
		return nil, fmt.Errorf("%w: unfiltered retry also failed: %w", domain.ErrSearchProvider, retryErr)
	}
	return results, nil
}

// searchFilter derives an optional server-side filter expression from the
// lowercased query. The first matching keyword group wins.
func searchFilter(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "security") || strings.Contains(q, "data"):
		return "search.ismatch('security OR data OR confidential OR privacy', 'content')"
	case strings.Contains(q, "vacation") || strings.Contains(q, "pto"):
		return "search.ismatch('vacation OR pto OR leave OR time off', 'content')"
	case strings.Contains(q, "policy"):
		return "search.ismatch('policy OR guideline OR procedure', 'content')"
	}
	return ""
}

// Answer runs the full query flow and returns the structured answer. A query
// with no hits yields the no-results answer, not an error.
func (s *Service) Answer(ctx context.Context, query string, top int) (domain.Answer, error) {
	results, err := s.SearchDocuments(ctx, query, top)
	if err != nil {
		return domain.Answer{}, err
	}

	if len(results) == 0 {
		metrics.AnswersTotal.WithLabelValues(topic.Classify(query).String(), "no_results").Inc()
		return domain.Answer{Body: domain.NoResultsMessage}, nil
	}

	tp := topic.Classify(query)

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		blocks = append(blocks, narrowContent(query, r.Content))
	}

	combined := strings.Join(blocks, "\n\n")
	body := s.rephrase(ctx, combined, query)

	sources := make([]string, 0, len(results))
	for i, r := range results {
		switch {
		case r.Title != "":
			sources = append(sources, r.Title)
		case r.URL != "":
			sources = append(sources, r.URL)
		default:
			sources = append(sources, fmt.Sprintf("Employee Handbook Section %d", i+1))
		}
	}

	metrics.AnswersTotal.WithLabelValues(tp.String(), "answered").Inc()

	return domain.Answer{
		Header:  tp.Header(query),
		Body:    body,
		Sources: sources,
	}, nil
}

// QueryHandbook is the presentation form of Answer: it never fails, reporting
// any error as the rendered error string.
func (s *Service) QueryHandbook(ctx context.Context, query string, top int) string {
	ans, err := s.Answer(ctx, query, top)
	if err != nil {
		metrics.AnswersTotal.WithLabelValues(topic.Classify(query).String(), "error").Inc()
		return domain.RenderAnswerError(err)
	}
	return ans.Render()
}

// narrowContent trims a hit's content to its most relevant sentences for the
// security and vacation question families; other queries keep full content.
func narrowContent(query, content string) string {
	if content == "" {
		return noContentPlaceholder
	}

	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "data security") || strings.Contains(q, "security policy"):
		return extractRelevantSentences(content, securityNarrowKeywords)
	case strings.Contains(q, "vacation") || strings.Contains(q, "pto"):
		return extractRelevantSentences(content, vacationNarrowKeywords)
	}
	return content
}

// rephrase asks the chat model to rewrite the combined content. Failures are
// non-fatal: the original content is returned untouched.
func (s *Service) rephrase(ctx context.Context, content, query string) string {
	out, err := s.chat.Rephrase(ctx, content, query)
	if err != nil {
		s.logger.Warn("rephrase failed, keeping original content", zap.Error(err))
		return content
	}
	return out
}
