package domain

import "errors"

var (
	// ErrEmptyInput signals that text submitted for embedding was empty.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrEmbeddingProvider signals an embedding service failure.
	ErrEmbeddingProvider = errors.New("embedding provider error")
	// ErrSearchProvider signals that both the filtered and unfiltered search attempts failed.
	ErrSearchProvider = errors.New("search provider error")
	// ErrChatProvider signals a chat completion failure. Rephrasing callers
	// treat it as non-fatal and fall back to the unrephrased content.
	ErrChatProvider = errors.New("chat provider error")
)
