package domain

// SearchRequest describes one hybrid query against the handbook index:
// the raw query text, its embedding for the KNN leg, and an optional
// server-side filter expression.
type SearchRequest struct {
	Query  string
	Vector []float32
	Filter string
	Top    int
}

// SearchResult is a single hit returned by the document search service.
// Only Score is always present; the remaining fields are whatever the
// index stored for the chunk, empty when absent.
type SearchResult struct {
	Score    float64
	ChunkID  string
	Content  string
	Title    string
	URL      string
	Filepath string
	ParentID string
}
