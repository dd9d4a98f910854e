package ports

import (
	"context"

	"healthlens/domain/retrieval"
)

// VectorSearcher is the injected similarity-search capability backing the
// retrieval engine. Embeddings are computed behind this boundary; the engine
// only sees (document, score) pairs. Scores are similarity-ordered: higher
// is more relevant.
type VectorSearcher interface {
	Search(ctx context.Context, collection, query string, k int) ([]retrieval.ScoredDocument, error)
}

// VectorIndexer is the write side of the same boundary, used by the
// ingestion pipeline.
type VectorIndexer interface {
	Add(ctx context.Context, collection string, docs []retrieval.Document) error
	Count(ctx context.Context, collection string) (int, error)
}
