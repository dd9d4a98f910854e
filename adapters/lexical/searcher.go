package lexical

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"unicode"

	"healthlens/domain/retrieval"
	"healthlens/internal/errors"
)

// Searcher is an in-memory keyword-overlap index implementing both sides
// of the vector boundary. It is the no-embeddings fallback: scores are
// cosine similarity over binary term sets, in [0,1], so it ranks and
// merges exactly like a real vector index without computing embeddings.
// Useful for offline runs, the demo server, and deterministic tests.
type Searcher struct {
	mu          sync.RWMutex
	collections map[string][]indexedDoc
}

type indexedDoc struct {
	doc   retrieval.Document
	terms map[string]struct{}
}

// NewSearcher creates an empty in-memory index
func NewSearcher() *Searcher {
	return &Searcher{collections: make(map[string][]indexedDoc)}
}

// Add indexes documents into a collection, creating it on first use.
func (s *Searcher) Add(ctx context.Context, collection string, docs []retrieval.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, doc := range docs {
		s.collections[collection] = append(s.collections[collection], indexedDoc{
			doc:   doc,
			terms: termSet(doc.Content),
		})
	}
	return nil
}

// Count returns the number of indexed documents in a collection.
func (s *Searcher) Count(ctx context.Context, collection string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collections[collection]), nil
}

// Search scores every document in the collection against the query and
// returns the top k by similarity. An unknown collection is an error so
// the retriever can log and skip it, matching how a real index behaves.
func (s *Searcher) Search(ctx context.Context, collection, query string, k int) ([]retrieval.ScoredDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	docs, ok := s.collections[collection]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NotFound("collection " + collection)
	}

	queryTerms := termSet(query)
	if len(queryTerms) == 0 {
		return nil, nil
	}

	var scored []retrieval.ScoredDocument
	for _, d := range docs {
		score := cosineOverlap(queryTerms, d.terms)
		if score <= 0 {
			continue
		}
		scored = append(scored, retrieval.ScoredDocument{Document: d.doc, Score: score})
	}

	// Stable: ties keep insertion order.
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// cosineOverlap is cosine similarity over binary term sets.
func cosineOverlap(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	shared := 0
	for term := range a {
		if _, ok := b[term]; ok {
			shared++
		}
	}
	return float64(shared) / math.Sqrt(float64(len(a))*float64(len(b)))
}

func termSet(text string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if len(tok) > 1 {
			terms[tok] = struct{}{}
		}
	}
	return terms
}
