package retrieval

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"healthlens/domain/retrieval"
	"healthlens/internal"
	"healthlens/ports"

	"golang.org/x/sync/semaphore"
)

const (
	// fingerprintLen is the content-prefix length used to detect
	// near-duplicate documents across collections.
	fingerprintLen = 150

	// maxConcurrentSearches bounds the per-collection fan-out.
	maxConcurrentSearches = 4

	truncationMarker = "... [additional sources truncated for length]"
	blockDelimiter   = "\n---\n"
	emptyContextText = "No relevant documents found."
)

// Retriever merges semantic search results across document collections.
//
// Each collection is queried through the injected VectorSearcher for the
// full top-k, candidates are merged and stably sorted by score (collection
// order breaks ties), deduplicated by content fingerprint, and only then
// truncated to top-k so duplicates cannot starve distinct results. A
// failing collection is logged and skipped; if nothing yields results the
// caller gets an empty slice, never an error.
type Retriever struct {
	searcher ports.VectorSearcher
	logger   *internal.Logger
	topK     int
}

// NewRetriever creates a retriever with a default result count.
func NewRetriever(searcher ports.VectorSearcher, logger *internal.Logger, topK int) *Retriever {
	if topK < 1 {
		topK = 5
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Retriever{searcher: searcher, logger: logger, topK: topK}
}

// Retrieve returns up to topK deduplicated documents ranked by relevance.
// topK <= 0 falls back to the retriever default.
func (r *Retriever) Retrieve(ctx context.Context, query string, collections []string, topK int) []retrieval.Document {
	k := topK
	if k <= 0 {
		k = r.topK
	}

	// Fan out per collection, bounded; results land in per-collection
	// slots so the merge order stays deterministic.
	perCollection := make([][]retrieval.ScoredDocument, len(collections))
	sem := semaphore.NewWeighted(maxConcurrentSearches)
	done := make(chan int, len(collections))

	for i, name := range collections {
		go func(idx int, collection string) {
			defer func() { done <- idx }()
			if err := sem.Acquire(ctx, 1); err != nil {
				r.logger.Warn("search cancelled for collection %s: %v", collection, err)
				return
			}
			defer sem.Release(1)

			results, err := r.searcher.Search(ctx, collection, query, k)
			if err != nil {
				r.logger.Warn("failed to search collection %s: %v", collection, err)
				return
			}
			for j := range results {
				results[j].Document.Metadata.Collection = collection
				results[j].Document.Metadata.RelevanceScore = results[j].Score
			}
			perCollection[idx] = results
		}(i, name)
	}
	for range collections {
		<-done
	}

	var candidates []retrieval.ScoredDocument
	for _, results := range perCollection {
		candidates = append(candidates, results...)
	}

	if len(candidates) == 0 {
		r.logger.Info("no results found for query: %s", truncate(query, 50))
		return []retrieval.Document{}
	}

	// Stable sort keeps collection order as the tiebreak for equal scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	seen := make(map[string]struct{})
	unique := make([]retrieval.Document, 0, len(candidates))
	for _, c := range candidates {
		fp := fingerprint(c.Document.Content)
		if _, dup := seen[fp]; dup {
			continue
		}
		seen[fp] = struct{}{}
		unique = append(unique, c.Document)
	}

	if len(unique) > k {
		unique = unique[:k]
	}

	r.logger.Info("retrieved %d documents for query: %s...", len(unique), truncate(query, 50))
	return unique
}

// FormatContext concatenates attribution-headed blocks for an LLM prompt,
// stopping before the total would exceed maxLength. A truncation marker is
// appended when documents were dropped, so the result can exceed the budget
// by at most one delimiter plus the marker.
func (r *Retriever) FormatContext(documents []retrieval.Document, maxLength int) string {
	if len(documents) == 0 {
		return emptyContextText
	}

	var parts []string
	currentLength := 0

	for i, doc := range documents {
		block := formatBlock(i+1, doc)
		cost := len(block)
		if len(parts) > 0 {
			cost += len(blockDelimiter)
		}
		if currentLength+cost > maxLength {
			parts = append(parts, truncationMarker)
			break
		}
		parts = append(parts, block)
		currentLength += cost
	}

	return strings.Join(parts, blockDelimiter)
}

// formatBlock renders one document with its attribution header and any
// source-specific identifier hints.
func formatBlock(position int, doc retrieval.Document) string {
	source := doc.Metadata.Source
	if source == "" {
		source = "unknown"
	}

	header := fmt.Sprintf("[Source %d (%s, relevance: %.2f)]", position, source, doc.Metadata.RelevanceScore)

	switch source {
	case "usda":
		if fdcID := doc.Metadata.Extra["fdc_id"]; fdcID != "" {
			header += fmt.Sprintf(" [USDA FDC ID: %s]", fdcID)
		}
	case "pubmed":
		if pmid := doc.Metadata.Extra["pmid"]; pmid != "" {
			header += fmt.Sprintf(" [PMID: %s]", pmid)
		}
		if title := doc.Metadata.Extra["title"]; title != "" {
			header = fmt.Sprintf("%s\nTitle: %s", header, title)
		}
	}

	return fmt.Sprintf("%s\n%s\n", header, doc.Content)
}

// fingerprint keys a document by the first 150 characters of its trimmed
// content; the first (highest-ranked) occurrence wins.
func fingerprint(content string) string {
	trimmed := strings.TrimSpace(content)
	runes := []rune(trimmed)
	if len(runes) > fingerprintLen {
		return string(runes[:fingerprintLen])
	}
	return trimmed
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
