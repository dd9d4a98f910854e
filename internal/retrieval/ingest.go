package retrieval

import (
	"context"
	"strings"

	"healthlens/domain/retrieval"
	"healthlens/internal"
	"healthlens/internal/errors"
	"healthlens/ports"

	"github.com/google/uuid"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
	batchSize    = 100
)

// chunkSeparators in preference order; the splitter cuts at the last
// occurrence of the strongest separator inside the size window.
var chunkSeparators = []string{"\n\n", "\n", ". ", " "}

// Ingestor chunks raw documents and adds them to the vector index in
// batches. IDs are assigned here so re-ingestion produces fresh entries.
type Ingestor struct {
	indexer ports.VectorIndexer
	logger  *internal.Logger
}

// NewIngestor creates an ingestor writing through the given indexer.
func NewIngestor(indexer ports.VectorIndexer, logger *internal.Logger) *Ingestor {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Ingestor{indexer: indexer, logger: logger}
}

// Ingest chunks the documents and batch-adds them to the named collection,
// returning the number of chunks written.
func (in *Ingestor) Ingest(ctx context.Context, collection string, docs []retrieval.IngestDocument) (int, error) {
	var chunks []retrieval.Document
	for _, doc := range docs {
		for _, piece := range chunkText(doc.Content, chunkSize, chunkOverlap) {
			extra := make(map[string]string, len(doc.Extra)+1)
			for k, v := range doc.Extra {
				extra[k] = v
			}
			extra["chunk_id"] = uuid.NewString()
			chunks = append(chunks, retrieval.Document{
				Content: piece,
				Metadata: retrieval.Metadata{
					Source:     doc.Source,
					Collection: collection,
					Extra:      extra,
				},
			})
		}
	}
	in.logger.Info("split %d documents into %d chunks", len(docs), len(chunks))

	for i := 0; i < len(chunks); i += batchSize {
		end := i + batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		if err := in.indexer.Add(ctx, collection, chunks[i:end]); err != nil {
			return i, errors.Wrapf(err, "failed to add batch %d-%d/%d to %s", i+1, end, len(chunks), collection)
		}
		in.logger.Info("added batch %d-%d/%d to %s", i+1, end, len(chunks), collection)
	}

	in.logger.Info("finished adding %d chunks to %s", len(chunks), collection)
	return len(chunks), nil
}

// CollectionStats reports the document count for a collection, degrading
// to zero when the collection is missing or the index is unreachable.
func (in *Ingestor) CollectionStats(ctx context.Context, collection string) int {
	count, err := in.indexer.Count(ctx, collection)
	if err != nil {
		in.logger.Warn("failed to count collection %s: %v", collection, err)
		return 0
	}
	return count
}

// chunkText splits text into pieces of at most size characters with the
// given overlap, cutting on the strongest separator available inside each
// window.
func chunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= size {
		return []string{text}
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end >= len(text) {
			piece := strings.TrimSpace(text[start:])
			if piece != "" {
				chunks = append(chunks, piece)
			}
			break
		}

		window := text[start:end]
		cut := -1
		for _, sep := range chunkSeparators {
			if idx := strings.LastIndex(window, sep); idx > 0 {
				cut = idx + len(sep)
				break
			}
		}
		if cut <= 0 {
			cut = size
		}

		piece := strings.TrimSpace(text[start : start+cut])
		if piece != "" {
			chunks = append(chunks, piece)
		}

		next := start + cut - overlap
		if next <= start {
			next = start + cut
		}
		start = next
	}
	return chunks
}
