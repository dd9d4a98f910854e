package retrieval

import (
	"context"
	"strings"
	"testing"

	"healthlens/domain/retrieval"
	"healthlens/internal/errors"
)

// fakeIndexer records added batches.
type fakeIndexer struct {
	batches [][]retrieval.Document
	count   int
	failAdd bool
}

func (f *fakeIndexer) Add(ctx context.Context, collection string, docs []retrieval.Document) error {
	if f.failAdd {
		return errors.ExternalServiceError("vector index", errors.InternalError("down"))
	}
	f.batches = append(f.batches, docs)
	f.count += len(docs)
	return nil
}

func (f *fakeIndexer) Count(ctx context.Context, collection string) (int, error) {
	if f.failAdd {
		return 0, errors.ExternalServiceError("vector index", errors.InternalError("down"))
	}
	return f.count, nil
}

func TestIngest_AssignsChunkIDsAndMetadata(t *testing.T) {
	indexer := &fakeIndexer{}
	ing := NewIngestor(indexer, nil)

	docs := []retrieval.IngestDocument{
		{ID: "doc-1", Source: "usda", Content: "short document", Extra: map[string]string{"fdc_id": "42"}},
	}

	n, err := ing.Ingest(context.Background(), "nutrition_docs", docs)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("got %d chunks, want 1", n)
	}

	chunk := indexer.batches[0][0]
	if chunk.Metadata.Source != "usda" {
		t.Errorf("Source = %q, want usda", chunk.Metadata.Source)
	}
	if chunk.Metadata.Collection != "nutrition_docs" {
		t.Errorf("Collection = %q, want nutrition_docs", chunk.Metadata.Collection)
	}
	if chunk.Metadata.Extra["fdc_id"] != "42" {
		t.Errorf("fdc_id not carried through: %v", chunk.Metadata.Extra)
	}
	if chunk.Metadata.Extra["chunk_id"] == "" {
		t.Error("chunk_id not assigned")
	}
}

func TestIngest_BatchesLargeSets(t *testing.T) {
	indexer := &fakeIndexer{}
	ing := NewIngestor(indexer, nil)

	docs := make([]retrieval.IngestDocument, 250)
	for i := range docs {
		docs[i] = retrieval.IngestDocument{Source: "pubmed", Content: "abstract text"}
	}

	n, err := ing.Ingest(context.Background(), "pubmed_abstracts", docs)
	if err != nil {
		t.Fatalf("Ingest failed: %v", err)
	}
	if n != 250 {
		t.Fatalf("got %d chunks, want 250", n)
	}
	if len(indexer.batches) != 3 {
		t.Fatalf("got %d batches, want 3 (100+100+50)", len(indexer.batches))
	}
	if len(indexer.batches[2]) != 50 {
		t.Errorf("final batch size = %d, want 50", len(indexer.batches[2]))
	}
}

func TestIngest_IndexerFailure(t *testing.T) {
	ing := NewIngestor(&fakeIndexer{failAdd: true}, nil)

	_, err := ing.Ingest(context.Background(), "c", []retrieval.IngestDocument{{Content: "x"}})
	if err == nil {
		t.Fatal("want error when the indexer rejects a batch")
	}
}

func TestCollectionStats_DegradesToZero(t *testing.T) {
	ing := NewIngestor(&fakeIndexer{failAdd: true}, nil)
	if got := ing.CollectionStats(context.Background(), "c"); got != 0 {
		t.Errorf("CollectionStats = %d, want 0 on error", got)
	}

	indexer := &fakeIndexer{count: 7}
	ing = NewIngestor(indexer, nil)
	if got := ing.CollectionStats(context.Background(), "c"); got != 7 {
		t.Errorf("CollectionStats = %d, want 7", got)
	}
}

func TestChunkText(t *testing.T) {
	t.Run("short text passes through", func(t *testing.T) {
		got := chunkText("hello world", 1000, 200)
		if len(got) != 1 || got[0] != "hello world" {
			t.Fatalf("got %v", got)
		}
	})

	t.Run("empty text yields nothing", func(t *testing.T) {
		if got := chunkText("   ", 1000, 200); got != nil {
			t.Fatalf("got %v, want nil", got)
		}
	})

	t.Run("splits on paragraph boundaries", func(t *testing.T) {
		para := strings.Repeat("sentence one. ", 30) // ~420 chars
		text := para + "\n\n" + para + "\n\n" + para

		chunks := chunkText(text, 500, 100)
		if len(chunks) < 2 {
			t.Fatalf("got %d chunks, want several", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 500 {
				t.Errorf("chunk %d has %d chars, exceeds size", i, len(c))
			}
			if c != strings.TrimSpace(c) {
				t.Errorf("chunk %d not trimmed: %q", i, c)
			}
		}
	})

	t.Run("unbreakable text cuts hard", func(t *testing.T) {
		text := strings.Repeat("x", 1200)
		chunks := chunkText(text, 500, 100)
		if len(chunks) < 3 {
			t.Fatalf("got %d chunks, want at least 3", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 500 {
				t.Errorf("chunk %d has %d chars, exceeds size", i, len(c))
			}
		}
	})

	t.Run("consecutive chunks overlap", func(t *testing.T) {
		words := strings.Repeat("alpha beta gamma delta ", 60) // ~1380 chars
		chunks := chunkText(words, 500, 100)
		if len(chunks) < 2 {
			t.Fatalf("got %d chunks, want at least 2", len(chunks))
		}
		// The tail of each chunk reappears at the head of the next.
		tail := chunks[0][len(chunks[0])-20:]
		if !strings.Contains(chunks[1], strings.TrimSpace(tail)) {
			t.Errorf("no overlap between chunk 0 and 1")
		}
	})
}
