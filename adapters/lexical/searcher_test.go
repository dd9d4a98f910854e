package lexical

import (
	"context"
	"testing"

	"healthlens/domain/retrieval"
	"healthlens/internal/errors"
)

func doc(content string) retrieval.Document {
	return retrieval.Document{Content: content, Metadata: retrieval.Metadata{Source: "usda"}}
}

func TestSearcher_AddAndSearch(t *testing.T) {
	ctx := context.Background()
	s := NewSearcher()

	err := s.Add(ctx, "docs", []retrieval.Document{
		doc("chicken breast protein content"),
		doc("oats fiber and carbohydrates"),
		doc("salmon omega three fatty acids"),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := s.Search(ctx, "docs", "protein in chicken", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("no results for overlapping query")
	}
	if results[0].Document.Content != "chicken breast protein content" {
		t.Errorf("top result = %q", results[0].Document.Content)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted by score at %d", i)
		}
	}
	for _, r := range results {
		if r.Score <= 0 || r.Score > 1 {
			t.Errorf("score %v outside (0,1]", r.Score)
		}
	}
}

func TestSearcher_TopKLimit(t *testing.T) {
	ctx := context.Background()
	s := NewSearcher()

	var docs []retrieval.Document
	for i := 0; i < 10; i++ {
		docs = append(docs, doc("steps walking health"))
	}
	if err := s.Add(ctx, "docs", docs); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := s.Search(ctx, "docs", "walking", 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("got %d results, want 3", len(results))
	}
}

func TestSearcher_UnknownCollection(t *testing.T) {
	s := NewSearcher()
	_, err := s.Search(context.Background(), "missing", "query", 5)
	if err == nil {
		t.Fatal("want error for unknown collection")
	}
	if errors.GetCode(err) != errors.CodeNotFound {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.CodeNotFound)
	}
}

func TestSearcher_NoTermOverlap(t *testing.T) {
	ctx := context.Background()
	s := NewSearcher()
	if err := s.Add(ctx, "docs", []retrieval.Document{doc("sleep quality research")}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := s.Search(ctx, "docs", "quantum chromodynamics", 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for disjoint query, want 0", len(results))
	}
}

func TestSearcher_Count(t *testing.T) {
	ctx := context.Background()
	s := NewSearcher()

	if n, err := s.Count(ctx, "docs"); err != nil || n != 0 {
		t.Fatalf("Count = (%d, %v), want (0, nil) before Add", n, err)
	}

	if err := s.Add(ctx, "docs", []retrieval.Document{doc("a b"), doc("c d")}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if n, _ := s.Count(ctx, "docs"); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestSearcher_CancelledContext(t *testing.T) {
	s := NewSearcher()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Add(ctx, "docs", []retrieval.Document{doc("x y")}); err == nil {
		t.Error("Add should honor a cancelled context")
	}
	if _, err := s.Search(ctx, "docs", "x", 5); err == nil {
		t.Error("Search should honor a cancelled context")
	}
}
