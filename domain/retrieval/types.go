package retrieval

// Metadata carries source attribution for a retrieved document.
// Extra holds source-specific identifiers (pmid, title, fdc_id, ...).
type Metadata struct {
	Source         string            `json:"source"`
	Collection     string            `json:"collection"`
	RelevanceScore float64           `json:"relevance_score"`
	Extra          map[string]string `json:"extra,omitempty"`
}

// Document is a retrieved text chunk with attribution.
type Document struct {
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// ScoredDocument pairs a document with the similarity score its
// collection's index reported for the query.
type ScoredDocument struct {
	Document Document `json:"document"`
	Score    float64  `json:"score"`
}

// IngestDocument is a raw document handed to the ingestion pipeline
// before chunking and indexing.
type IngestDocument struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Source   string            `json:"source"`
	Extra    map[string]string `json:"extra,omitempty"`
}
