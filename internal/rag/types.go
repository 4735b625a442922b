package rag

// Chunk is an immutable unit of ingested knowledge. Chunks are created by the
// offline ingestion job and only ever read by the serving path.
type Chunk struct {
	ID         string    // unique chunk identifier, e.g. "pricing.md#0003"
	DocumentID string    // source document the chunk was cut from
	Text       string    // the chunk's text span
	Embedding  []float32 // embedding vector, same scheme as query embeddings
	Page       int       // optional source page, zero when unknown
	Section    string    // optional source section heading
}

// Match is one nearest-neighbor search result.
type Match struct {
	ChunkID  string
	SourceID string // document the chunk came from
	Text     string
	Score    float64 // cosine similarity, higher is closer
}
