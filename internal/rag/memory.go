package rag

import (
	"context"
	"math"
	"sort"
)

// MemoryIndex is a brute-force cosine index over an in-process chunk slice.
// It serves local development runs without Postgres and follows the same
// ordering contract as PostgresIndex: descending similarity, ties broken by
// ascending chunk id, and k larger than the index size returns everything.
type MemoryIndex struct {
	chunks []Chunk
}

func NewMemoryIndex(chunks []Chunk) *MemoryIndex {
	return &MemoryIndex{chunks: chunks}
}

func (i *MemoryIndex) Search(_ context.Context, embedding []float32, k int) ([]Match, error) {
	if k <= 0 || len(i.chunks) == 0 {
		return nil, nil
	}

	matches := make([]Match, 0, len(i.chunks))
	for _, c := range i.chunks {
		matches = append(matches, Match{
			ChunkID:  c.ID,
			SourceID: c.DocumentID,
			Text:     c.Text,
			Score:    cosineSimilarity(embedding, c.Embedding),
		})
	}

	sort.Slice(matches, func(a, b int) bool {
		if matches[a].Score != matches[b].Score {
			return matches[a].Score > matches[b].Score
		}
		return matches[a].ChunkID < matches[b].ChunkID
	})

	if k < len(matches) {
		matches = matches[:k]
	}
	return matches, nil
}

// Len reports the number of indexed chunks.
func (i *MemoryIndex) Len() int {
	return len(i.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
