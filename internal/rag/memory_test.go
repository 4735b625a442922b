package rag

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChunks() []Chunk {
	return []Chunk{
		{ID: "doc.md#0000", DocumentID: "doc.md", Text: "about fees", Embedding: []float32{1, 0, 0}},
		{ID: "doc.md#0001", DocumentID: "doc.md", Text: "about pix", Embedding: []float32{0, 1, 0}},
		{ID: "doc.md#0002", DocumentID: "doc.md", Text: "about cards", Embedding: []float32{0.9, 0.1, 0}},
	}
}

func TestMemoryIndexOrdering(t *testing.T) {
	idx := NewMemoryIndex(testChunks())

	matches, err := idx.Search(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, "doc.md#0000", matches[0].ChunkID)
	assert.Equal(t, "doc.md#0002", matches[1].ChunkID)
	assert.Equal(t, "doc.md#0001", matches[2].ChunkID)
	assert.True(t, matches[0].Score >= matches[1].Score)
	assert.True(t, matches[1].Score >= matches[2].Score)
}

func TestMemoryIndexTieBreakByChunkID(t *testing.T) {
	idx := NewMemoryIndex([]Chunk{
		{ID: "b#0000", Text: "b", Embedding: []float32{1, 0}},
		{ID: "a#0000", Text: "a", Embedding: []float32{1, 0}},
	})

	matches, err := idx.Search(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a#0000", matches[0].ChunkID)
	assert.Equal(t, "b#0000", matches[1].ChunkID)
}

func TestMemoryIndexKLargerThanSize(t *testing.T) {
	idx := NewMemoryIndex(testChunks())

	matches, err := idx.Search(context.Background(), []float32{0, 1, 0}, 100)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestMemoryIndexEmpty(t *testing.T) {
	idx := NewMemoryIndex(nil)

	matches, err := idx.Search(context.Background(), []float32{1, 0}, 4)
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Zero(t, idx.Len())
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.Zero(t, cosineSimilarity([]float32{0, 0}, []float32{1, 0}))
}
