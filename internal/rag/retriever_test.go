package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmbedder struct {
	vector []float32
	err    error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return s.vector, s.err
}

func TestRetrieverReturnsTopK(t *testing.T) {
	idx := NewMemoryIndex(testChunks())
	r := NewRetriever(&stubEmbedder{vector: []float32{1, 0, 0}}, idx)

	matches, err := r.Retrieve(context.Background(), "what are the fees", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "doc.md#0000", matches[0].ChunkID)
}

func TestRetrieverEmbeddingFailure(t *testing.T) {
	idx := NewMemoryIndex(testChunks())
	r := NewRetriever(&stubEmbedder{err: errors.New("quota exceeded")}, idx)

	matches, err := r.Retrieve(context.Background(), "anything", 2)
	assert.Error(t, err)
	assert.Empty(t, matches)
}

func TestRetrieverNilIndex(t *testing.T) {
	r := NewRetriever(&stubEmbedder{vector: []float32{1}}, nil)

	matches, err := r.Retrieve(context.Background(), "anything", 2)
	assert.Error(t, err)
	assert.Empty(t, matches)
}
