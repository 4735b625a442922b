package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleContextJoinsInOrder(t *testing.T) {
	matches := []Match{
		{ChunkID: "a", Text: "first chunk", Score: 0.9},
		{ChunkID: "b", Text: "second chunk", Score: 0.8},
	}
	out := AssembleContext(matches, 1000)
	assert.Equal(t, "first chunk\n\nsecond chunk", out)
}

func TestAssembleContextDropsNonFitting(t *testing.T) {
	matches := []Match{
		{ChunkID: "a", Text: "short", Score: 0.9},
		{ChunkID: "b", Text: strings.Repeat("x", 100), Score: 0.8},
		{ChunkID: "c", Text: "tail", Score: 0.7},
	}
	out := AssembleContext(matches, 20)
	// The oversized middle chunk is dropped; assembly stops there so the
	// highest-similarity content survives.
	assert.Equal(t, "short", out)
}

func TestAssembleContextTruncatesFirstOversized(t *testing.T) {
	matches := []Match{{ChunkID: "a", Text: strings.Repeat("y", 50), Score: 0.9}}
	out := AssembleContext(matches, 10)
	assert.Len(t, out, 10)
}

func TestAssembleContextEmptyInputs(t *testing.T) {
	assert.Empty(t, AssembleContext(nil, 100))
	assert.Empty(t, AssembleContext([]Match{{Text: "x"}}, 0))
	assert.Empty(t, AssembleContext([]Match{{Text: "   "}}, 100))
}
