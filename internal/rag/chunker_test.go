package rag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 20)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0])
}

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, SplitText("", 100, 20))
	assert.Nil(t, SplitText("   \n  ", 100, 20))
	assert.Nil(t, SplitText("anything", 0, 0))
}

func TestSplitTextRespectsSize(t *testing.T) {
	text := strings.Repeat("para one with several words here.\n\n", 30)
	chunks := SplitText(text, 200, 40)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		// A single word may exceed size; none do in this input.
		assert.LessOrEqual(t, len(c), 200)
	}
}

func TestSplitTextPrefersParagraphs(t *testing.T) {
	text := "first paragraph here.\n\nsecond paragraph here.\n\nthird paragraph here."
	chunks := SplitText(text, 30, 0)
	require.NotEmpty(t, chunks)
	for _, c := range chunks {
		assert.False(t, strings.HasPrefix(c, " "), "chunk should not start mid-word")
	}
	assert.Contains(t, chunks[0], "first paragraph")
}

func TestSplitTextLongParagraphSplitsAtWords(t *testing.T) {
	text := strings.Repeat("word ", 200)
	chunks := SplitText(text, 100, 0)
	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
		assert.NotContains(t, c, "wor d")
	}
}

func TestSplitTextOverlapCarriesTail(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta.\n\n", 20)
	chunks := SplitText(text, 120, 30)
	require.Greater(t, len(chunks), 1)

	// Each chunk after the first starts with text carried from its predecessor.
	for i := 1; i < len(chunks); i++ {
		head := chunks[i]
		if len(head) > 30 {
			head = head[:30]
		}
		assert.True(t, strings.Contains(chunks[i-1], strings.Split(head, "\n\n")[0]),
			"chunk %d should overlap its predecessor", i)
	}
}
