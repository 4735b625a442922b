package rag

import (
	"context"
	"fmt"

	logx "github.com/agent-swarm/server/pkg/logger"
)

// Retriever turns a query into an embedding, searches the vector index and
// returns up to k matches ordered by descending similarity. Callers must
// tolerate an empty result: an unavailable or empty index degrades to empty
// context rather than a failed run.
type Retriever struct {
	embedder Embedder
	index    Index
}

func NewRetriever(embedder Embedder, index Index) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns the top-k matches for the query. The error reports why
// retrieval was unavailable; the match slice is always safe to use and empty
// on any failure.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) ([]Match, error) {
	if r.index == nil {
		return nil, fmt.Errorf("vector index not configured")
	}

	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	matches, err := r.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("index search: %w", err)
	}

	logx.Debug().Int("k", k).Int("matches", len(matches)).Msg("retrieval complete")
	return matches, nil
}
