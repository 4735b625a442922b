package rag

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	logx "github.com/agent-swarm/server/pkg/logger"
)

// Embedder turns text into a fixed-length vector. The same embedder must be
// used to build the index and to embed queries; mixing schemes is a
// configuration error outside this package's control.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedder computes embeddings through the Gemini API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbedder(client *genai.Client, model string) *GeminiEmbedder {
	return &GeminiEmbedder{client: client, model: model}
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		logx.Error().Err(err).Str("model", e.model).Msg("embedding call failed")
		return nil, fmt.Errorf("embed content: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, fmt.Errorf("empty embedding returned for query")
	}
	return resp.Embeddings[0].Values, nil
}
