// Package embedding encodes query text into the fixed-size vectors the
// index was populated with. The encoder talks to any OpenAI-compatible
// embeddings endpoint, which is how the sentence-transformer model backing
// the index is hosted.
package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/lawmate-ai/backend/config"
)

// Embedder encodes a single text into an embedding vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// embeddingClient is the slice of the go-openai client the encoder needs.
type embeddingClient interface {
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// Encoder implements Embedder against an OpenAI-compatible embeddings API.
type Encoder struct {
	client embeddingClient
	model  string
}

// NewEncoder creates an encoder from the embedding configuration.
func NewEncoder(cfg config.EmbeddingConfig) *Encoder {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = cfg.BaseURL
	return &Encoder{
		client: openai.NewClientWithConfig(clientCfg),
		model:  cfg.Model,
	}
}

// NewEncoderWithClient creates an encoder with an injected client, for tests.
func NewEncoderWithClient(client embeddingClient, model string) *Encoder {
	return &Encoder{client: client, model: model}
}

// Embed encodes text into a vector.
func (e *Encoder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("embedding response contained no vectors")
	}
	return resp.Data[0].Embedding, nil
}
