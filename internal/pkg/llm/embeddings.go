package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Embedder maps texts to fixed-length vectors, same-length in/out.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// EmbeddingClient wraps an OpenAI-compatible embeddings endpoint.
type EmbeddingClient struct {
	Model  string
	client *openai.Client
}

func NewEmbeddingClient(apiKey string, model string, baseURL string) *EmbeddingClient {
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	config := openai.DefaultConfig(apiKey)
	config.BaseURL = baseURL

	return &EmbeddingClient{
		Model:  model,
		client: openai.NewClientWithConfig(config),
	}
}

func (c *EmbeddingClient) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	if c.client == nil {
		return nil, fmt.Errorf("embedding client not initialized")
	}

	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(c.Model),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding error: %w", err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embedding count mismatch: sent %d texts, got %d vectors", len(texts), len(resp.Data))
	}

	vectors := make([][]float32, len(resp.Data))
	for i, item := range resp.Data {
		vectors[i] = item.Embedding
	}

	return vectors, nil
}
