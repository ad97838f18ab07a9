package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms/openai"
)

// EmbedderConfig represents the configuration for an embedder.
type EmbedderConfig struct {
	Model   string
	APIKey  string
	BaseURL string // OpenAI-compatible endpoint, empty for api.openai.com
}

// Embedder turns query and chunk text into vectors for the article store.
type Embedder struct {
	Config EmbedderConfig
	client *openai.LLM
}

func NewEmbedderWithConfig(config EmbedderConfig) (*Embedder, error) {
	if config.Model == "" {
		config.Model = "text-embedding-3-small"
	}

	opts := []openai.Option{openai.WithEmbeddingModel(config.Model)}
	if config.APIKey != "" {
		opts = append(opts, openai.WithToken(config.APIKey))
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize embedder: %w", err)
	}

	return &Embedder{
		Config: config,
		client: client,
	}, nil
}

func (e *Embedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	return e.client.CreateEmbedding(ctx, texts)
}

// FlattenEmbeddings joins per-text vectors into one slice, used when a
// single query produced a single embedding.
func FlattenEmbeddings(embeddings [][]float32) []float32 {
	var flattened []float32
	for _, emb := range embeddings {
		flattened = append(flattened, emb...)
	}
	return flattened
}
