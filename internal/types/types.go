package types

import (
	"context"

	"github.com/centinela-io/centinela/internal/models"
)

// Core interfaces
type VectorStore interface {
	Store(ctx context.Context, docs []models.ProcessedDocument) error
	Query(ctx context.Context, embedding []float32, limit int) ([]models.Document, error)
	Close()
}

type Embedder interface {
	CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error)
}

type EntityExtractor interface {
	Extract(ctx context.Context, text string) (models.EntitySet, error)
}
