package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-io/centinela/internal/models"
	"github.com/centinela-io/centinela/pkg/store"
)

// staticEmbedder avoids hitting a real embedding API in DB tests. The
// vector leans on the first byte so "chunk" queries land near chunk rows.
type staticEmbedder struct {
	dim int
}

func (e staticEmbedder) CreateEmbedding(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, e.dim)
		if len(text) > 0 {
			vec[0] = float32(text[0]) / 255.0
		}
		out[i] = vec
	}
	return out, nil
}

func getTestConfig(t *testing.T) store.VectorStoreConfig {
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database test")
	}

	return store.VectorStoreConfig{
		ConnString: connString,
		TableName:  "test_articles",
		VectorDim:  8,
	}
}

func TestNewWithConfigRequiresEmbedder(t *testing.T) {
	_, err := store.NewWithConfig(store.VectorStoreConfig{ConnString: "postgresql://localhost/x"}, nil)
	assert.Error(t, err)
}

func TestVectorStore(t *testing.T) {
	config := getTestConfig(t)
	s, err := store.NewWithConfig(config, staticEmbedder{dim: config.VectorDim})
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()

	docs := []models.ProcessedDocument{
		{
			Document: models.Document{
				ID:        "art1",
				URL:       "https://example.com/noticia-1",
				Title:     "Noticia de prueba",
				Lang:      "spa",
				Published: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
				Metadata: map[string]interface{}{
					"source": "test",
				},
			},
			Chunks: []string{
				"Primer fragmento de la noticia",
				"Segundo fragmento de la noticia",
			},
		},
	}

	err = s.Store(ctx, docs)
	require.NoError(t, err)

	// Re-storing the same documents must not fail (upsert on id)
	err = s.Store(ctx, docs)
	require.NoError(t, err)

	embedder := staticEmbedder{dim: config.VectorDim}
	embedding, err := embedder.CreateEmbedding(ctx, []string{"Primer fragmento"})
	require.NoError(t, err)

	results, err := s.Query(ctx, embedding[0], 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, docs[0].URL, results[0].URL)
	assert.Equal(t, docs[0].Title, results[0].Title)
	assert.Equal(t, "spa", results[0].Lang)
}
