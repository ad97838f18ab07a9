package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmbedderWithConfig(t *testing.T) {
	emb, err := NewEmbedderWithConfig(EmbedderConfig{APIKey: "test-key"})
	require.NoError(t, err)
	assert.NotNil(t, emb)
	assert.Equal(t, "text-embedding-3-small", emb.Config.Model)
}

func TestFlattenEmbeddings(t *testing.T) {
	flat := FlattenEmbeddings([][]float32{{1, 2}, {3}, {4, 5}})
	assert.Equal(t, []float32{1, 2, 3, 4, 5}, flat)

	assert.Nil(t, FlattenEmbeddings(nil))
}
