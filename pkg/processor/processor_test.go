package processor_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centinela-io/centinela/internal/models"
	"github.com/centinela-io/centinela/pkg/processor"
)

func TestProcessor_Process(t *testing.T) {
	config := processor.ProcessorConfig{
		ChunkSize:          50,
		ChunkOverlap:       10,
		MinChunkLength:     20,
		RemoveStopwords:    true,
		CustomStopwords:    []string{"documento"},
		PreserveLineBreaks: false,
	}
	p := processor.NewWithConfig(config)

	documents := []models.Document{
		{Content: "Este es un documento de prueba. Contiene varias frases para demostrar el troceado de texto."},
	}

	processedDocs, err := p.Process(documents)

	assert.NoError(t, err)
	assert.Len(t, processedDocs, 1)
	assert.NotEmpty(t, processedDocs[0].Chunks)
	assert.Contains(t, processedDocs[0].Chunks[0], "prueba")
	assert.NotContains(t, processedDocs[0].Chunks[0], "documento")
}

func TestProcessor_ChunkOverlap(t *testing.T) {
	config := processor.ProcessorConfig{
		ChunkSize:          80,
		ChunkOverlap:       20,
		MinChunkLength:     10,
		PreserveLineBreaks: true,
	}
	p := processor.NewWithConfig(config)

	var b strings.Builder
	for i := 0; i < 10; i++ {
		b.WriteString("Una frase más del artículo que estamos troceando. ")
	}

	processedDocs, err := p.Process([]models.Document{{Content: b.String()}})
	assert.NoError(t, err)
	assert.Len(t, processedDocs, 1)
	assert.Greater(t, len(processedDocs[0].Chunks), 1)

	for _, chunk := range processedDocs[0].Chunks {
		assert.LessOrEqual(t, len(chunk), config.ChunkSize+config.ChunkOverlap+80)
	}
}

func TestProcessor_EmptyContent(t *testing.T) {
	p := processor.NewWithConfig(processor.ProcessorConfig{})

	processedDocs, err := p.Process([]models.Document{{Content: ""}})
	assert.NoError(t, err)
	assert.Len(t, processedDocs, 1)
	assert.Empty(t, processedDocs[0].Chunks)
}
