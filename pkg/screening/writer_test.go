package screening

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"Vladimir Putin", "Vladimir_Putin"},
		{"acme s.a. (offshore)", "acme_s_a___offshore_"},
		{"ACME123", "ACME123"},
		{"José María", "José_María"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeQuery(tt.query))
		})
	}
}

func TestWriteResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")
	resp := sampleResponse()

	path, err := WriteResults(dir, "Vladimir Putin", "sanctions", &resp)
	require.NoError(t, err)

	name := filepath.Base(path)
	assert.Regexp(t, `^search_results_Vladimir_Putin_sanctions_\d{8}_\d{6}\.json$`, name)

	// The file round-trips back into the response
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var loaded SearchResponse
	require.NoError(t, json.Unmarshal(data, &loaded))
	require.Len(t, loaded.Results, 1)
	assert.Equal(t, "Q7747", loaded.Results[0].ID)
	assert.Equal(t, 1, loaded.Total.Value)
}

func TestWriteResultsCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	resp := SearchResponse{}

	_, err := WriteResults(dir, "acme", "default", &resp)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
