package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTestConfig keeps the test independent from any config file on the
// host.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()
	t.Setenv("YENTE_BASE_URL", baseURL)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "screening:\n  base_url: " + baseURL + "\n  timeout_seconds: 2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunReturnsErrorOnSearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "index unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	err := run(Config{
		Query:      "Vladimir Putin",
		OutputDir:  t.TempDir(),
		ConfigPath: writeTestConfig(t, server.URL),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestRunWritesResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results": [], "total": {"value": 0, "relation": "eq"}}`))
	}))
	defer server.Close()

	outputDir := t.TempDir()
	err := run(Config{
		Query:      "Vladimir Putin",
		Dataset:    "default",
		Limit:      1,
		OutputDir:  outputDir,
		ConfigPath: writeTestConfig(t, server.URL),
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".json", filepath.Ext(entries[0].Name()))
}
