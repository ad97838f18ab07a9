package news

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-io/centinela/internal/models"
)

func TestArchiveRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "download_news")

	archive, err := NewArchive(dir)
	require.NoError(t, err)

	article := models.Article{
		URI:         "8412345678",
		Lang:        "spa",
		DateTimePub: time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC),
		URL:         "https://example.com/noticia",
		Title:       "Una noticia",
		Body:        "Cuerpo de la noticia.",
	}

	path, err := archive.Save(article)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "8412345678.json"), path)

	loaded, err := archive.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, article, loaded[0])
}

func TestArchiveRejectsMissingURI(t *testing.T) {
	archive, err := NewArchive(t.TempDir())
	require.NoError(t, err)

	_, err = archive.Save(models.Article{Title: "sin id"})
	assert.Error(t, err)
}

func TestArchiveCleanup(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "download_news")

	archive, err := NewArchive(dir)
	require.NoError(t, err)

	_, err = archive.Save(models.Article{URI: "a1"})
	require.NoError(t, err)

	require.NoError(t, archive.Cleanup())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestArchiveLoadSkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	archive, err := NewArchive(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore me"), 0o644))
	_, err = archive.Save(models.Article{URI: "a1"})
	require.NoError(t, err)

	loaded, err := archive.Load()
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}
