package news

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/centinela-io/centinela/internal/models"
)

// Archive is the staging directory between download and ingestion: one
// indented JSON file per article, removed once the batch is stored.
type Archive struct {
	dir string
}

func NewArchive(dir string) (*Archive, error) {
	if dir == "" {
		return nil, fmt.Errorf("archive directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory %s: %w", dir, err)
	}
	return &Archive{dir: dir}, nil
}

func (a *Archive) Dir() string {
	return a.dir
}

// Save writes one article as <uri>.json. Articles without a URI cannot be
// keyed and are rejected.
func (a *Archive) Save(article models.Article) (string, error) {
	if article.URI == "" {
		return "", fmt.Errorf("article has no URI")
	}

	data, err := json.MarshalIndent(article, "", "    ")
	if err != nil {
		return "", err
	}

	path := filepath.Join(a.dir, article.URI+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save article %s: %w", article.URI, err)
	}
	return path, nil
}

// Load reads every archived article back.
func (a *Archive) Load() ([]models.Article, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive directory: %w", err)
	}

	var articles []models.Article
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(a.dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", entry.Name(), err)
		}

		var article models.Article
		if err := json.Unmarshal(data, &article); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", entry.Name(), err)
		}
		articles = append(articles, article)
	}

	return articles, nil
}

// Cleanup removes the staging directory and everything in it.
func (a *Archive) Cleanup() error {
	return os.RemoveAll(a.dir)
}
