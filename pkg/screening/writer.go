package screening

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode"
)

// sanitizeQuery turns a free-text query into a filename-safe token:
// every non-alphanumeric rune becomes an underscore.
func sanitizeQuery(query string) string {
	out := make([]rune, 0, len(query))
	for _, r := range query {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

// WriteResults archives a search response as indented JSON under dir and
// returns the written path. Filenames carry the sanitized query, the
// dataset and a timestamp, so repeated runs never clobber each other.
func WriteResults(dir, query, dataset string, resp *SearchResponse) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("search_results_%s_%s_%s.json", sanitizeQuery(query), dataset, timestamp)
	path := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write results to %s: %w", path, err)
	}

	return path, nil
}
