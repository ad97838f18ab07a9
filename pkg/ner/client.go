package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/centinela-io/centinela/internal/models"
)

// Span is one labelled token group from the token-classification endpoint.
type Span struct {
	EntityGroup string  `json:"entity_group"`
	Score       float64 `json:"score"`
	Word        string  `json:"word"`
	Start       int     `json:"start"`
	End         int     `json:"end"`
}

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	ScoreThreshold float64
}

// Client calls the NER inference endpoint exposed by the model container.
// The wire format follows the HuggingFace token-classification schema with
// aggregated token groups.
type Client struct {
	config ClientConfig
	client *http.Client
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("NER base URL is required")
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.ScoreThreshold == 0 {
		config.ScoreThreshold = 0.5
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

// Extract labels the text and groups the spans into persons, organizations
// and misc. Other groups (locations, dates) are discarded, as are spans
// under the score threshold. Each group is deduplicated.
func (c *Client) Extract(ctx context.Context, text string) (models.EntitySet, error) {
	var set models.EntitySet

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return set, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(payload))
	if err != nil {
		return set, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return set, fmt.Errorf("NER request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return set, fmt.Errorf("NER endpoint returned status %d", resp.StatusCode)
	}

	var spans []Span
	if err := json.NewDecoder(resp.Body).Decode(&spans); err != nil {
		return set, fmt.Errorf("failed to decode NER response: %w", err)
	}

	var persons, orgs, misc []string
	for _, span := range spans {
		if span.Score < c.config.ScoreThreshold {
			continue
		}
		switch span.EntityGroup {
		case "PER":
			persons = append(persons, span.Word)
		case "ORG":
			orgs = append(orgs, span.Word)
		case "MISC":
			misc = append(misc, span.Word)
		}
	}

	set.Persons = Dedupe(persons)
	set.Organizations = Dedupe(orgs)
	set.Misc = Dedupe(misc)
	return set, nil
}
