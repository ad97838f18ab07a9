package models

import "time"

// Article is one news item as returned by the news API. The JSON field
// names match the archive files written during ingestion.
type Article struct {
	URI         string    `json:"id"`
	Lang        string    `json:"lang"`
	DateTimePub time.Time `json:"dateTimePub"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
}

// Document is the unit handed to the processor and the vector store.
type Document struct {
	ID        string
	URL       string
	Title     string
	Content   string
	Lang      string
	Published time.Time
	Metadata  map[string]interface{}
}

type ProcessedDocument struct {
	Document
	Chunks []string
}

// ToDocument adapts an article for chunking and storage.
func (a Article) ToDocument() Document {
	return Document{
		ID:        a.URI,
		URL:       a.URL,
		Title:     a.Title,
		Content:   a.Body,
		Lang:      a.Lang,
		Published: a.DateTimePub,
		Metadata: map[string]interface{}{
			"lang":        a.Lang,
			"dateTimePub": a.DateTimePub,
		},
	}
}
