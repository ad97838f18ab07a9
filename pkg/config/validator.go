package config

import (
	"fmt"
	"net/url"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate LLM config
	if c.LLM.MaxTokens < 1 || c.LLM.MaxTokens > 4096 {
		errors = append(errors, ValidationError{
			Field:   "llm.max_tokens",
			Message: "max_tokens must be between 1 and 4096",
		})
	}

	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		errors = append(errors, ValidationError{
			Field:   "llm.temperature",
			Message: "temperature must be between 0 and 2",
		})
	}

	if c.LLM.Language != "" && c.LLM.Language != "es" && c.LLM.Language != "en" {
		errors = append(errors, ValidationError{
			Field:   "llm.language",
			Message: "language must be 'es' or 'en'",
		})
	}

	// Validate Database config
	if c.Database.URL != "" {
		if _, err := url.Parse(c.Database.URL); err != nil {
			errors = append(errors, ValidationError{
				Field:   "database.url",
				Message: "invalid database URL",
			})
		}
	}

	if c.Database.VectorDim < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.vector_dim",
			Message: "vector_dim must be positive",
		})
	}

	if c.Database.BatchSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "database.batch_size",
			Message: "batch_size must be positive",
		})
	}

	// Validate Screening config
	if c.Screening.BaseURL == "" {
		errors = append(errors, ValidationError{
			Field:   "screening.base_url",
			Message: "yente base URL is required",
		})
	} else if _, err := url.Parse(c.Screening.BaseURL); err != nil {
		errors = append(errors, ValidationError{
			Field:   "screening.base_url",
			Message: "invalid yente base URL",
		})
	}

	if c.Screening.Limit < 1 {
		errors = append(errors, ValidationError{
			Field:   "screening.limit",
			Message: "limit must be positive",
		})
	}

	if c.Screening.MaxConcurrency < 1 {
		errors = append(errors, ValidationError{
			Field:   "screening.max_concurrency",
			Message: "max_concurrency must be positive",
		})
	}

	if c.Screening.RateLimit <= 0 {
		errors = append(errors, ValidationError{
			Field:   "screening.rate_limit",
			Message: "rate_limit must be positive",
		})
	}

	// Validate News config
	if c.News.PageSize < 1 || c.News.PageSize > 100 {
		errors = append(errors, ValidationError{
			Field:   "news.page_size",
			Message: "page_size must be between 1 and 100",
		})
	}

	if c.News.WindowDays < 1 {
		errors = append(errors, ValidationError{
			Field:   "news.window_days",
			Message: "window_days must be positive",
		})
	}

	// Validate NER config
	if c.NER.ScoreThreshold < 0 || c.NER.ScoreThreshold > 1 {
		errors = append(errors, ValidationError{
			Field:   "ner.score_threshold",
			Message: "score_threshold must be between 0 and 1",
		})
	}

	// Validate Processor config
	if c.Processor.ChunkSize < 1 {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_size",
			Message: "chunk_size must be positive",
		})
	}

	if c.Processor.ChunkOverlap < 0 || c.Processor.ChunkOverlap >= c.Processor.ChunkSize {
		errors = append(errors, ValidationError{
			Field:   "processor.chunk_overlap",
			Message: "chunk_overlap must be non-negative and less than chunk_size",
		})
	}

	return errors
}
