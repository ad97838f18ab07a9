package pipeline

import (
	"context"
	"fmt"

	"github.com/centinela-io/centinela/internal/models"
	"github.com/centinela-io/centinela/internal/types"
	"github.com/centinela-io/centinela/pkg/llm"
	"github.com/centinela-io/centinela/pkg/screening"
)

// Chat is the slice of the chat engine the pipeline needs.
type Chat interface {
	Answer(ctx context.Context, question string, docs []models.Document) (string, error)
	SelectMatch(ctx context.Context, name string, resp *screening.SearchResponse, contextText string) (*screening.Entity, error)
	Summarize(ctx context.Context, name string, ent *screening.Entity) (string, error)
}

// Screener runs batch sanctions lookups.
type Screener interface {
	SearchMany(ctx context.Context, names []string, opts screening.Options) map[string]*screening.SearchResponse
}

// Outcome is the screening verdict for one extracted name.
type Outcome struct {
	Name    string            `json:"name"`
	Warning string            `json:"warning,omitempty"`
	Matched bool              `json:"matched"`
	Entity  *screening.Entity `json:"entity,omitempty"`
	Summary string            `json:"summary,omitempty"`
}

// Events receives intermediate results as the pipeline advances. Nil
// callbacks are skipped.
type Events struct {
	OnStatus   func(msg string)
	OnAnswer   func(answer string, docs []models.Document)
	OnEntities func(set models.EntitySet)
	OnOutcome  func(outcome Outcome)
}

func (e Events) status(format string, args ...interface{}) {
	if e.OnStatus != nil {
		e.OnStatus(fmt.Sprintf(format, args...))
	}
}

type Config struct {
	NumDocs   int
	Screening screening.Options
}

// Pipeline wires retrieval, answering, entity extraction and sanctions
// screening into the ask flow.
type Pipeline struct {
	config    Config
	embedder  types.Embedder
	store     types.VectorStore
	chat      Chat
	extractor types.EntityExtractor
	screener  Screener
}

func New(config Config, embedder types.Embedder, store types.VectorStore, chat Chat, extractor types.EntityExtractor, screener Screener) *Pipeline {
	if config.NumDocs == 0 {
		config.NumDocs = 5
	}
	if config.Screening.Limit == 0 {
		config.Screening.Limit = 5
	}

	return &Pipeline{
		config:    config,
		embedder:  embedder,
		store:     store,
		chat:      chat,
		extractor: extractor,
		screener:  screener,
	}
}

// Ask runs the full flow for one question. Per-entity screening failures
// degrade to warnings in the outcome; only retrieval, answering and
// extraction errors abort.
func (p *Pipeline) Ask(ctx context.Context, question string, events Events) error {
	events.status("retrieving %d documents", p.config.NumDocs)

	embeddings, err := p.embedder.CreateEmbedding(ctx, []string{question})
	if err != nil {
		return fmt.Errorf("failed to embed question: %w", err)
	}

	docs, err := p.store.Query(ctx, llm.FlattenEmbeddings(embeddings), p.config.NumDocs)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}

	events.status("generating answer")
	answer, err := p.chat.Answer(ctx, question, docs)
	if err != nil {
		return err
	}
	if events.OnAnswer != nil {
		events.OnAnswer(answer, docs)
	}

	events.status("extracting entities")
	entities, err := p.extractor.Extract(ctx, answer)
	if err != nil {
		return fmt.Errorf("failed to extract entities: %w", err)
	}
	if events.OnEntities != nil {
		events.OnEntities(entities)
	}

	if entities.Empty() {
		events.status("no PERSON/ORG entities detected in the answer")
		return nil
	}

	names := entities.All()
	events.status("screening %d entities", len(names))
	results := p.screener.SearchMany(ctx, names, p.config.Screening)

	decisionContext := fmt.Sprintf("User question: %s\nAnswer: %s", question, answer)

	for _, name := range names {
		outcome := Outcome{Name: name}

		resp := results[name]
		if resp == nil {
			resp = &screening.SearchResponse{}
		}
		outcome.Warning = resp.Warning

		chosen, err := p.chat.SelectMatch(ctx, name, resp, decisionContext)
		if err != nil {
			outcome.Warning = fmt.Sprintf("match selection failed for %q: %v", name, err)
		} else if chosen != nil {
			outcome.Matched = true
			outcome.Entity = chosen

			summary, err := p.chat.Summarize(ctx, name, chosen)
			if err != nil {
				outcome.Warning = err.Error()
			} else {
				outcome.Summary = summary
			}
		}

		if events.OnOutcome != nil {
			events.OnOutcome(outcome)
		}
	}

	return nil
}
