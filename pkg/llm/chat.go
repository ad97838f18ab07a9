package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/centinela-io/centinela/internal/models"
	"github.com/centinela-io/centinela/pkg/screening"
)

const (
	// maxCandidates caps how many yente results are shown to the model
	// when it picks a match.
	maxCandidates = 8
	// maxContextBytes clips the supporting context in match selection.
	maxContextBytes = 4000
)

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
	APIKey      string
	BaseURL     string // OpenAI-compatible endpoint, empty for api.openai.com
	Language    string // summary output language, "es" or "en"
}

// ChatEngine drives the RAG answer, the sanctions match selection and the
// record summaries through one model.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.Model == "" {
		config.Model = "gpt-4o-mini"
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return nil, fmt.Errorf("temperature must be between 0 and 2")
	}
	if config.MaxTokens < 0 {
		return nil, fmt.Errorf("max tokens cannot be negative")
	} else if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.Language == "" {
		config.Language = "es"
	}

	opts := []openai.Option{openai.WithModel(config.Model)}
	if config.APIKey != "" {
		opts = append(opts, openai.WithToken(config.APIKey))
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return &ChatEngine{
		config: config,
		llm:    model,
	}, nil
}

// Answer responds to the question using only the retrieved chunks.
func (ce *ChatEngine) Answer(ctx context.Context, question string, docs []models.Document) (string, error) {
	var contextBuilder strings.Builder
	for _, doc := range docs {
		contextBuilder.WriteString(fmt.Sprintf("• %s\n\n", doc.Content))
	}

	system := "Answer using only the provided context. If information is missing, say so; never invent. " +
		"Mention relevant people and organizations by full name when it appears."
	user := fmt.Sprintf("Question: %s\n\nContext:\n%s", question, contextBuilder.String())

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("chat error: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return response.Choices[0].Content, nil
}

type matchDecision struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// SelectMatch asks the model which yente candidate, if any, corresponds to
// the queried name given the surrounding context. It returns the full
// original candidate, or nil when none fits.
func (ce *ChatEngine) SelectMatch(ctx context.Context, name string, resp *screening.SearchResponse, contextText string) (*screening.Entity, error) {
	if resp == nil || len(resp.Results) == 0 {
		return nil, nil
	}

	cands := resp.Results
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}

	candJSON, err := json.Marshal(cands)
	if err != nil {
		return nil, err
	}

	contextText = clipToRuneBoundary(contextText, maxContextBytes)

	system := "You are a compliance analyst. Select the sanctions-database candidate that best corresponds " +
		"to the queried entity. Use your own judgement only when the context is not enough."
	user := fmt.Sprintf(
		"Queried entity: %s\n\nSupporting context:\n%s\n\nCandidates (JSON):\n%s\n\n"+
			"Instructions:\n"+
			"- Reply with a single JSON object of this exact shape:\n"+
			"  {\"id\": \"<CHOSEN_ID>\", \"reason\": \"<why>\"}\n"+
			"- If no candidate fits, reply: {\"id\": \"NONE\", \"reason\": \"...\"}\n",
		name, contextText, candJSON)

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens))
	if err != nil {
		return nil, fmt.Errorf("match selection error: %w", err)
	}
	if len(response.Choices) == 0 {
		return nil, nil
	}

	decision := parseMatchDecision(response.Choices[0].Content)
	if decision.ID == "" || decision.ID == "NONE" {
		return nil, nil
	}

	for i := range cands {
		if cands[i].ID == decision.ID {
			return &cands[i], nil
		}
	}
	return nil, nil
}

// clipToRuneBoundary truncates s to at most max bytes without splitting a
// multibyte rune.
func clipToRuneBoundary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}

// parseMatchDecision tolerates code fences and prose around the JSON.
func parseMatchDecision(text string) matchDecision {
	var decision matchDecision

	text = strings.TrimSpace(text)
	if start := strings.Index(text, "{"); start >= 0 {
		if end := strings.LastIndex(text, "}"); end > start {
			text = text[start : end+1]
		}
	}

	if err := json.Unmarshal([]byte(text), &decision); err != nil {
		return matchDecision{}
	}
	return decision
}

// Summarize writes a short analyst summary of one sanctions record. The
// topic label table is passed along so the model can read raw topic codes.
func (ce *ChatEngine) Summarize(ctx context.Context, name string, ent *screening.Entity) (string, error) {
	payload, err := json.Marshal(ent)
	if err != nil {
		return "", err
	}
	labels, err := json.MarshalIndent(screening.TopicLabels(), "", "  ")
	if err != nil {
		return "", err
	}

	system := "You are an analyst screening for criminals and their associates. " +
		"Write a brief, faithful, useful summary. Stay neutral; if data is missing, say so. Never invent."
	user := fmt.Sprintf(
		"Language: %s\nQueried entity: %s\n\n"+
			"Topic label reference (for interpreting sanction codes, usually in the 'topics' field):\n%s\n\n"+
			"Record (JSON):\n%s\n\n"+
			"Format instructions:\n"+
			"Produce a short, clear summary with the most relevant facts from the record, including when available: "+
			"the entity's full name, nationality, occupation, whether it is sanctioned (target=true) or not, "+
			"and the kind of sanction (usually under 'topics'). Add any other detail you consider relevant.\n",
		ce.config.Language, name, labels, payload)

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens))
	if err != nil {
		return "", fmt.Errorf("could not summarize %q: %w", name, err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}

	return response.Choices[0].Content, nil
}
