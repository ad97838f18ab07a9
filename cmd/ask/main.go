package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/centinela-io/centinela/internal/models"
	cfgPkg "github.com/centinela-io/centinela/pkg/config"
	"github.com/centinela-io/centinela/pkg/llm"
	"github.com/centinela-io/centinela/pkg/ner"
	"github.com/centinela-io/centinela/pkg/pipeline"
	"github.com/centinela-io/centinela/pkg/screening"
	"github.com/centinela-io/centinela/pkg/store"
)

type Config struct {
	Query      string
	NumDocs    int
	ConfigPath string
}

func main() {
	config := parseFlags()

	if err := run(config); err != nil {
		log.Fatal(err)
	}
}

func parseFlags() Config {
	var config Config

	flag.StringVar(&config.Query, "query", "", "Question to ask the model (required)")
	flag.IntVar(&config.NumDocs, "numdocs", 5, "Number of documents to retrieve from the article store")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.Parse()

	return config
}

func getSpinner(description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(color.CyanString(description)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config) error {
	if strings.TrimSpace(config.Query) == "" {
		flag.Usage()
		return fmt.Errorf("a query is required")
	}

	cfg, err := cfgPkg.LoadConfig(config.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		for _, e := range errs {
			color.Red("config: %v\n", e)
		}
		return fmt.Errorf("invalid configuration")
	}

	chatEngine, err := llm.NewWithConfig(llm.ChatConfig{
		Model:       cfg.LLM.Model,
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Language:    cfg.LLM.Language,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize chat engine: %v", err)
	}

	embedder, err := llm.NewEmbedderWithConfig(llm.EmbedderConfig{
		Model:  cfg.Embedding.Model,
		APIKey: cfg.LLM.APIKey,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedder: %v", err)
	}

	vectorStore, err := store.NewWithConfig(store.VectorStoreConfig{
		ConnString: cfg.Database.URL,
		TableName:  cfg.Database.TableName,
		VectorDim:  cfg.Database.VectorDim,
		BatchSize:  cfg.Database.BatchSize,
	}, embedder)
	if err != nil {
		return fmt.Errorf("failed to initialize vector store: %v", err)
	}
	defer vectorStore.Close()

	extractor, err := ner.NewWithConfig(ner.ClientConfig{
		BaseURL:        cfg.NER.BaseURL,
		Timeout:        time.Duration(cfg.NER.TimeoutSeconds) * time.Second,
		ScoreThreshold: cfg.NER.ScoreThreshold,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize NER client: %v", err)
	}

	screener, err := screening.NewWithConfig(screening.ClientConfig{
		BaseURL:        cfg.Screening.BaseURL,
		Timeout:        time.Duration(cfg.Screening.TimeoutSeconds) * time.Second,
		RateLimit:      cfg.Screening.RateLimit,
		MaxConcurrency: cfg.Screening.MaxConcurrency,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize yente client: %v", err)
	}

	p := pipeline.New(pipeline.Config{
		NumDocs: config.NumDocs,
		Screening: screening.Options{
			Dataset: cfg.Screening.Dataset,
			Limit:   cfg.Screening.Limit,
		},
	}, embedder, vectorStore, chatEngine, extractor, screener)

	spinner := getSpinner("🔍 Working...")
	defer spinner.Finish()

	headerPrint := color.New(color.FgCyan, color.Bold).PrintfFunc()
	entityPrint := color.New(color.FgYellow).PrintfFunc()

	events := pipeline.Events{
		OnStatus: func(msg string) {
			spinner.Describe(color.CyanString("🔍 " + msg))
		},
		OnAnswer: func(answer string, docs []models.Document) {
			spinner.Clear()
			headerPrint("\n=== Answer ===\n")
			fmt.Println(answer)
		},
		OnEntities: func(set models.EntitySet) {
			spinner.Clear()
			headerPrint("\n=== Entities (PERSON, ORG and MISC) ===\n")
			entityPrint("persons:       %s\n", strings.Join(set.Persons, ", "))
			entityPrint("organizations: %s\n", strings.Join(set.Organizations, ", "))
			entityPrint("misc:          %s\n", strings.Join(set.Misc, ", "))
		},
		OnOutcome: func(outcome pipeline.Outcome) {
			spinner.Clear()
			headerPrint("\n--- %s ---\n", outcome.Name)
			if outcome.Warning != "" {
				color.Yellow("%s\n", outcome.Warning)
			}
			if outcome.Matched {
				fmt.Println(outcome.Summary)
			} else if outcome.Warning == "" {
				fmt.Println("No candidate matches the context closely enough.")
			}
		},
	}

	if err := p.Ask(context.Background(), config.Query, events); err != nil {
		return err
	}

	return nil
}
