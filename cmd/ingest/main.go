package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/schollz/progressbar/v3"

	"github.com/centinela-io/centinela/internal/models"
	cfgPkg "github.com/centinela-io/centinela/pkg/config"
	"github.com/centinela-io/centinela/pkg/llm"
	"github.com/centinela-io/centinela/pkg/news"
	"github.com/centinela-io/centinela/pkg/processor"
	"github.com/centinela-io/centinela/pkg/scraper"
	"github.com/centinela-io/centinela/pkg/store"
)

// Bodies shorter than this are refetched from the article page.
const thinBodyThreshold = 280

type Config struct {
	Concept    string
	Page       int
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

	flag.StringVar(&config.Concept, "concept", "", "Concept to search news for, comma-separated keywords (required)")
	flag.IntVar(&config.Page, "page", 1, "Result page of the news search")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.Parse()

	return config
}

func getProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(color.BlueString(description)),
		progressbar.OptionSetItsString("items"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetRenderBlankState(true),
	)
}

func run(config Config) error {
	if strings.TrimSpace(config.Concept) == "" {
		flag.Usage()
		return fmt.Errorf("a concept is required")
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

	ctx := context.Background()

	client, err := news.NewWithConfig(news.ClientConfig{
		BaseURL:    cfg.News.BaseURL,
		APIKey:     cfg.News.APIKey,
		Lang:       cfg.News.Lang,
		PageSize:   cfg.News.PageSize,
		WindowDays: cfg.News.WindowDays,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize news client: %v", err)
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

	proc := processor.NewWithConfig(processor.ProcessorConfig{
		ChunkSize:          cfg.Processor.ChunkSize,
		ChunkOverlap:       cfg.Processor.ChunkOverlap,
		RemoveStopwords:    cfg.Processor.RemoveStopwords,
		PreserveLineBreaks: true,
	})

	color.Blue("\nFetching news about %q (page %d)\n", config.Concept, config.Page)

	articles, err := client.FetchArticles(ctx, config.Concept, config.Page)
	if err != nil {
		return fmt.Errorf("failed to fetch articles: %v", err)
	}
	if len(articles) == 0 {
		color.Yellow("No articles found for %q\n", config.Concept)
		return nil
	}
	color.Green("✓ Found %d articles about %s\n", len(articles), config.Concept)

	// Each run stages into its own directory so concurrent ingests
	// cannot trip over each other's cleanup.
	runID := uuid.NewString()[:8]
	archive, err := news.NewArchive(filepath.Join(cfg.News.DownloadDir, runID))
	if err != nil {
		return err
	}

	saveBar := getProgressBar(len(articles), "💾 Archiving articles...")
	saved := 0
	for _, article := range articles {
		if article.URI == "" {
			log.Printf("skipping article without ID (%s)", article.URL)
			saveBar.Add(1)
			continue
		}
		if _, err := archive.Save(article); err != nil {
			log.Printf("failed to archive article %s: %v", article.URI, err)
			saveBar.Add(1)
			continue
		}
		saved++
		saveBar.Add(1)
	}
	color.Green("\n✓ Archived %d articles under %s\n", saved, archive.Dir())

	stored, err := archive.Load()
	if err != nil {
		return err
	}

	// Refetch thin bodies from the article pages.
	fetcher := scraper.New()
	docs := make([]models.Document, 0, len(stored))
	for _, article := range stored {
		doc := article.ToDocument()
		if len(doc.Content) < thinBodyThreshold && doc.URL != "" {
			if page, err := fetcher.Fetch(ctx, doc.URL); err == nil && len(page.Content) > len(doc.Content) {
				doc.Content = page.Content
			}
		}
		docs = append(docs, doc)
	}

	processed, err := proc.Process(docs)
	if err != nil {
		return fmt.Errorf("failed to process articles: %v", err)
	}

	chunkCount := 0
	for _, doc := range processed {
		chunkCount += len(doc.Chunks)
	}
	color.Green("✓ Processed into %d chunks\n", chunkCount)

	storageBar := getProgressBar(len(processed), "💾 Storing in vector database...")
	batchSize := cfg.Database.BatchSize
	for i := 0; i < len(processed); i += batchSize {
		end := i + batchSize
		if end > len(processed) {
			end = len(processed)
		}
		batch := processed[i:end]

		if err := vectorStore.Store(ctx, batch); err != nil {
			return fmt.Errorf("failed to store batch: %v", err)
		}
		storageBar.Add(len(batch))
	}
	color.Green("\n✓ Storage complete\n")

	if err := archive.Cleanup(); err != nil {
		return fmt.Errorf("failed to clean up archive: %v", err)
	}
	color.Green("✓ Cleaned up %s\n", archive.Dir())

	return nil
}
