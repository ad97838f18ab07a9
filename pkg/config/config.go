package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type LLMConfig struct {
	BaseURL     string  `yaml:"base_url"`
	Model       string  `yaml:"model"`
	APIKey      string  `yaml:"api_key"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
	Language    string  `yaml:"language"`
}

type EmbeddingConfig struct {
	Model string `yaml:"model"`
}

type DatabaseConfig struct {
	URL       string `yaml:"url"`
	TableName string `yaml:"table_name"`
	VectorDim int    `yaml:"vector_dim"`
	BatchSize int    `yaml:"batch_size"`
}

type NewsConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	Lang        string `yaml:"lang"`
	PageSize    int    `yaml:"page_size"`
	WindowDays  int    `yaml:"window_days"`
	DownloadDir string `yaml:"download_dir"`
}

type ScreeningConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Dataset        string  `yaml:"dataset"`
	Limit          int     `yaml:"limit"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxConcurrency int     `yaml:"max_concurrency"`
	RateLimit      float64 `yaml:"rate_limit"`
	OutputDir      string  `yaml:"output_dir"`
}

type NERConfig struct {
	BaseURL        string  `yaml:"base_url"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	ScoreThreshold float64 `yaml:"score_threshold"`
}

type ProcessorConfig struct {
	ChunkSize       int  `yaml:"chunk_size"`
	ChunkOverlap    int  `yaml:"chunk_overlap"`
	RemoveStopwords bool `yaml:"remove_stopwords"`
}

type UIConfig struct {
	Streaming bool   `yaml:"streaming"`
	Theme     string `yaml:"theme"`
}

type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Database  DatabaseConfig  `yaml:"database"`
	News      NewsConfig      `yaml:"news"`
	Screening ScreeningConfig `yaml:"screening"`
	NER       NERConfig       `yaml:"ner"`
	Processor ProcessorConfig `yaml:"processor"`
	UI        UIConfig        `yaml:"ui"`
}

func LoadConfig(path string) (*Config, error) {
	// If no path provided, try default locations
	if path == "" {
		locations := []string{
			"config.yaml",
			"config.yml",
			filepath.Join(os.Getenv("HOME"), ".config/centinela/config.yaml"),
			"/etc/centinela/config.yaml",
		}

		for _, loc := range locations {
			if _, err := os.Stat(loc); err == nil {
				path = loc
				break
			}
		}
	}

	if path == "" {
		return getDefaultConfig()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %v", err)
	}

	// Merge with environment variables
	mergeWithEnv(&config)

	// Apply defaults for unset values
	applyDefaults(&config)

	return &config, nil
}

func getDefaultConfig() (*Config, error) {
	config := &Config{}
	applyDefaults(config)
	mergeWithEnv(config)
	return config, nil
}

func applyDefaults(config *Config) {
	if config.LLM.Model == "" {
		config.LLM.Model = "gpt-4o-mini"
	}
	if config.LLM.MaxTokens == 0 {
		config.LLM.MaxTokens = 2000
	}
	if config.LLM.Temperature == 0 {
		config.LLM.Temperature = 0.7
	}
	if config.LLM.Language == "" {
		config.LLM.Language = "es"
	}

	if config.Embedding.Model == "" {
		config.Embedding.Model = "text-embedding-3-small"
	}

	if config.Database.TableName == "" {
		config.Database.TableName = "articles"
	}
	if config.Database.VectorDim == 0 {
		config.Database.VectorDim = 1536
	}
	if config.Database.BatchSize == 0 {
		config.Database.BatchSize = 50
	}

	if config.News.BaseURL == "" {
		config.News.BaseURL = "https://eventregistry.org"
	}
	if config.News.Lang == "" {
		config.News.Lang = "spa"
	}
	if config.News.PageSize == 0 {
		config.News.PageSize = 100
	}
	if config.News.WindowDays == 0 {
		config.News.WindowDays = 30
	}
	if config.News.DownloadDir == "" {
		config.News.DownloadDir = "download_news"
	}

	if config.Screening.BaseURL == "" {
		config.Screening.BaseURL = "http://localhost:8000"
	}
	if config.Screening.Dataset == "" {
		config.Screening.Dataset = "default"
	}
	if config.Screening.Limit == 0 {
		config.Screening.Limit = 5
	}
	if config.Screening.TimeoutSeconds == 0 {
		config.Screening.TimeoutSeconds = 5
	}
	if config.Screening.MaxConcurrency == 0 {
		config.Screening.MaxConcurrency = 8
	}
	if config.Screening.RateLimit == 0 {
		config.Screening.RateLimit = 4.0
	}
	if config.Screening.OutputDir == "" {
		config.Screening.OutputDir = "results_queries"
	}

	if config.NER.BaseURL == "" {
		config.NER.BaseURL = "http://localhost:8001"
	}
	if config.NER.TimeoutSeconds == 0 {
		config.NER.TimeoutSeconds = 30
	}
	if config.NER.ScoreThreshold == 0 {
		config.NER.ScoreThreshold = 0.5
	}

	if config.Processor.ChunkSize == 0 {
		config.Processor.ChunkSize = 1000
	}
	if config.Processor.ChunkOverlap == 0 {
		config.Processor.ChunkOverlap = 200
	}

	if config.UI.Theme == "" {
		config.UI.Theme = "default"
	}
}

func mergeWithEnv(config *Config) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.LLM.APIKey = key
	}
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		config.Database.URL = dbURL
	}
	if base := os.Getenv("YENTE_BASE_URL"); base != "" {
		config.Screening.BaseURL = base
	}
	if key := os.Getenv("NEWS_API_KEY"); key != "" {
		config.News.APIKey = key
	}
	if base := os.Getenv("NER_BASE_URL"); base != "" {
		config.NER.BaseURL = base
	}
}
