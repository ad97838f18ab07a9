package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fatih/color"

	cfgPkg "github.com/centinela-io/centinela/pkg/config"
	"github.com/centinela-io/centinela/pkg/screening"
)

type Config struct {
	Query      string
	Dataset    string
	Limit      int
	Include    string
	Exclude    string
	OutputDir  string
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

	flag.StringVar(&config.Query, "query", "", "Search term (required)")
	flag.StringVar(&config.Query, "q", "", "Search term (shorthand)")
	flag.StringVar(&config.Dataset, "dataset", "default", "yente dataset to query (e.g. 'default', 'sanctions', 'peps')")
	flag.StringVar(&config.Dataset, "d", "default", "yente dataset (shorthand)")
	flag.IntVar(&config.Limit, "limit", 1, "Maximum number of results to return")
	flag.IntVar(&config.Limit, "l", 1, "Maximum number of results (shorthand)")
	flag.StringVar(&config.Include, "include", "", "Comma-separated datasets to include in the scope")
	flag.StringVar(&config.Exclude, "exclude", "", "Comma-separated datasets to exclude from the scope")
	flag.StringVar(&config.OutputDir, "output", "", "Directory for result files (default from config)")
	flag.StringVar(&config.ConfigPath, "config", "", "Path to config file")
	flag.Parse()

	return config
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
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

	if config.OutputDir == "" {
		config.OutputDir = cfg.Screening.OutputDir
	}

	client, err := screening.NewWithConfig(screening.ClientConfig{
		BaseURL:   cfg.Screening.BaseURL,
		Timeout:   time.Duration(cfg.Screening.TimeoutSeconds) * time.Second,
		RateLimit: cfg.Screening.RateLimit,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize yente client: %v", err)
	}

	opts := screening.Options{
		Dataset: config.Dataset,
		Limit:   config.Limit,
		Include: splitList(config.Include),
		Exclude: splitList(config.Exclude),
	}

	color.Blue("Querying %s/search/%s for %q (limit %d)\n",
		cfg.Screening.BaseURL, opts.Dataset, config.Query, opts.Limit)

	resp, err := client.Search(context.Background(), config.Query, opts)
	if err != nil {
		color.Red("Search failed\n")
		return err
	}

	color.Green("✓ %d results (total %d, %s)\n",
		len(resp.Results), resp.Total.Value, resp.Total.Relation)

	for _, ent := range resp.Results {
		fmt.Printf("  %s  %-10s  %s (score %.2f)\n", ent.ID, ent.Schema, ent.Caption, ent.Score)
	}

	path, err := screening.WriteResults(config.OutputDir, config.Query, opts.Dataset, resp)
	if err != nil {
		return fmt.Errorf("failed to save results: %v", err)
	}

	color.Green("✓ Results saved to %s\n", path)
	return nil
}
