package screening

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type ClientConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RateLimit      float64 // requests per second
	MaxConcurrency int
}

// Client talks to a yente instance. All lookups go through a shared rate
// limiter so batch screening cannot hammer the search index.
type Client struct {
	config  ClientConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("yente base URL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid yente base URL: %v", err)
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 4
	}
	if config.MaxConcurrency == 0 {
		config.MaxConcurrency = 8
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}, nil
}

func New(baseURL string) (*Client, error) {
	return NewWithConfig(ClientConfig{BaseURL: baseURL})
}

// Search runs one query against /search/{dataset}.
func (c *Client) Search(ctx context.Context, query string, opts Options) (*SearchResponse, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if opts.Dataset == "" {
		opts.Dataset = "default"
	}
	if opts.Limit == 0 {
		opts.Limit = 10
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	searchURL := fmt.Sprintf("%s/search/%s", strings.TrimRight(c.config.BaseURL, "/"), url.PathEscape(opts.Dataset))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, err
	}

	params := req.URL.Query()
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(opts.Limit))
	if len(opts.Include) > 0 {
		params.Set("scope", strings.Join(opts.Include, ","))
	}
	if len(opts.Exclude) > 0 {
		params.Set("exclude", strings.Join(opts.Exclude, ","))
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yente request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("yente returned status %d for %q", resp.StatusCode, query)
	}

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode yente response: %w", err)
	}

	return &result, nil
}

// SearchMany screens names concurrently. A failed lookup never fails the
// batch: the name maps to an empty response carrying a warning, so callers
// always get an entry per input name.
func (c *Client) SearchMany(ctx context.Context, names []string, opts Options) map[string]*SearchResponse {
	results := make(map[string]*SearchResponse, len(names))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.MaxConcurrency)

	for _, name := range names {
		name := name
		g.Go(func() error {
			resp, err := c.Search(ctx, name, opts)
			if err != nil {
				resp = &SearchResponse{
					Results: []Entity{},
					Warning: fmt.Sprintf("screening unavailable for %q: %v", name, err),
				}
			}

			mu.Lock()
			results[name] = resp
			mu.Unlock()
			return nil
		})
	}

	// Workers report failures through warnings, never through errors.
	_ = g.Wait()

	return results
}
