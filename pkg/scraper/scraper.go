package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/centinela-io/centinela/internal/models"
)

type FetcherConfig struct {
	RateLimit float64 // requests per second
	Timeout   time.Duration
	UserAgent string
}

// Fetcher downloads a single article page and extracts its main text.
// Ingestion uses it when the news API only returned a truncated body.
type Fetcher struct {
	config  FetcherConfig
	client  *http.Client
	limiter *rate.Limiter
}

func NewWithConfig(config FetcherConfig) *Fetcher {
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.RateLimit == 0 {
		config.RateLimit = 2 // 2 requests per second by default
	}
	if config.UserAgent == "" {
		config.UserAgent = "centinela/1.0"
	}

	return &Fetcher{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
		// Shared across this fetcher's calls so batch enrichment stays
		// polite even when articles come from the same publisher.
		limiter: rate.NewLimiter(rate.Limit(config.RateLimit), 1),
	}
}

func New() *Fetcher {
	return NewWithConfig(FetcherConfig{})
}

func (f *Fetcher) cleanContent(content string) string {
	// Remove extra whitespace
	content = strings.Join(strings.Fields(content), " ")

	// Remove common noise
	noisePatterns := []string{
		"Cookie Policy",
		"Accept Cookies",
		"Privacy Policy",
		"Política de cookies",
		"Aceptar cookies",
		"Política de privacidad",
	}

	for _, pattern := range noisePatterns {
		content = strings.ReplaceAll(content, pattern, "")
	}

	return strings.TrimSpace(content)
}

func (f *Fetcher) extractMainContent(doc *goquery.Document) string {
	// Try to find the article body
	selectors := []string{
		"article",
		"main",
		".article-body",
		".content",
		"#content",
	}

	var content string
	for _, selector := range selectors {
		if selected := doc.Find(selector); selected.Length() > 0 {
			content = selected.Text()
			break
		}
	}

	// Fallback to body if no main content found
	if content == "" {
		content = doc.Find("body").Text()
	}

	return f.cleanContent(content)
}

// Fetch downloads one page and returns it as a document.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (models.Document, error) {
	var document models.Document

	parsed, err := url.Parse(pageURL)
	if err != nil || !parsed.IsAbs() {
		return document, fmt.Errorf("invalid article URL: %s", pageURL)
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return document, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return document, err
	}
	req.Header.Set("User-Agent", f.config.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return document, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return document, fmt.Errorf("received status code %d for URL: %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return document, err
	}

	document = models.Document{
		URL:     pageURL,
		Title:   strings.TrimSpace(doc.Find("title").Text()),
		Content: f.extractMainContent(doc),
		Metadata: map[string]interface{}{
			"time":         time.Now(),
			"contentType":  resp.Header.Get("Content-Type"),
			"lastModified": resp.Header.Get("Last-Modified"),
		},
	}

	return document, nil
}
