package news

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/centinela-io/centinela/internal/models"
)

const articlesPath = "/api/v1/article/getArticles"

type ClientConfig struct {
	BaseURL    string
	APIKey     string
	Lang       string
	PageSize   int
	WindowDays int
	Timeout    time.Duration
}

// Client pulls articles from an Event Registry-compatible news API.
type Client struct {
	config ClientConfig
	client *http.Client
}

func NewWithConfig(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		config.BaseURL = "https://eventregistry.org"
	}
	if config.APIKey == "" {
		return nil, fmt.Errorf("news API key is required")
	}
	if config.Lang == "" {
		config.Lang = "spa"
	}
	if config.PageSize == 0 {
		config.PageSize = 100
	}
	if config.WindowDays == 0 {
		// The free API tier only serves the last month.
		config.WindowDays = 30
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &Client{
		config: config,
		client: &http.Client{
			Timeout: config.Timeout,
		},
	}, nil
}

type articlesRequest struct {
	Action        string   `json:"action"`
	Keyword       []string `json:"keyword"`
	KeywordOper   string   `json:"keywordOper"`
	Lang          string   `json:"lang"`
	DateStart     string   `json:"dateStart"`
	DateEnd       string   `json:"dateEnd"`
	ArticlesPage  int      `json:"articlesPage"`
	ArticlesCount int      `json:"articlesCount"`
	ResultType    string   `json:"resultType"`
	APIKey        string   `json:"apiKey"`
}

type apiArticle struct {
	URI         string `json:"uri"`
	Lang        string `json:"lang"`
	DateTimePub string `json:"dateTimePub"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Body        string `json:"body"`
}

type articlesResponse struct {
	Articles struct {
		Results      []apiArticle `json:"results"`
		TotalResults int          `json:"totalResults"`
		Page         int          `json:"page"`
		Pages        int          `json:"pages"`
	} `json:"articles"`
	Error string `json:"error"`
}

// FetchArticles returns one page of recent articles matching the concept.
// The concept may hold several comma-separated keywords.
func (c *Client) FetchArticles(ctx context.Context, concept string, page int) ([]models.Article, error) {
	if strings.TrimSpace(concept) == "" {
		return nil, fmt.Errorf("concept must not be empty")
	}
	if page < 1 {
		page = 1
	}

	var keywords []string
	for _, kw := range strings.Split(concept, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}

	now := time.Now()
	reqBody := articlesRequest{
		Action:        "getArticles",
		Keyword:       keywords,
		KeywordOper:   "or",
		Lang:          c.config.Lang,
		DateStart:     now.AddDate(0, 0, -c.config.WindowDays).Format("2006-01-02"),
		DateEnd:       now.Format("2006-01-02"),
		ArticlesPage:  page,
		ArticlesCount: c.config.PageSize,
		ResultType:    "articles",
		APIKey:        c.config.APIKey,
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(c.config.BaseURL, "/") + articlesPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("news API returned status %d", resp.StatusCode)
	}

	var result articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode news response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("news API error: %s", result.Error)
	}

	articles := make([]models.Article, 0, len(result.Articles.Results))
	for _, a := range result.Articles.Results {
		articles = append(articles, models.Article{
			URI:         a.URI,
			Lang:        a.Lang,
			DateTimePub: parsePubTime(a.DateTimePub),
			URL:         a.URL,
			Title:       a.Title,
			Body:        a.Body,
		})
	}

	return articles, nil
}

func parsePubTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
