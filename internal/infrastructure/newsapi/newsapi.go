package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/source"
)

// Client talks to a NewsAPI-compatible endpoint. Both strategies share it.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a reusable client; httpClient may be nil.
func NewClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httpClient,
		logger:  logger,
	}
}

type apiArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

type apiResponse struct {
	Status   string       `json:"status"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Articles []apiArticle `json:"articles"`
}

func (c *Client) fetch(ctx context.Context, path string, params url.Values) ([]domain.RawArticle, error) {
	params.Set("apiKey", c.apiKey)
	endpoint := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %s", resp.Status)
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if payload.Status != "ok" {
		return nil, fmt.Errorf("newsapi error %s: %s", payload.Code, payload.Message)
	}

	articles := make([]domain.RawArticle, 0, len(payload.Articles))
	for _, art := range payload.Articles {
		publishedAt, _ := time.Parse(time.RFC3339, art.PublishedAt)
		articles = append(articles, domain.RawArticle{
			Title:       art.Title,
			Description: art.Description,
			Content:     art.Content,
			Source:      art.Source.Name,
			URL:         art.URL,
			ImageURL:    art.URLToImage,
			PublishedAt: publishedAt,
		})
	}

	c.debug("newsapi fetch done", "path", path, "count", len(articles))
	return articles, nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}

// EverythingStrategy collects articles matching a relevancy-sorted query
// over the full index.
type EverythingStrategy struct {
	client *Client
}

var _ source.Strategy = (*EverythingStrategy)(nil)

// NewEverythingStrategy wires the query-based collection variant.
func NewEverythingStrategy(client *Client) *EverythingStrategy {
	return &EverythingStrategy{client: client}
}

// Name identifies the strategy in the registry.
func (s *EverythingStrategy) Name() string { return "everything" }

// Fetch runs the /v2/everything query.
func (s *EverythingStrategy) Fetch(ctx context.Context, req source.Request) ([]domain.RawArticle, error) {
	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("language", "en")
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", fmt.Sprintf("%d", req.PageSize))
	return s.client.fetch(ctx, "/v2/everything", params)
}

// TopHeadlinesStrategy collects the current top headlines for a category
// and country.
type TopHeadlinesStrategy struct {
	client *Client
}

var _ source.Strategy = (*TopHeadlinesStrategy)(nil)

// NewTopHeadlinesStrategy wires the headline-based collection variant.
func NewTopHeadlinesStrategy(client *Client) *TopHeadlinesStrategy {
	return &TopHeadlinesStrategy{client: client}
}

// Name identifies the strategy in the registry.
func (s *TopHeadlinesStrategy) Name() string { return "top-headlines" }

// Fetch runs the /v2/top-headlines query.
func (s *TopHeadlinesStrategy) Fetch(ctx context.Context, req source.Request) ([]domain.RawArticle, error) {
	params := url.Values{}
	params.Set("category", req.Category)
	params.Set("country", req.Country)
	params.Set("pageSize", fmt.Sprintf("%d", req.PageSize))
	return s.client.fetch(ctx, "/v2/top-headlines", params)
}
