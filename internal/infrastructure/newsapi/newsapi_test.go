package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"GlobalPulse/internal/source"
)

const everythingPayload = `{
  "status": "ok",
  "articles": [
    {
      "source": {"name": "Example Wire"},
      "title": "Summit Ends After Marathon Talks - Example Wire",
      "description": "Negotiators left at dawn.",
      "content": "Full text here.",
      "url": "https://news.example.org/summit",
      "urlToImage": "https://news.example.org/summit.jpg",
      "publishedAt": "2026-08-31T05:00:00Z"
    }
  ]
}`

func TestEverythingStrategyFetch(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(everythingPayload))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", server.Client(), nil)
	strategy := NewEverythingStrategy(client)

	articles, err := strategy.Fetch(context.Background(), source.Request{
		Query:    "war OR crisis",
		PageSize: 15,
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotPath != "/v2/everything" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if got := gotQuery["q"]; len(got) != 1 || got[0] != "war OR crisis" {
		t.Fatalf("unexpected q param: %v", got)
	}
	if got := gotQuery["sortBy"]; len(got) != 1 || got[0] != "relevancy" {
		t.Fatalf("unexpected sortBy param: %v", got)
	}
	if got := gotQuery["apiKey"]; len(got) != 1 || got[0] != "test-key" {
		t.Fatalf("api key not sent: %v", got)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article, got %d", len(articles))
	}
	art := articles[0]
	if art.Title != "Summit Ends After Marathon Talks - Example Wire" {
		t.Fatalf("unexpected title: %q", art.Title)
	}
	if art.Source != "Example Wire" {
		t.Fatalf("unexpected source: %q", art.Source)
	}
	if art.ImageURL != "https://news.example.org/summit.jpg" {
		t.Fatalf("unexpected image url: %q", art.ImageURL)
	}
	if art.PublishedAt.IsZero() {
		t.Fatalf("publishedAt not parsed")
	}
}

func TestTopHeadlinesStrategyFetch(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"status":"ok","articles":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", server.Client(), nil)
	strategy := NewTopHeadlinesStrategy(client)

	if _, err := strategy.Fetch(context.Background(), source.Request{Category: "general", Country: "us", PageSize: 10}); err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if gotPath != "/v2/top-headlines" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if got := gotQuery["category"]; len(got) != 1 || got[0] != "general" {
		t.Fatalf("unexpected category param: %v", got)
	}
	if got := gotQuery["country"]; len(got) != 1 || got[0] != "us" {
		t.Fatalf("unexpected country param: %v", got)
	}
}

func TestFetchSurfacesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key", server.Client(), nil)
	strategy := NewEverythingStrategy(client)

	if _, err := strategy.Fetch(context.Background(), source.Request{Query: "q", PageSize: 5}); err == nil {
		t.Fatalf("expected error for non-ok status")
	}
}

func TestFetchSurfacesHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", server.Client(), nil)
	strategy := NewTopHeadlinesStrategy(client)

	if _, err := strategy.Fetch(context.Background(), source.Request{Category: "general", Country: "us", PageSize: 5}); err == nil {
		t.Fatalf("expected error for HTTP 429")
	}
}
