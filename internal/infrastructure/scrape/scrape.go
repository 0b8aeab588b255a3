package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"GlobalPulse/internal/ports"
)

const maxBodyChars = 1200

// Extractor pulls readable paragraph text from an article page. Used only
// when the provider supplied neither description nor content.
type Extractor struct {
	httpClient *http.Client
}

var _ ports.BodyFetcher = (*Extractor)(nil)

// NewExtractor builds an extractor; httpClient may be nil.
func NewExtractor(httpClient *http.Client) *Extractor {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Extractor{httpClient: httpClient}
}

// FetchBody downloads the page and concatenates its substantial paragraphs,
// capped at maxBodyChars.
func (e *Extractor) FetchBody(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("load page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var b strings.Builder
	doc.Find("article p, main p, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		// Skip nav fragments, captions and the like.
		if len(text) < 60 {
			return true
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(text)
		return b.Len() < maxBodyChars
	})

	body := strings.TrimSpace(b.String())
	if body == "" {
		return "", fmt.Errorf("no readable content at %s", pageURL)
	}

	runes := []rune(body)
	if len(runes) > maxBodyChars {
		body = string(runes[:maxBodyChars])
	}
	return body, nil
}
