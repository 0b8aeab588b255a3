package ports

import (
	"context"
	"time"

	"GlobalPulse/internal/domain"
)

// ArticleSource pulls the day's candidate articles from upstream providers.
type ArticleSource interface {
	FetchDaily(ctx context.Context, day time.Time) ([]domain.RawArticle, error)
}

// CompletionRequest carries one prompt to the text-generation backend.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Completer is the free-text inference backend shared by the enrichment
// components. A single call, no retries; callers own their fallbacks.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Geocoder turns a free-text place name into coordinates. A lookup that
// finds nothing returns (nil, nil).
type Geocoder interface {
	Lookup(ctx context.Context, query string) (*domain.Place, error)
}

// BodyFetcher extracts readable article text from a source URL.
type BodyFetcher interface {
	FetchBody(ctx context.Context, url string) (string, error)
}

// Summarizer shortens text to a budget; recovery from backend failure is
// internal, so the result is always usable.
type Summarizer interface {
	Shorten(ctx context.Context, mode domain.SummaryMode, text string, maxLen int) string
}

// LocationResolver classifies article text geographically and resolves
// location strings to places.
type LocationResolver interface {
	Classify(ctx context.Context, headline, body string) domain.Classification
	Resolve(ctx context.Context, locationText string) *domain.Place
	KeywordLocation(text string) (string, bool)
}

// ImportanceScorer yields a bounded significance score for a story.
type ImportanceScorer interface {
	Score(ctx context.Context, headline, body string) int
}

// MoodExtractor picks one representative uppercase word for the batch,
// avoiding recently used words.
type MoodExtractor interface {
	Extract(ctx context.Context, stories []domain.Story, recentWords []string) string
}

// RecordStore persists daily records keyed by date and reads back recent
// mood words for repetition avoidance.
type RecordStore interface {
	SaveRecord(ctx context.Context, record domain.DailyRecord) error
	RecentMoodWords(ctx context.Context, limit int) ([]string, error)
}

// Archive writes the dated poster file and the overwritten latest pointer.
type Archive interface {
	WriteRecord(record domain.DailyRecord) error
}

// Notifier streams the daily digest to Telegram or other channels.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler controls when pipeline runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
