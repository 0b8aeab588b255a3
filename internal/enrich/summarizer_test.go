package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

type stubCompleter struct {
	response string
	err      error
	requests []ports.CompletionRequest
}

func (s *stubCompleter) Complete(_ context.Context, req ports.CompletionRequest) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestShortenFallbackIsDeterministic(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(&stubCompleter{err: errors.New("backend down")}, nil)
	input := strings.Repeat("x", 80)

	first := s.Shorten(context.Background(), domain.ModeHeadline, input, 60)
	second := s.Shorten(context.Background(), domain.ModeHeadline, input, 60)

	if first != second {
		t.Fatalf("fallback must be deterministic: %q vs %q", first, second)
	}
	if len(first) != 60 {
		t.Fatalf("expected 60 chars, got %d", len(first))
	}
	if first != strings.Repeat("X", 60) {
		t.Fatalf("headline fallback must be uppercase truncation, got %q", first)
	}
}

func TestShortenNilCompleterUsesFallback(t *testing.T) {
	t.Parallel()

	s := NewSummarizer(nil, nil)

	got := s.Shorten(context.Background(), domain.ModeDescription, "a quiet day on the markets", 100)
	if got != "a quiet day on the markets" {
		t.Fatalf("description fallback must not change case: %q", got)
	}

	got = s.Shorten(context.Background(), domain.ModeDescription, strings.Repeat("y", 130), 100)
	if len(got) != 100 {
		t.Fatalf("expected truncation to 100, got %d", len(got))
	}
}

func TestShortenUppercasesHeadlineResult(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{response: "\"markets rally after vote\"\nsecond line ignored"}
	s := NewSummarizer(completer, nil)

	got := s.Shorten(context.Background(), domain.ModeHeadline, "some long original headline", 60)
	if got != "MARKETS RALLY AFTER VOTE" {
		t.Fatalf("unexpected headline: %q", got)
	}
}

func TestShortenTruncatesOverlongCompletion(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{response: strings.Repeat("z", 150)}
	s := NewSummarizer(completer, nil)

	got := s.Shorten(context.Background(), domain.ModeDescription, "body", 100)
	if len(got) != 100 {
		t.Fatalf("model overflow must be truncated to the budget, got %d", len(got))
	}
}

func TestShortenEmptyCompletionFallsBack(t *testing.T) {
	t.Parallel()

	completer := &stubCompleter{response: "  \n  "}
	s := NewSummarizer(completer, nil)

	got := s.Shorten(context.Background(), domain.ModeDescription, "original text", 100)
	if got != "original text" {
		t.Fatalf("empty completion must fall back to the original, got %q", got)
	}
}
