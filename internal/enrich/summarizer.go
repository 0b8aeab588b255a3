package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

// Summarizer shortens headlines and descriptions through the completion
// backend. One attempt per call; the deterministic truncation fallback is
// the recovery path.
type Summarizer struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ ports.Summarizer = (*Summarizer)(nil)

// NewSummarizer wires the completion backend; completer may be nil, in
// which case every call takes the fallback path.
func NewSummarizer(completer ports.Completer, logger *slog.Logger) *Summarizer {
	return &Summarizer{completer: completer, logger: logger}
}

// Shorten returns text fitting maxLen for the given mode. Headline mode
// results are uppercase.
func (s *Summarizer) Shorten(ctx context.Context, mode domain.SummaryMode, text string, maxLen int) string {
	if s.completer == nil {
		return truncateFallback(mode, text, maxLen)
	}

	out, err := s.completer.Complete(ctx, ports.CompletionRequest{
		System:    summarySystem(mode),
		Prompt:    summaryPrompt(mode, text, maxLen),
		MaxTokens: 120,
	})
	if err != nil {
		s.debug("summarizer fallback", "mode", string(mode), "error", err)
		return truncateFallback(mode, text, maxLen)
	}

	out = firstLine(out)
	if out == "" {
		return truncateFallback(mode, text, maxLen)
	}

	if mode == domain.ModeHeadline {
		out = strings.ToUpper(out)
	}

	return truncateRunes(out, maxLen)
}

func summarySystem(mode domain.SummaryMode) string {
	if mode == domain.ModeHeadline {
		return "You are a news poster editor. You compress headlines into short, impactful uppercase lines."
	}
	return "You are a news poster editor. You compress article text into one short, complete sentence."
}

func summaryPrompt(mode domain.SummaryMode, text string, maxLen int) string {
	if mode == domain.ModeHeadline {
		return fmt.Sprintf("Rewrite this headline in at most %d characters, uppercase, impactful tone. Reply with the headline only.\n\n%s", maxLen, text)
	}
	return fmt.Sprintf("Shorten this text to at most %d characters as one complete sentence. Reply with the sentence only.\n\n%s", maxLen, text)
}

// truncateFallback is the stated recovery: hard rune truncation, uppercased
// for headline mode. It must stay deterministic.
func truncateFallback(mode domain.SummaryMode, text string, maxLen int) string {
	out := truncateRunes(strings.TrimSpace(text), maxLen)
	if mode == domain.ModeHeadline {
		out = strings.ToUpper(out)
	}
	return out
}

func truncateRunes(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}

// firstLine trims the completion down to one quoted-noise-free line.
func firstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		text = text[:idx]
	}
	return strings.Trim(strings.TrimSpace(text), `"'`)
}

func (s *Summarizer) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
