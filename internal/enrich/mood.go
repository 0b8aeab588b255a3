package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

var nonAlpha = regexp.MustCompile(`[^A-Z]`)

// MoodExtractor derives one representative uppercase word for the whole
// batch, sampling with an elevated temperature for day-to-day variety and
// excluding recently used words.
type MoodExtractor struct {
	completer   ports.Completer
	temperature float64
	logger      *slog.Logger
}

var _ ports.MoodExtractor = (*MoodExtractor)(nil)

// NewMoodExtractor wires the completion backend with the high-variety
// sampling temperature reserved for mood extraction.
func NewMoodExtractor(completer ports.Completer, temperature float64, logger *slog.Logger) *MoodExtractor {
	return &MoodExtractor{completer: completer, temperature: temperature, logger: logger}
}

// Extract returns a single word matching ^[A-Z]+$, domain.MoodFallback on
// any failure.
func (m *MoodExtractor) Extract(ctx context.Context, stories []domain.Story, recentWords []string) string {
	if m.completer == nil || len(stories) == 0 {
		return domain.MoodFallback
	}

	out, err := m.completer.Complete(ctx, ports.CompletionRequest{
		System:      "You choose a single striking word capturing the mood of a day's world news.",
		Prompt:      moodPrompt(stories, recentWords),
		Temperature: m.temperature,
		MaxTokens:   5,
	})
	if err != nil {
		m.debug("mood extraction degraded", "error", err)
		return domain.MoodFallback
	}

	word := normalizeMoodWord(out)
	if word == "" {
		m.debug("mood word empty after normalization", "response", out)
		return domain.MoodFallback
	}
	return word
}

func moodPrompt(stories []domain.Story, recentWords []string) string {
	var b strings.Builder
	b.WriteString("Today's stories:\n")
	for _, story := range stories {
		fmt.Fprintf(&b, "- %s: %s\n", story.Headline, story.Description)
	}
	b.WriteString("\nPick ONE distinctive English word that captures today's overall mood. Be specific to this day, not generic.")
	if len(recentWords) > 0 {
		fmt.Fprintf(&b, " Do not use any of these words: %s.", strings.Join(recentWords, ", "))
	}
	b.WriteString(" Reply with the single word only.")
	return b.String()
}

// normalizeMoodWord trims, uppercases and strips every non-alphabetic
// character from the response.
func normalizeMoodWord(response string) string {
	word := strings.ToUpper(strings.TrimSpace(response))
	return nonAlpha.ReplaceAllString(word, "")
}

func (m *MoodExtractor) debug(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Debug(msg, args...)
	}
}
