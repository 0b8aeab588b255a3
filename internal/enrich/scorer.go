package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"

	"GlobalPulse/internal/ports"
)

const (
	// ScoreMin and ScoreMax bound the intensity scale used by the poster.
	ScoreMin = 40
	ScoreMax = 100
	// ScoreDefault is used when the backend fails or returns nothing numeric.
	ScoreDefault = 60
)

var digitRun = regexp.MustCompile(`\d+`)

// Scorer rates the relative global significance of a story.
type Scorer struct {
	completer ports.Completer
	logger    *slog.Logger
}

var _ ports.ImportanceScorer = (*Scorer)(nil)

// NewScorer wires the completion backend; nil degrades to the default score.
func NewScorer(completer ports.Completer, logger *slog.Logger) *Scorer {
	return &Scorer{completer: completer, logger: logger}
}

// Score returns an importance value clamped to [ScoreMin, ScoreMax]. The
// first run of digits in the completion is taken as the answer.
func (s *Scorer) Score(ctx context.Context, headline, body string) int {
	if s.completer == nil {
		return ScoreDefault
	}

	out, err := s.completer.Complete(ctx, ports.CompletionRequest{
		System:    "You rate the global significance of news stories for a world-events poster.",
		Prompt:    fmt.Sprintf("Rate the global significance of this story on a scale from %d to %d. Reply with a number only.\n\nHeadline: %s\nBody: %s", ScoreMin, ScoreMax, headline, body),
		MaxTokens: 10,
	})
	if err != nil {
		s.debug("scoring degraded", "error", err)
		return ScoreDefault
	}

	raw := digitRun.FindString(out)
	if raw == "" {
		s.debug("score unparseable", "response", out)
		return ScoreDefault
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return ScoreDefault
	}
	return clampScore(value)
}

func clampScore(value int) int {
	if value < ScoreMin {
		return ScoreMin
	}
	if value > ScoreMax {
		return ScoreMax
	}
	return value
}

func (s *Scorer) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
