package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

const classifySystem = `You are a news geography analyst for a world-events poster.
Prioritize political, economic, diplomatic, environmental and regulatory news.
Given a headline and body, answer with exactly one of:
- SKIP for entertainment, sports, local crime, product launches or social-media trends
- GLOBAL when no specific place applies
- otherwise the single most relevant place as "City, Country"
Reply with that one line only.`

// Resolver derives a geographic place for a story: an advisory free-text
// classification first, the ordered keyword gazetteer as fallback, and a
// coordinate lookup for whatever location string survives.
type Resolver struct {
	completer ports.Completer
	geocoder  ports.Geocoder
	logger    *slog.Logger
}

var _ ports.LocationResolver = (*Resolver)(nil)

// NewResolver wires the classification backend and the geocoder; either
// may be nil and degrades to the no-location outcome.
func NewResolver(completer ports.Completer, geocoder ports.Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{completer: completer, geocoder: geocoder, logger: logger}
}

// Classify asks the backend for a Skip/Global/location verdict. Any backend
// failure degrades to Global so a bad classification never stops the run.
func (r *Resolver) Classify(ctx context.Context, headline, body string) domain.Classification {
	if r.completer == nil {
		return domain.Classification{Outcome: domain.ClassGlobal}
	}

	out, err := r.completer.Complete(ctx, ports.CompletionRequest{
		System:    classifySystem,
		Prompt:    fmt.Sprintf("Headline: %s\nBody: %s", headline, body),
		MaxTokens: 30,
	})
	if err != nil {
		r.debug("classification degraded", "error", err)
		return domain.Classification{Outcome: domain.ClassGlobal}
	}

	verdict := strings.TrimSpace(strings.TrimRight(firstLine(out), "."))
	switch strings.ToUpper(verdict) {
	case "", "GLOBAL":
		return domain.Classification{Outcome: domain.ClassGlobal}
	case "SKIP":
		return domain.Classification{Outcome: domain.ClassSkip}
	default:
		return domain.Classification{Outcome: domain.ClassLocation, Location: verdict}
	}
}

// Resolve performs a single coordinate lookup. Not-found and lookup errors
// both yield nil; absence of a place is a valid state, not an error.
func (r *Resolver) Resolve(ctx context.Context, locationText string) *domain.Place {
	if r.geocoder == nil || strings.TrimSpace(locationText) == "" {
		return nil
	}

	place, err := r.geocoder.Lookup(ctx, locationText)
	if err != nil {
		r.debug("geocode degraded", "location", locationText, "error", err)
		return nil
	}
	return place
}

func (r *Resolver) debug(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Debug(msg, args...)
	}
}
