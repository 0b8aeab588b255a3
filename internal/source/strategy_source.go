package source

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"GlobalPulse/internal/config"
	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

// StrategySource implements ArticleSource via the registered strategy
// selected by configuration.
type StrategySource struct {
	registry *Registry
	cfg      config.SourceConfig
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the strategy registry with config-defined
// collection parameters.
func NewStrategySource(reg *Registry, cfg config.SourceConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		cfg:      cfg,
		logger:   log,
	}
}

// FetchDaily executes the configured strategy for the given day.
func (s *StrategySource) FetchDaily(ctx context.Context, day time.Time) ([]domain.RawArticle, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	strategy, err := s.registry.Resolve(s.cfg.Strategy)
	if err != nil {
		return nil, err
	}

	s.debug("fetch daily", "strategy", strategy.Name(), "day", day.Format("2006-01-02"))

	articles, err := strategy.Fetch(ctx, Request{
		Day:      day,
		Query:    s.cfg.Query,
		Category: s.cfg.Category,
		Country:  s.cfg.Country,
		PageSize: s.cfg.PageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", strategy.Name(), err)
	}

	s.debug("strategy produced articles", "strategy", strategy.Name(), "count", len(articles))
	return articles, nil
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
