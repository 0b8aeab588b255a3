package source

import (
	"context"
	"testing"
	"time"

	"GlobalPulse/internal/config"
	"GlobalPulse/internal/domain"
)

type fakeStrategy struct {
	name string
	got  Request
	out  []domain.RawArticle
	err  error
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Fetch(_ context.Context, req Request) ([]domain.RawArticle, error) {
	f.got = req
	return f.out, f.err
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	everything := &fakeStrategy{name: "everything"}
	reg.Register(everything)
	reg.Register(&fakeStrategy{name: "top-headlines"})

	got, err := reg.Resolve("everything")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != everything {
		t.Fatalf("resolved wrong strategy: %v", got.Name())
	}

	if _, err := reg.Resolve("rss"); err == nil {
		t.Fatalf("expected error for unknown strategy")
	}
}

func TestStrategySourcePassesConfig(t *testing.T) {
	t.Parallel()

	strategy := &fakeStrategy{
		name: "everything",
		out:  []domain.RawArticle{{Title: "A Story"}},
	}
	reg := NewRegistry()
	reg.Register(strategy)

	src := NewStrategySource(reg, config.SourceConfig{
		Strategy: "everything",
		Query:    "war OR crisis",
		Category: "general",
		Country:  "us",
		PageSize: 15,
	}, nil)

	day := time.Date(2026, time.August, 31, 6, 0, 0, 0, time.UTC)
	articles, err := src.FetchDaily(context.Background(), day)
	if err != nil {
		t.Fatalf("FetchDaily: %v", err)
	}
	if len(articles) != 1 || articles[0].Title != "A Story" {
		t.Fatalf("unexpected articles: %+v", articles)
	}

	if !strategy.got.Day.Equal(day) {
		t.Fatalf("day not forwarded, got %v", strategy.got.Day)
	}
	if strategy.got.Query != "war OR crisis" || strategy.got.PageSize != 15 {
		t.Fatalf("config not forwarded: %+v", strategy.got)
	}
}

func TestStrategySourceUnknownStrategy(t *testing.T) {
	t.Parallel()

	src := NewStrategySource(NewRegistry(), config.SourceConfig{Strategy: "missing"}, nil)
	if _, err := src.FetchDaily(context.Background(), time.Now()); err == nil {
		t.Fatalf("expected error for unregistered strategy")
	}
}
