package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

const (
	maxStories      = 5
	minTitleLen     = 30
	headlineBudget  = 50
	headlineMaxLen  = 60
	contentBudget   = 120
	descriptionMax  = 100
	countryCap      = 1
	moodHistoryDays = 7
	titleSeparator  = " - "
)

// palette is assigned cyclically by acceptance rank.
var palette = []string{"#ff2d55", "#ff6b35", "#ffb800", "#34c759", "#5ac8fa"}

// denylist drops low-value titles before enrichment; matched
// case-insensitively on word boundaries so "review" does not hit "preview".
var denylist = buildDenylist([]string{
	"review",
	"deal of the day",
	"best deals",
	"how to",
	"warhammer",
})

func buildDenylist(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(phrase)+`\b`))
	}
	return patterns
}

// ErrNoArticles reports a run that retrieved no usable source articles.
var ErrNoArticles = errors.New("no articles retrieved")

// PipelineDeps wires all driven adapters into the story pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Resolver   ports.LocationResolver
	Summarizer ports.Summarizer
	Scorer     ports.ImportanceScorer
	Mood       ports.MoodExtractor
	Store      ports.RecordStore
	Archive    ports.Archive
	Bodies     ports.BodyFetcher
	Notifier   ports.Notifier
	Logger     *slog.Logger
}

// Pipeline turns one day's raw articles into a persisted poster record.
type Pipeline struct {
	source     ports.ArticleSource
	resolver   ports.LocationResolver
	summarizer ports.Summarizer
	scorer     ports.ImportanceScorer
	mood       ports.MoodExtractor
	store      ports.RecordStore
	archive    ports.Archive
	bodies     ports.BodyFetcher
	notifier   ports.Notifier
	logger     *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:     deps.Source,
		resolver:   deps.Resolver,
		summarizer: deps.Summarizer,
		scorer:     deps.Scorer,
		mood:       deps.Mood,
		store:      deps.Store,
		archive:    deps.Archive,
		bodies:     deps.Bodies,
		notifier:   deps.Notifier,
		logger:     deps.Logger,
	}
}

// ProcessDay orchestrates filtering, enrichment, mood derivation and
// persistence for one calendar day. Enrichment failures degrade locally;
// only an unusable source or a failed record save abort the run.
func (p *Pipeline) ProcessDay(ctx context.Context, day time.Time) (domain.DailyRecord, error) {
	if p.source == nil {
		return domain.DailyRecord{}, fmt.Errorf("article source is not configured")
	}

	articles, err := p.source.FetchDaily(ctx, day)
	if err != nil {
		return domain.DailyRecord{}, fmt.Errorf("fetch daily: %w", err)
	}
	if len(articles) == 0 {
		return domain.DailyRecord{}, ErrNoArticles
	}

	recentWords := p.recentMoodWords(ctx)
	stories := p.selectStories(ctx, articles)

	word := domain.MoodFallback
	if p.mood != nil {
		word = p.mood.Extract(ctx, stories, recentWords)
	}

	record := domain.DailyRecord{
		Date:        day.Format("2006-01-02"),
		DisplayDate: strings.ToUpper(day.Format("Jan 2, 2006")),
		MoodWord:    word,
		Stories:     stories,
	}

	if p.store != nil {
		if err := p.store.SaveRecord(ctx, record); err != nil {
			return domain.DailyRecord{}, fmt.Errorf("save record %s: %w", record.Date, err)
		}
	}

	if p.archive != nil {
		if err := p.archive.WriteRecord(record); err != nil {
			p.warn("archive write failed", "date", record.Date, "error", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, buildDigestMessage(record)); err != nil {
			p.warn("digest publish failed", "error", err)
		}
	}

	p.info("day processed", "date", record.Date, "stories", len(record.Stories), "mood", record.MoodWord)
	return record, nil
}

// selectStories runs the prefilter and the per-article enrichment loop in
// source order until five stories are accepted.
func (p *Pipeline) selectStories(ctx context.Context, articles []domain.RawArticle) []domain.Story {
	tally := newCountryTally(countryCap)
	stories := make([]domain.Story, 0, maxStories)

	for _, article := range articles {
		if len(stories) >= maxStories {
			break
		}

		if !passesPrefilter(article.Title) {
			continue
		}

		cleanTitle := cleanedTitle(article.Title)
		content := p.articleContent(ctx, article)

		finalHeadline := cleanTitle
		if p.summarizer != nil && utf8.RuneCountInString(cleanTitle) > headlineBudget {
			finalHeadline = p.summarizer.Shorten(ctx, domain.ModeHeadline, cleanTitle, headlineMaxLen)
		}

		finalDesc := content
		if p.summarizer != nil && utf8.RuneCountInString(content) > contentBudget {
			finalDesc = p.summarizer.Shorten(ctx, domain.ModeDescription, content, descriptionMax)
		}

		var place *domain.Place
		if p.resolver != nil {
			verdict := p.resolver.Classify(ctx, finalHeadline, content)
			if verdict.Outcome == domain.ClassSkip {
				p.debug("article skipped by classifier", "title", cleanTitle)
				continue
			}
			if verdict.Outcome == domain.ClassLocation {
				place = p.resolver.Resolve(ctx, verdict.Location)
			}
			if place == nil {
				if location, ok := p.resolver.KeywordLocation(cleanTitle + " " + content); ok {
					place = p.resolver.Resolve(ctx, location)
				}
			}
		}

		if place != nil && !tally.Accept(place.Country()) {
			p.debug("article dropped by country gate", "title", cleanTitle, "country", place.Country())
			continue
		}

		intensity := 60
		if p.scorer != nil {
			intensity = p.scorer.Score(ctx, cleanTitle, content)
		}

		stories = append(stories, domain.Story{
			ID:           len(stories) + 1,
			Headline:     cleanTitle,
			Description:  finalDesc,
			MainLocation: place,
			Intensity:    intensity,
			Color:        palette[len(stories)%len(palette)],
			URL:          article.URL,
			ImageURL:     article.ImageURL,
		})
	}

	return stories
}

// articleContent picks description, then content, then a scraped body.
func (p *Pipeline) articleContent(ctx context.Context, article domain.RawArticle) string {
	if article.Description != "" {
		return article.Description
	}
	if article.Content != "" {
		return article.Content
	}
	if p.bodies != nil && article.URL != "" {
		body, err := p.bodies.FetchBody(ctx, article.URL)
		if err != nil {
			p.debug("body fetch degraded", "url", article.URL, "error", err)
			return ""
		}
		return body
	}
	return ""
}

func passesPrefilter(title string) bool {
	if utf8.RuneCountInString(title) < minTitleLen {
		return false
	}
	for _, pattern := range denylist {
		if pattern.MatchString(title) {
			return false
		}
	}
	return true
}

// cleanedTitle drops the trailing source attribution after " - ".
func cleanedTitle(title string) string {
	if idx := strings.Index(title, titleSeparator); idx >= 0 {
		return title[:idx]
	}
	return title
}

func (p *Pipeline) recentMoodWords(ctx context.Context) []string {
	if p.store == nil {
		return nil
	}
	words, err := p.store.RecentMoodWords(ctx, moodHistoryDays)
	if err != nil {
		p.warn("mood history degraded", "error", err)
		return nil
	}
	return words
}

func buildDigestMessage(record domain.DailyRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*GLOBAL PULSE — %s*\nMood: %s\n\n", record.DisplayDate, record.MoodWord)
	for _, story := range record.Stories {
		fmt.Fprintf(&b, "%d. %s (%d)\n", story.ID, story.Headline, story.Intensity)
		if story.MainLocation != nil {
			fmt.Fprintf(&b, "   %s\n", story.MainLocation.Name)
		}
	}
	return b.String()
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
