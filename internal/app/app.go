package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"GlobalPulse/internal/config"
	"GlobalPulse/internal/enrich"
	"GlobalPulse/internal/infrastructure/geocode"
	"GlobalPulse/internal/infrastructure/llm"
	"GlobalPulse/internal/infrastructure/newsapi"
	"GlobalPulse/internal/infrastructure/scheduler"
	"GlobalPulse/internal/infrastructure/scrape"
	"GlobalPulse/internal/infrastructure/storage"
	"GlobalPulse/internal/infrastructure/telegram"
	"GlobalPulse/internal/logging"
	"GlobalPulse/internal/ports"
	"GlobalPulse/internal/source"
	"GlobalPulse/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	store    *storage.PostgresRepository
	db       *sql.DB
}

// New builds a runnable application instance. Adapters whose configuration
// is absent are left nil; the pipeline degrades around them.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	client := newsapi.NewClient(cfg.Source.BaseURL, cfg.Source.APIKey, nil, baseLogger.With("component", "newsapi"))
	registry := source.NewRegistry()
	registry.Register(newsapi.NewEverythingStrategy(client))
	registry.Register(newsapi.NewTopHeadlinesStrategy(client))
	articles := source.NewStrategySource(registry, cfg.Source, baseLogger.With("component", "source"))

	var completer ports.Completer
	if cfg.ChatGPT.APIKey != "" {
		completer = llm.NewChatGPTClient(cfg.ChatGPT)
	}

	geocoder := geocode.NewNominatimGeocoder(
		cfg.Geocoder.BaseURL,
		cfg.Geocoder.UserAgent,
		time.Duration(cfg.Geocoder.MinIntervalMS)*time.Millisecond,
		nil,
	)

	var store *storage.PostgresRepository
	var db *sql.DB
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		store = storage.NewPostgresRepository(db)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	deps := usecase.PipelineDeps{
		Source:     articles,
		Resolver:   enrich.NewResolver(completer, geocoder, baseLogger.With("component", "resolver")),
		Summarizer: enrich.NewSummarizer(completer, baseLogger.With("component", "summarizer")),
		Scorer:     enrich.NewScorer(completer, baseLogger.With("component", "scorer")),
		Mood:       enrich.NewMoodExtractor(completer, cfg.ChatGPT.MoodTemperature, baseLogger.With("component", "mood")),
		Archive:    storage.NewFileArchive(cfg.Archive.Dir),
		Bodies:     scrape.NewExtractor(&http.Client{Timeout: 15 * time.Second}),
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
	}
	if store != nil {
		deps.Store = store
	}

	return &Application{
		cfg:      cfg,
		logger:   baseLogger,
		pipeline: usecase.NewPipeline(deps),
		store:    store,
		db:       db,
	}, nil
}

// Run executes one pipeline run, or keeps running on the daily schedule
// when the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	if a.store != nil {
		if err := a.store.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	if a.cfg.Scheduler.Enabled {
		driver := scheduler.NewDailyScheduler(a.cfg.Scheduler.CronExpression)
		runner := usecase.NewScheduler(driver, a.pipeline, a.logger.With("component", "scheduler"))
		if err := runner.Start(ctx); err != nil {
			return fmt.Errorf("start scheduler: %w", err)
		}
		<-ctx.Done()
		return runner.Stop(context.Background())
	}

	now := time.Now().In(a.cfg.Scheduler.Location())
	_, err := a.pipeline.ProcessDay(ctx, now)
	return err
}

// Close releases long-lived resources.
func (a *Application) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
