package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"ActivityPublisher/internal/classify"
	"ActivityPublisher/internal/config"
	"ActivityPublisher/internal/cursor"
	"ActivityPublisher/internal/fetch"
	"ActivityPublisher/internal/infrastructure/archive"
	"ActivityPublisher/internal/infrastructure/contentapi"
	"ActivityPublisher/internal/infrastructure/feedpage"
	"ActivityPublisher/internal/infrastructure/oracle"
	"ActivityPublisher/internal/infrastructure/rss"
	infrascheduler "ActivityPublisher/internal/infrastructure/scheduler"
	"ActivityPublisher/internal/logging"
	"ActivityPublisher/internal/ports"
	"ActivityPublisher/internal/scanner"
	"ActivityPublisher/internal/transform"
	"ActivityPublisher/internal/usecase"
	"ActivityPublisher/internal/validate"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	pipeline  *usecase.Pipeline
	archiveDB *sql.DB
}

// New builds a runnable application instance. Only a failure to construct
// the engine's required collaborators is fatal.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store := cursor.NewFileStore(cfg.Cursor.Path, baseLogger.With("component", "cursor"))

	registry := scanner.NewRegistry()
	registry.Register(feedpage.NewScanner(nil, baseLogger.With("component", "scanner.feedpage")))
	registry.Register(rss.NewScanner(nil, baseLogger.With("component", "scanner.rss")))

	fetcher := fetch.NewFetcher(registry, cfg.Feeds, cfg.Fetch, baseLogger.With("component", "fetcher"))

	var classOracle ports.ClassificationOracle
	var transformOracle ports.TransformOracle
	if cfg.Oracle.APIKey != "" {
		client := oracle.NewClient(oracle.Config{
			BaseURL: cfg.Oracle.BaseURL,
			APIKey:  cfg.Oracle.APIKey,
			Model:   cfg.Oracle.Model,
			Timeout: cfg.Oracle.Timeout(),
		}, baseLogger.With("component", "oracle"))
		classOracle = client
		transformOracle = client
	}

	classifier := classify.NewClassifier(classOracle, baseLogger.With("component", "classifier"))
	transformers := transform.NewRegistry(transformOracle, nil)

	validator, err := validate.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	publisher := contentapi.NewPublisher(
		cfg.ContentAPI.BaseURL,
		&http.Client{Timeout: cfg.ContentAPI.Timeout()},
		baseLogger.With("component", "publisher"),
	)

	engine, err := usecase.NewEngine(usecase.EngineDeps{
		Classifier: classifier,
		Registry:   transformers,
		Validator:  validator,
		Publisher:  publisher,
		Logger:     baseLogger.With("component", "engine"),
	})
	if err != nil {
		return nil, fmt.Errorf("build engine: %w", err)
	}

	var resultArchive ports.ResultArchive
	var archiveDB *sql.DB
	if cfg.Archive.DSN != "" {
		db, err := archive.Open(context.Background(), cfg.Archive.DSN)
		if err != nil {
			baseLogger.Warn("archive disabled", "error", err)
		} else {
			archiveDB = db
			resultArchive = archive.NewPostgresArchive(db)
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Cursor:  store,
		Source:  fetcher,
		Engine:  engine,
		Archive: resultArchive,
		Logger:  baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline, archiveDB: archiveDB}, nil
}

// Run executes a single cycle, or recurring cycles when an interval is
// configured.
func (a *Application) Run(ctx context.Context) error {
	if a.archiveDB != nil {
		defer a.archiveDB.Close()
	}
	if a.pipeline == nil {
		return nil
	}

	interval := a.cfg.Scheduler.Duration()
	if interval <= 0 {
		return a.pipeline.RunCycle(ctx)
	}

	driver := infrascheduler.NewTickerScheduler(interval)
	sched := usecase.NewScheduler(driver, a.pipeline)
	if err := sched.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return sched.Stop(context.Background())
}
