package bootstrap

import (
	"context"
	"fmt"

	"github.com/mtb-io/mercury-ci/internal/config"
	"github.com/mtb-io/mercury-ci/internal/core/collection"
	"github.com/mtb-io/mercury-ci/internal/core/ports"
	"github.com/mtb-io/mercury-ci/internal/core/usecase"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/classify"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/content"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/entities"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/extractor"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/queue/nats"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/repository/postgres"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/resilience"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/storage/localfs"
	"github.com/mtb-io/mercury-ci/internal/infrastructure/tabular"
)

type App struct {
	Config config.Config

	Queue ports.MessageQueue

	Files     *collection.Files
	Briefings *collection.Briefings
	Reports   *collection.Reports

	IngestUC   ports.FileIngestor
	AnalyzeUC  ports.FileAnalyzer
	BriefingUC ports.BriefingGenerator
	ReportUC   ports.ReportGenerator
	Exporter   ports.ResultExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	blobs := postgres.NewBlobStore(db)
	if err := blobs.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.New(resilience.DefaultPolicy()),
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	classifier, err := classify.New()
	if err != nil {
		queue.Close()
		_ = db.Close()
		return nil, fmt.Errorf("load classifier rules: %w", err)
	}

	files := collection.NewFiles(blobs)
	briefings := collection.NewBriefings(blobs)
	reports := collection.NewReports(blobs)

	ingestUC := usecase.NewIngestFileUseCase(files, storage, extractor.NewService(), queue)
	analyzeUC := usecase.NewAnalyzeFileUseCase(files, entities.NewExtractor(), classifier, tabular.NewProfiler())
	briefingUC := usecase.NewGenerateBriefingUseCase(briefings, content.NewSource(cfg.BriefingSeed))
	reportUC := usecase.NewGenerateReportUseCase(reports)
	exporter := usecase.NewExportResultUseCase(files)

	return &App{
		Config: cfg,
		Queue:  queue,

		Files:     files,
		Briefings: briefings,
		Reports:   reports,

		IngestUC:   ingestUC,
		AnalyzeUC:  analyzeUC,
		BriefingUC: briefingUC,
		ReportUC:   reportUC,
		Exporter:   exporter,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
