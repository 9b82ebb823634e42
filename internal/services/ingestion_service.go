package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"nutrimacro/internal/config"
	"nutrimacro/internal/dataprocessing"
	"nutrimacro/internal/exporter"
	"nutrimacro/internal/infrastructure"
	"nutrimacro/internal/storage"
	"nutrimacro/pkg/contracts/domain"
)

// TracerName is the tracer used for pipeline spans
const TracerName = "nutrimacro.pipeline"

// Invocation outcomes recorded in metrics
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeFailure  = "failure"
)

// Processor runs one ingestion
type Processor interface {
	Process(ctx context.Context) (string, error)
}

// IngestionService downloads the dataset blob and stores per-diet averages
type IngestionService struct {
	storage  config.StorageConfig
	newStore storage.StoreFactory
	writer   *exporter.JSONResultWriter
	metrics  *infrastructure.PipelineMetrics
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewIngestionService creates the ingestion service. A nil factory uses the
// Azure SDK store and a nil metrics value disables metrics.
func NewIngestionService(cfg *config.Config, factory storage.StoreFactory, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *IngestionService {
	if factory == nil {
		factory = storage.NewStoreFromConfig
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &IngestionService{
		storage:  cfg.Storage,
		newStore: factory,
		writer:   exporter.NewJSONResultWriter(cfg.Paths.ResultsFile),
		metrics:  metrics,
		tracer:   otel.Tracer(TracerName),
		logger:   logger.With(slog.String("component", "ingestion")),
	}
}

// NotFoundMessage is returned when the dataset blob does not exist
func NotFoundMessage(blob, container string) string {
	return fmt.Sprintf("Blob '%s' not found in container '%s'. Upload it to Azurite and retry.", blob, container)
}

// Process runs the ingestion and returns the message for the caller. A
// missing blob is reported in the message, not as an error.
func (s *IngestionService) Process(ctx context.Context) (result string, err error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "ingestion.process",
		trace.WithAttributes(
			attribute.String("blob.container", s.storage.Container),
			attribute.String("blob.name", s.storage.Blob),
		))
	defer span.End()

	outcome := OutcomeFailure
	defer func() {
		s.metrics.RecordInvocation(ctx, outcome, time.Since(start))
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	connStr, err := s.storage.ConnectionString()
	if err != nil {
		return "", err
	}

	store, err := s.newStore(connStr, s.storage)
	if err != nil {
		return "", err
	}

	var exists bool
	err = s.stage(ctx, "ingestion.exists", func(ctx context.Context) error {
		exists, err = store.Exists(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	if !exists {
		outcome = OutcomeNotFound
		s.logger.WarnContext(ctx, "Dataset blob not found",
			slog.String("container", store.Container()),
			slog.String("blob", store.Name()))
		return NotFoundMessage(store.Name(), store.Container()), nil
	}

	var data []byte
	err = s.stage(ctx, "ingestion.download", func(ctx context.Context) error {
		data, err = store.Download(ctx)
		return err
	})
	if err != nil {
		return "", err
	}
	s.metrics.RecordDownload(ctx, len(data))

	var averages []domain.MacroAverage
	err = s.stage(ctx, "ingestion.aggregate", func(ctx context.Context) error {
		frame, err := dataprocessing.ParseCSVBytes(data)
		if err != nil {
			return err
		}
		averages, err = dataprocessing.AverageMacros(frame)
		return err
	})
	if err != nil {
		return "", err
	}

	err = s.stage(ctx, "ingestion.write", func(ctx context.Context) error {
		return s.writer.Write(averages)
	})
	if err != nil {
		return "", err
	}
	s.metrics.RecordGroups(ctx, len(averages))

	outcome = OutcomeSuccess
	s.logger.InfoContext(ctx, "Dataset processed",
		slog.Int("bytes", len(data)),
		slog.Int("diet_types", len(averages)),
		slog.String("output", s.writer.Path()),
		slog.Duration("duration", time.Since(start)))

	return config.SuccessMessage, nil
}

// stage runs fn inside a child span
func (s *IngestionService) stage(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(ctx); err != nil {
		infrastructure.RecordError(ctx, err)
		return err
	}
	return nil
}
