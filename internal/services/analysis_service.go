package services

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"

	"nutrimacro/internal/charts"
	"nutrimacro/internal/config"
	"nutrimacro/internal/dataprocessing"
	"nutrimacro/internal/exporter"
	"nutrimacro/pkg/contracts/domain"
)

// Local analysis artifacts written next to the charts
const (
	WorkbookFile = "nutrition_analysis.xlsx"
	CleanedFile  = "cleaned_diets.csv"
)

// AnalysisService runs the local analysis over a CSV file
type AnalysisService struct {
	outputDir string
	topN      int
	renderer  *charts.Renderer
	workbook  *exporter.WorkbookExporter
	csv       *exporter.CSVWriter
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewAnalysisService creates an analysis service writing into paths.ChartsDir
func NewAnalysisService(paths config.PathsConfig, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "analysis"))

	return &AnalysisService{
		outputDir: paths.ChartsDir,
		topN:      config.TopProteinLimit,
		renderer:  charts.NewRenderer(paths.ChartsDir, logger),
		workbook:  exporter.NewWorkbookExporter(filepath.Join(paths.ChartsDir, WorkbookFile)),
		csv:       exporter.NewCSVWriter(logger, true),
		tracer:    otel.Tracer(TracerName),
		logger:    logger,
	}
}

// Run loads csvPath, cleans it, computes every aggregate and writes the
// charts, the workbook and the cleaned dataset.
func (s *AnalysisService) Run(ctx context.Context, csvPath string) (*domain.AnalysisReport, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "analysis.run", trace.WithAttributes(attribute.String("input", csvPath)))
	defer span.End()

	frame, err := dataprocessing.ReadCSVFile(csvPath)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "Dataset loaded",
		slog.String("path", csvPath),
		slog.Int("rows", frame.Len()))

	filled, err := dataprocessing.FillMissingWithMean(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to fill missing values: %w", err)
	}

	averages, err := dataprocessing.AverageMacros(filled)
	if err != nil {
		return nil, err
	}

	top, err := dataprocessing.TopProteinPerDiet(filled, s.topN)
	if err != nil {
		return nil, err
	}

	cleaned, err := dataprocessing.CleanWithRatios(filled)
	if err != nil {
		return nil, fmt.Errorf("failed to derive ratios: %w", err)
	}

	cuisines, err := dataprocessing.MostCommonCuisines(cleaned)
	if err != nil {
		return nil, err
	}

	highest, err := dataprocessing.HighestProteinDiet(averages)
	if err != nil {
		return nil, err
	}

	report := &domain.AnalysisReport{
		RowCount:           frame.Len(),
		Averages:           averages,
		TopProtein:         top,
		CommonCuisines:     cuisines,
		HighestProteinDiet: highest,
	}
	if report.MeanProteinToCarbs, err = columnMean(cleaned, domain.ColumnProteinToCarbs); err != nil {
		return nil, err
	}
	if report.MeanCarbsToFat, err = columnMean(cleaned, domain.ColumnCarbsToFat); err != nil {
		return nil, err
	}

	if report.ChartFiles, err = s.renderer.RenderAll(averages, top); err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}

	report.WorkbookFile = filepath.Join(s.outputDir, WorkbookFile)
	if err := s.workbook.Export(report); err != nil {
		return nil, err
	}

	report.CleanedFile = filepath.Join(s.outputDir, CleanedFile)
	if err := s.csv.WriteFrame(report.CleanedFile, cleaned.DataFrame()); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Analysis complete",
		slog.Int("diet_types", len(averages)),
		slog.String("highest_protein_diet", highest),
		slog.Any("charts", report.ChartFiles),
		slog.Duration("duration", time.Since(start)))

	return report, nil
}

func columnMean(frame *dataprocessing.Frame, name string) (float64, error) {
	values, err := frame.Float(name)
	if err != nil {
		return 0, err
	}
	return stat.Mean(values, nil), nil
}
