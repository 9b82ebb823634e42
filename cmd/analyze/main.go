package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"nutrimacro/internal/config"
	"nutrimacro/internal/infrastructure"
	"nutrimacro/internal/services"
	"nutrimacro/pkg/contracts/domain"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run executes the analysis and returns the process exit code. Deferred
// cleanup runs before main exits.
func run(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	input := fs.String("input", "", "input CSV file (defaults to paths.input_csv)")
	outDir := fs.String("out", "", "output directory for charts and exports (defaults to paths.charts_dir)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.String("error", err.Error()))
		return 1
	}
	if *input != "" {
		cfg.Paths.InputCSV = *input
	}
	if *outDir != "" {
		cfg.Paths.ChartsDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", slog.String("error", err.Error()))
		return 1
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.EnsureTraceID(context.Background())

	report, err := services.NewAnalysisService(cfg.Paths, logger).Run(ctx, cfg.Paths.InputCSV)
	if err != nil {
		logger.ErrorContext(ctx, "Analysis failed",
			slog.String("input", cfg.Paths.InputCSV),
			slog.String("error", err.Error()))
		return 1
	}

	printReport(stdout, report)
	return 0
}

// printReport writes the human-readable summary of report to w
func printReport(w io.Writer, report *domain.AnalysisReport) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Rows analysed:\t%d\n\n", report.RowCount)

	fmt.Fprintln(tw, "Average macronutrients by diet type")
	fmt.Fprintln(tw, "Diet_type\tProtein(g)\tCarbs(g)\tFat(g)")
	for _, a := range report.Averages {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\n", a.DietType, a.Protein, a.Carbs, a.Fat)
	}

	fmt.Fprintf(tw, "\nTop %d protein-rich recipes per diet type\n", config.TopProteinLimit)
	fmt.Fprintln(tw, "Diet_type\tCuisine_type\tProtein(g)")
	for _, r := range report.TopProtein {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\n", r.DietType, r.CuisineType, r.Protein)
	}

	fmt.Fprintln(tw, "\nMost common cuisine per diet type")
	fmt.Fprintln(tw, "Diet_type\tCuisine_type\tCount")
	for _, c := range report.CommonCuisines {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.DietType, c.CuisineType, c.Count)
	}

	fmt.Fprintf(tw, "\nHighest protein diet:\t%s\n", report.HighestProteinDiet)
	fmt.Fprintf(tw, "Mean Protein_to_Carbs_ratio:\t%.4f\n", report.MeanProteinToCarbs)
	fmt.Fprintf(tw, "Mean Carbs_to_Fat_ratio:\t%.4f\n", report.MeanCarbsToFat)

	fmt.Fprintln(tw)
	for _, f := range report.ChartFiles {
		fmt.Fprintf(tw, "Chart:\t%s\n", f)
	}
	fmt.Fprintf(tw, "Workbook:\t%s\n", report.WorkbookFile)
	fmt.Fprintf(tw, "Cleaned dataset:\t%s\n", report.CleanedFile)
}
