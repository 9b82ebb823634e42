package exporter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"nutrimacro/pkg/contracts/domain"
)

// Workbook sheet names
const (
	SheetAverages   = "Averages"
	SheetTopProtein = "TopProtein"
	SheetCuisines   = "Cuisines"
	SheetSummary    = "Summary"
)

// WorkbookExporter writes an analysis report as an Excel workbook
type WorkbookExporter struct {
	path string
}

// NewWorkbookExporter creates an exporter for path
func NewWorkbookExporter(path string) *WorkbookExporter {
	return &WorkbookExporter{path: path}
}

// Export writes every result table of report to its own sheet
func (e *WorkbookExporter) Export(report *domain.AnalysisReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetAverages); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	averages := make([][]interface{}, len(report.Averages))
	for i, a := range report.Averages {
		averages[i] = []interface{}{a.DietType, a.Protein, a.Carbs, a.Fat}
	}
	if err := writeTable(f, SheetAverages,
		[]string{domain.ColumnDietType, domain.ColumnProtein, domain.ColumnCarbs, domain.ColumnFat}, averages); err != nil {
		return err
	}

	top := make([][]interface{}, len(report.TopProtein))
	for i, r := range report.TopProtein {
		top[i] = []interface{}{r.Row, r.DietType, r.CuisineType, r.Protein, r.Carbs, r.Fat}
	}
	if err := writeTable(f, SheetTopProtein,
		[]string{"Row", domain.ColumnDietType, domain.ColumnCuisineType, domain.ColumnProtein, domain.ColumnCarbs, domain.ColumnFat}, top); err != nil {
		return err
	}

	cuisines := make([][]interface{}, len(report.CommonCuisines))
	for i, c := range report.CommonCuisines {
		cuisines[i] = []interface{}{c.DietType, c.CuisineType, c.Count}
	}
	if err := writeTable(f, SheetCuisines,
		[]string{domain.ColumnDietType, domain.ColumnCuisineType, "count"}, cuisines); err != nil {
		return err
	}

	summary := [][]interface{}{
		{"Rows", report.RowCount},
		{"Diet types", len(report.Averages)},
		{"Highest protein diet", report.HighestProteinDiet},
		{"Mean " + domain.ColumnProteinToCarbs, report.MeanProteinToCarbs},
		{"Mean " + domain.ColumnCarbsToFat, report.MeanCarbsToFat},
	}
	if err := writeTable(f, SheetSummary, []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// writeTable writes a header row and data rows to sheet, creating it if needed
func writeTable(f *excelize.File, sheet string, header []string, rows [][]interface{}) error {
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
		}
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}

	last, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", last, 18); err != nil {
		return fmt.Errorf("failed to size %s columns: %w", sheet, err)
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
