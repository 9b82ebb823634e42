package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrimacro/internal/config"
	"nutrimacro/internal/infrastructure"
	"nutrimacro/pkg/contracts/domain"
)

func TestPrintReport(t *testing.T) {
	report := &domain.AnalysisReport{
		RowCount: 3,
		Averages: []domain.MacroAverage{
			{DietType: "paleo", Protein: 40, Carbs: 5, Fat: 22.5},
		},
		TopProtein: []domain.NutritionRecord{
			{DietType: "paleo", CuisineType: "american", Protein: 50},
		},
		CommonCuisines:     []domain.CuisineCount{{DietType: "paleo", CuisineType: "american", Count: 2}},
		HighestProteinDiet: "paleo",
		MeanProteinToCarbs: 1.75,
		ChartFiles:         []string{"charts/avg_macros_bar.png"},
		WorkbookFile:       "charts/nutrition_analysis.xlsx",
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "Rows analysed:")
	assert.Contains(t, out, "40.00")
	assert.Contains(t, out, "american")
	assert.Contains(t, out, "Highest protein diet:")
	assert.Contains(t, out, "1.7500")
	assert.Contains(t, out, "charts/avg_macros_bar.png")
}

func TestRun_MissingInputLogsAndFails(t *testing.T) {
	infrastructure.ResetLoggerForTesting()
	defer infrastructure.ResetLoggerForTesting()

	dir := t.TempDir()
	logPath := filepath.Join(dir, "analyze.log")
	t.Setenv(config.ConfigFileEnv, "")
	t.Setenv("NUTRI_LOGGING_OUTPUT", "file")
	t.Setenv("NUTRI_LOGGING_FILE_PATH", logPath)

	var out bytes.Buffer
	code := run([]string{"-input", filepath.Join(dir, "missing.csv"), "-out", dir}, &out)

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Analysis failed")
}

func TestRun_BadFlag(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, run([]string{"-nope"}, &out))
}
