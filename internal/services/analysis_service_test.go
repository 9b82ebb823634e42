package services

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nutrimacro/internal/config"
	apperrors "nutrimacro/internal/errors"
	"nutrimacro/internal/shared/testutil"
	"nutrimacro/pkg/contracts/domain"
)

func newTestAnalysis(t *testing.T) (*AnalysisService, string) {
	t.Helper()
	paths := config.Default().Paths
	paths.ChartsDir = filepath.Join(t.TempDir(), "charts")
	logger, _ := testutil.NewTestLogger(t)
	return NewAnalysisService(paths, logger), paths.ChartsDir
}

func TestAnalysisService_Run(t *testing.T) {
	svc, dir := newTestAnalysis(t)
	input := testutil.WriteCSV(t, "All_Diets.csv", testutil.SampleDietsCSV)

	report, err := svc.Run(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, 6, report.RowCount)
	require.Len(t, report.Averages, 3)
	assert.Equal(t, "keto", report.Averages[2].DietType)
	assert.InDelta(t, 24.0, report.Averages[2].Protein, 1e-9, "missing protein is filled with the column mean first")

	assert.Equal(t, "paleo", report.HighestProteinDiet)
	assert.Len(t, report.TopProtein, 6)
	assert.Equal(t, 2, report.TopProtein[0].Row)

	assert.Equal(t, []domain.CuisineCount{
		{DietType: "keto", CuisineType: "french", Count: 1},
		{DietType: "paleo", CuisineType: "american", Count: 2},
		{DietType: "vegan", CuisineType: "asian", Count: 1},
	}, report.CommonCuisines)

	assert.False(t, math.IsNaN(report.MeanProteinToCarbs))
	assert.False(t, math.IsInf(report.MeanProteinToCarbs, 0))

	require.Len(t, report.ChartFiles, 3)
	for _, p := range append(report.ChartFiles, report.WorkbookFile, report.CleanedFile) {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.NotZero(t, info.Size())
	}
	assert.Equal(t, filepath.Join(dir, WorkbookFile), report.WorkbookFile)
}

func TestAnalysisService_RunErrors(t *testing.T) {
	svc, _ := newTestAnalysis(t)

	_, err := svc.Run(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	input := testutil.WriteCSV(t, "bad.csv", "Diet_type,Protein(g)\nvegan,1\n")
	_, err = svc.Run(context.Background(), input)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}
