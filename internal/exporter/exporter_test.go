package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nutrimacro/pkg/contracts/domain"
)

func sampleAverages() []domain.MacroAverage {
	return []domain.MacroAverage{
		{DietType: "vegan", Protein: 20, Carbs: 30, Fat: 10},
		{DietType: "paleo", Protein: 40, Carbs: 5, Fat: 22.5},
	}
}

func TestJSONResultWriter_Write(t *testing.T) {
	path := filepath.Join(t.TempDir(), "simulated_nosql", "results.json")
	writer := NewJSONResultWriter(path)

	require.NoError(t, writer.Write(sampleAverages()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Diet_type":"vegan"`)
	assert.Contains(t, string(data), `"Protein(g)":20`)

	var decoded []domain.MacroAverage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sampleAverages(), decoded)
}

func TestJSONResultWriter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	writer := NewJSONResultWriter(path)

	require.NoError(t, writer.Write(sampleAverages()))
	require.NoError(t, writer.Write(sampleAverages()[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "paleo")

	require.NoError(t, writer.Write(nil))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestWorkbookExporter_Export(t *testing.T) {
	path := filepath.Join(t.TempDir(), "charts", "nutrition_analysis.xlsx")
	report := &domain.AnalysisReport{
		RowCount: 4,
		Averages: sampleAverages(),
		TopProtein: []domain.NutritionRecord{
			{Row: 3, DietType: "paleo", CuisineType: "american", Protein: 50, Carbs: 0, Fat: 25},
		},
		CommonCuisines:     []domain.CuisineCount{{DietType: "vegan", CuisineType: "asian", Count: 2}},
		HighestProteinDiet: "paleo",
	}

	require.NoError(t, NewWorkbookExporter(path).Export(report))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetAverages, SheetTopProtein, SheetCuisines, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetAverages)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Diet_type", "Protein(g)", "Carbs(g)", "Fat(g)"}, rows[0])
	assert.Equal(t, []string{"vegan", "20", "30", "10"}, rows[1])

	value, err := f.GetCellValue(SheetSummary, "B4")
	require.NoError(t, err)
	assert.Equal(t, "paleo", value)

	value, err = f.GetCellValue(SheetCuisines, "B2")
	require.NoError(t, err)
	assert.Equal(t, "asian", value)
}

func TestCSVWriter_WriteFrame(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"Diet_type", "Protein(g)"},
		{"vegan", "10"},
		{"paleo", "40"},
	})
	require.NoError(t, df.Err)

	path := filepath.Join(t.TempDir(), "out", "cleaned.csv")

	require.NoError(t, NewCSVWriter(nil, false).WriteFrame(path, df))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Diet_type,Protein(g)\n"))
	assert.Contains(t, string(data), "paleo")

	require.NoError(t, NewCSVWriter(nil, true).WriteFrame(path, df))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])
}
