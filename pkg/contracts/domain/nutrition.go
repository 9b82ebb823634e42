package domain

import "math"

// Column names of the All Diets dataset
const (
	ColumnDietType    = "Diet_type"
	ColumnCuisineType = "Cuisine_type"
	ColumnProtein     = "Protein(g)"
	ColumnCarbs       = "Carbs(g)"
	ColumnFat         = "Fat(g)"

	ColumnProteinToCarbs = "Protein_to_Carbs_ratio"
	ColumnCarbsToFat     = "Carbs_to_Fat_ratio"
)

// MacroColumns lists the macronutrient columns in output order
var MacroColumns = []string{ColumnProtein, ColumnCarbs, ColumnFat}

// RequiredColumns must be present in every input CSV
var RequiredColumns = []string{ColumnDietType, ColumnCuisineType, ColumnProtein, ColumnCarbs, ColumnFat}

// NutritionRecord is one recipe row. Missing numeric values are NaN and
// missing categories are empty strings.
type NutritionRecord struct {
	Row         int     `json:"-"`
	DietType    string  `json:"Diet_type"`
	CuisineType string  `json:"Cuisine_type"`
	Protein     float64 `json:"Protein(g)"`
	Carbs       float64 `json:"Carbs(g)"`
	Fat         float64 `json:"Fat(g)"`
}

// HasProtein reports whether the protein value is present
func (r NutritionRecord) HasProtein() bool {
	return !math.IsNaN(r.Protein)
}

// MacroAverage is one entry of the aggregate result
type MacroAverage struct {
	DietType string  `json:"Diet_type"`
	Protein  float64 `json:"Protein(g)"`
	Carbs    float64 `json:"Carbs(g)"`
	Fat      float64 `json:"Fat(g)"`
}

// Values returns protein, carbs and fat in MacroColumns order
func (m MacroAverage) Values() []float64 {
	return []float64{m.Protein, m.Carbs, m.Fat}
}

// CuisineCount is the number of recipes for a diet/cuisine pair
type CuisineCount struct {
	DietType    string `json:"Diet_type"`
	CuisineType string `json:"Cuisine_type"`
	Count       int    `json:"count"`
}

// AnalysisReport collects the results of a local analysis run
type AnalysisReport struct {
	RowCount           int               `json:"row_count"`
	Averages           []MacroAverage    `json:"averages"`
	TopProtein         []NutritionRecord `json:"top_protein"`
	CommonCuisines     []CuisineCount    `json:"common_cuisines"`
	HighestProteinDiet string            `json:"highest_protein_diet"`
	MeanProteinToCarbs float64           `json:"mean_protein_to_carbs"`
	MeanCarbsToFat     float64           `json:"mean_carbs_to_fat"`
	ChartFiles         []string          `json:"chart_files,omitempty"`
	WorkbookFile       string            `json:"workbook_file,omitempty"`
	CleanedFile        string            `json:"cleaned_file,omitempty"`
}
