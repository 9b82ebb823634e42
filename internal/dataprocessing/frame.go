package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "nutrimacro/internal/errors"
	"nutrimacro/pkg/contracts/domain"
)

// MissingValues are the cell values loaded as missing
var MissingValues = []string{"", "NA", "N/A", "NaN", "nan", "null", "NULL"}

// Frame is an immutable table of nutrition rows. Every transformation
// returns a new Frame.
type Frame struct {
	df dataframe.DataFrame
}

// ParseCSV reads CSV content with a header row. A header without data rows
// gives an empty frame. Macro cells that are neither numeric nor one of
// MissingValues are a parsing error.
func ParseCSV(r io.Reader) (*Frame, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse CSV", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NewParsingError("failed to parse CSV", errors.New("no header row"))
	}

	header := records[0]
	for _, col := range domain.RequiredColumns {
		if !slices.Contains(header, col) {
			return nil, apperrors.NewParsingError(fmt.Sprintf("missing required column '%s'", col), nil).
				WithContext("columns", header)
		}
	}

	var df dataframe.DataFrame
	if len(records) == 1 {
		cols := make([]series.Series, len(header))
		for i, name := range header {
			cols[i] = series.New([]string{}, series.String, name)
		}
		df = dataframe.New(cols...)
	} else {
		df = dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
			dataframe.NaNValues(MissingValues),
		)
	}
	if df.Err != nil {
		return nil, apperrors.NewParsingError("failed to parse CSV", df.Err)
	}

	frame := &Frame{df: df}
	for _, col := range domain.MacroColumns {
		idx := slices.Index(header, col)
		values := make([]float64, len(records)-1)
		for row, rec := range records[1:] {
			values[row], err = parseMacro(rec[idx])
			if err != nil {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("non-numeric value %q in column '%s' at line %d", rec[idx], col, row+2), err).
					WithContext("column", col).
					WithContext("row", row)
			}
		}
		if frame, err = frame.WithFloatColumn(col, values); err != nil {
			return nil, apperrors.NewParsingError("failed to type column "+col, err)
		}
	}
	return frame, nil
}

// parseMacro converts one macro cell, mapping MissingValues to NaN
func parseMacro(raw string) (float64, error) {
	v := strings.TrimSpace(raw)
	if slices.Contains(MissingValues, v) {
		return math.NaN(), nil
	}
	return strconv.ParseFloat(v, 64)
}

// ParseCSVBytes parses in-memory CSV content
func ParseCSVBytes(data []byte) (*Frame, error) {
	return ParseCSV(bytes.NewReader(data))
}

// ReadCSVFile parses a CSV file from disk
func ReadCSVFile(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// Len returns the number of rows
func (f *Frame) Len() int {
	return f.df.Nrow()
}

// Names returns the column names in file order
func (f *Frame) Names() []string {
	return f.df.Names()
}

// HasColumn reports whether the column exists
func (f *Frame) HasColumn(name string) bool {
	for _, n := range f.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// DataFrame exposes the underlying gota frame
func (f *Frame) DataFrame() dataframe.DataFrame {
	return f.df
}

// Float returns a copy of a numeric column with NaN for missing values
func (f *Frame) Float(name string) ([]float64, error) {
	if !f.HasColumn(name) {
		return nil, apperrors.NewParsingError(fmt.Sprintf("unknown column '%s'", name), nil)
	}
	col := f.df.Col(name)
	values := col.Float()
	for i := range values {
		if col.Elem(i).IsNA() {
			values[i] = math.NaN()
		}
	}
	return values, nil
}

// Strings returns a categorical column with "" for missing values
func (f *Frame) Strings(name string) ([]string, error) {
	if !f.HasColumn(name) {
		return nil, apperrors.NewParsingError(fmt.Sprintf("unknown column '%s'", name), nil)
	}
	col := f.df.Col(name)
	values := col.Records()
	for i := range values {
		if col.Elem(i).IsNA() {
			values[i] = ""
		}
	}
	return values, nil
}

// NumericColumns returns the float-typed columns in file order
func (f *Frame) NumericColumns() []string {
	var names []string
	for _, n := range f.df.Names() {
		if f.df.Col(n).Type() == series.Float {
			names = append(names, n)
		}
	}
	return names
}

// WithFloatColumn returns a frame where name holds values, replacing an
// existing column or appending a new one.
func (f *Frame) WithFloatColumn(name string, values []float64) (*Frame, error) {
	if len(values) != f.Len() {
		return nil, fmt.Errorf("column %s has %d values, frame has %d rows", name, len(values), f.Len())
	}
	df := f.df.Mutate(series.New(values, series.Float, name))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to set column %s: %w", name, df.Err)
	}
	return &Frame{df: df}, nil
}

// Records converts the frame into nutrition records
func (f *Frame) Records() ([]domain.NutritionRecord, error) {
	diets, err := f.Strings(domain.ColumnDietType)
	if err != nil {
		return nil, err
	}
	cuisines, err := f.Strings(domain.ColumnCuisineType)
	if err != nil {
		return nil, err
	}
	macros, err := f.macros()
	if err != nil {
		return nil, err
	}

	records := make([]domain.NutritionRecord, f.Len())
	for i := range records {
		records[i] = domain.NutritionRecord{
			Row:         i,
			DietType:    diets[i],
			CuisineType: cuisines[i],
			Protein:     macros[0][i],
			Carbs:       macros[1][i],
			Fat:         macros[2][i],
		}
	}
	return records, nil
}

// macros returns the protein, carbs and fat columns
func (f *Frame) macros() ([][]float64, error) {
	out := make([][]float64, len(domain.MacroColumns))
	for i, col := range domain.MacroColumns {
		values, err := f.Float(col)
		if err != nil {
			return nil, err
		}
		out[i] = values
	}
	return out, nil
}
