package dataprocessing

import (
	"math"

	"nutrimacro/pkg/contracts/domain"
)

// columnMean is the mean of the non-missing values, NaN if there are none
func columnMean(values []float64) float64 {
	rows := make([]int, len(values))
	for i := range rows {
		rows[i] = i
	}
	mean, _ := meanOf(values, rows)
	return mean
}

// mapNumeric applies fn to every numeric column
func mapNumeric(frame *Frame, fn func([]float64) []float64) (*Frame, error) {
	out := frame
	for _, name := range frame.NumericColumns() {
		values, err := out.Float(name)
		if err != nil {
			return nil, err
		}
		out, err = out.WithFloatColumn(name, fn(values))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// FillMissingWithMean replaces missing values in every numeric column with
// the mean of that column over the whole frame. A column with no values
// stays missing.
func FillMissingWithMean(frame *Frame) (*Frame, error) {
	return mapNumeric(frame, func(values []float64) []float64 {
		mean := columnMean(values)
		for i, v := range values {
			if math.IsNaN(v) {
				values[i] = mean
			}
		}
		return values
	})
}

// DeriveRatios adds the protein-to-carbs and carbs-to-fat columns. Division
// by zero yields ±Inf, or NaN for 0/0.
func DeriveRatios(frame *Frame) (*Frame, error) {
	macros, err := frame.macros()
	if err != nil {
		return nil, err
	}
	protein, carbs, fat := macros[0], macros[1], macros[2]

	proteinToCarbs := make([]float64, len(protein))
	carbsToFat := make([]float64, len(protein))
	for i := range protein {
		proteinToCarbs[i] = protein[i] / carbs[i]
		carbsToFat[i] = carbs[i] / fat[i]
	}

	out, err := frame.WithFloatColumn(domain.ColumnProteinToCarbs, proteinToCarbs)
	if err != nil {
		return nil, err
	}
	return out.WithFloatColumn(domain.ColumnCarbsToFat, carbsToFat)
}

// ReplaceInfinite turns ±Inf into missing values in every numeric column
func ReplaceInfinite(frame *Frame) (*Frame, error) {
	return mapNumeric(frame, func(values []float64) []float64 {
		for i, v := range values {
			if math.IsInf(v, 0) {
				values[i] = math.NaN()
			}
		}
		return values
	})
}

// CleanWithRatios runs derive, infinity removal and the second mean fill
func CleanWithRatios(frame *Frame) (*Frame, error) {
	derived, err := DeriveRatios(frame)
	if err != nil {
		return nil, err
	}
	finite, err := ReplaceInfinite(derived)
	if err != nil {
		return nil, err
	}
	return FillMissingWithMean(finite)
}
