package dataprocessing

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	apperrors "nutrimacro/internal/errors"
	"nutrimacro/pkg/contracts/domain"
)

// group is the set of row indexes sharing a key
type group struct {
	key  string
	rows []int
}

// groupByFirstAppearance groups row indexes by key in the order keys first
// appear. Rows with an empty key are skipped.
func groupByFirstAppearance(keys []string) []group {
	index := make(map[string]int)
	var groups []group

	for row, key := range keys {
		if key == "" {
			continue
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{key: key})
		}
		groups[i].rows = append(groups[i].rows, row)
	}
	return groups
}

// meanOf averages the non-missing values at rows. ok is false when every
// value is missing.
func meanOf(values []float64, rows []int) (mean float64, ok bool) {
	present := make([]float64, 0, len(rows))
	for _, r := range rows {
		if !math.IsNaN(values[r]) {
			present = append(present, values[r])
		}
	}
	if len(present) == 0 {
		return math.NaN(), false
	}
	return stat.Mean(present, nil), true
}

// AverageMacros computes the mean protein, carbs and fat of every diet type.
// Diet types keep the order in which they first appear in the frame.
func AverageMacros(frame *Frame) ([]domain.MacroAverage, error) {
	diets, err := frame.Strings(domain.ColumnDietType)
	if err != nil {
		return nil, err
	}
	macros, err := frame.macros()
	if err != nil {
		return nil, err
	}

	groups := groupByFirstAppearance(diets)
	averages := make([]domain.MacroAverage, 0, len(groups))

	for _, g := range groups {
		means := make([]float64, len(domain.MacroColumns))
		for i, col := range domain.MacroColumns {
			mean, ok := meanOf(macros[i], g.rows)
			if !ok {
				return nil, apperrors.NewAggregationError(
					fmt.Sprintf("no %s values for diet type '%s'", col, g.key), nil).
					WithContext("rows", len(g.rows))
			}
			means[i] = mean
		}
		averages = append(averages, domain.MacroAverage{
			DietType: g.key,
			Protein:  means[0],
			Carbs:    means[1],
			Fat:      means[2],
		})
	}

	return averages, nil
}

// TopProteinPerDiet returns up to n rows per diet type with the highest
// protein. Rows come back in descending protein order across all diets;
// equal protein values keep their original row order and missing protein
// sorts last.
func TopProteinPerDiet(frame *Frame, n int) ([]domain.NutritionRecord, error) {
	if n <= 0 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("top-N limit must be positive, got %d", n), nil)
	}

	records, err := frame.Records()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if !b.HasProtein() {
			return a.HasProtein()
		}
		if !a.HasProtein() {
			return false
		}
		return a.Protein > b.Protein
	})

	taken := make(map[string]int)
	top := make([]domain.NutritionRecord, 0)
	for _, rec := range records {
		if rec.DietType == "" || taken[rec.DietType] >= n {
			continue
		}
		taken[rec.DietType]++
		top = append(top, rec)
	}
	return top, nil
}

// CountCuisines counts recipes per (diet type, cuisine type) pair, sorted by
// diet type then cuisine type. Pairs with a missing key are skipped.
func CountCuisines(frame *Frame) ([]domain.CuisineCount, error) {
	diets, err := frame.Strings(domain.ColumnDietType)
	if err != nil {
		return nil, err
	}
	cuisines, err := frame.Strings(domain.ColumnCuisineType)
	if err != nil {
		return nil, err
	}

	type pair struct{ diet, cuisine string }
	counts := make(map[pair]int)
	for i := range diets {
		if diets[i] == "" || cuisines[i] == "" {
			continue
		}
		counts[pair{diets[i], cuisines[i]}]++
	}

	out := make([]domain.CuisineCount, 0, len(counts))
	for p, c := range counts {
		out = append(out, domain.CuisineCount{DietType: p.diet, CuisineType: p.cuisine, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DietType != out[j].DietType {
			return out[i].DietType < out[j].DietType
		}
		return out[i].CuisineType < out[j].CuisineType
	})
	return out, nil
}

// MostCommonCuisines returns the most frequent cuisine of every diet type,
// ordered by diet type. Equal counts go to the cuisine that sorts first.
func MostCommonCuisines(frame *Frame) ([]domain.CuisineCount, error) {
	counts, err := CountCuisines(frame)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].DietType != counts[j].DietType {
			return counts[i].DietType < counts[j].DietType
		}
		return counts[i].Count > counts[j].Count
	})

	winners := make([]domain.CuisineCount, 0)
	for i, c := range counts {
		if i == 0 || c.DietType != counts[i-1].DietType {
			winners = append(winners, c)
		}
	}
	return winners, nil
}

// HighestProteinDiet returns the diet type with the highest mean protein.
// The first maximum in group order wins.
func HighestProteinDiet(averages []domain.MacroAverage) (string, error) {
	best := -1
	for i, avg := range averages {
		if math.IsNaN(avg.Protein) {
			continue
		}
		if best < 0 || avg.Protein > averages[best].Protein {
			best = i
		}
	}
	if best < 0 {
		return "", apperrors.NewAggregationError("no diet type has a protein average", nil)
	}
	return averages[best].DietType, nil
}
