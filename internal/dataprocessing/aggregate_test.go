package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "nutrimacro/internal/errors"
	"nutrimacro/internal/shared/testutil"
	"nutrimacro/pkg/contracts/domain"
)

func TestAverageMacros(t *testing.T) {
	frame := mustParse(t, testutil.CSV(
		"vegan,A,asian,10,20,5,d",
		"vegan,B,asian,30,40,15,d",
	))

	averages, err := AverageMacros(frame)
	require.NoError(t, err)
	require.Len(t, averages, 1)
	assert.Equal(t, domain.MacroAverage{DietType: "vegan", Protein: 20, Carbs: 30, Fat: 10}, averages[0])
}

func TestAverageMacros_GroupOrderAndMissing(t *testing.T) {
	frame := mustParse(t, testutil.SampleDietsCSV+",X,thai,100,100,100,d\n")

	averages, err := AverageMacros(frame)
	require.NoError(t, err)
	require.Len(t, averages, 3, "rows without a diet type must not form a group")

	assert.Equal(t, "paleo", averages[0].DietType)
	assert.InDelta(t, 40.0, averages[0].Protein, 1e-9)
	assert.InDelta(t, 5.0, averages[0].Carbs, 1e-9)
	assert.InDelta(t, 22.5, averages[0].Fat, 1e-9)

	assert.Equal(t, "vegan", averages[1].DietType)

	assert.Equal(t, "keto", averages[2].DietType)
	assert.InDelta(t, 20.0, averages[2].Protein, 1e-9, "missing protein is skipped")
	assert.InDelta(t, 3.0, averages[2].Carbs, 1e-9)
}

func TestAverageMacros_AllMissingGroup(t *testing.T) {
	frame := mustParse(t, testutil.CSV(
		"vegan,A,asian,10,20,5,d",
		"keto,B,french,,4,30,d",
	))

	_, err := AverageMacros(frame)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeAggregation))
	assert.Contains(t, err.Error(), "keto")
}

func TestTopProteinPerDiet(t *testing.T) {
	frame := mustParse(t, testutil.CSV(
		"a,R0,x,10,1,1,d",
		"a,R1,x,10,1,1,d",
		"b,R2,x,5,1,1,d",
		"a,R3,x,10,1,1,d",
		"a,R4,x,,1,1,d",
		"b,R5,x,50,1,1,d",
		",R6,x,99,1,1,d",
	))

	top, err := TopProteinPerDiet(frame, 2)
	require.NoError(t, err)

	rows := make([]int, len(top))
	for i, r := range top {
		rows[i] = r.Row
	}
	assert.Equal(t, []int{5, 0, 1, 2}, rows)

	_, err = TopProteinPerDiet(frame, 0)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeValidation))
}

func TestTopProteinPerDiet_MissingProteinLast(t *testing.T) {
	frame := mustParse(t, testutil.CSV(
		"a,R0,x,,1,1,d",
		"a,R1,x,3,1,1,d",
	))

	top, err := TopProteinPerDiet(frame, 5)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, 1, top[0].Row)
	assert.Equal(t, 0, top[1].Row)
}

func TestMostCommonCuisines(t *testing.T) {
	frame := mustParse(t, testutil.CSV(
		"vegan,A,thai,1,1,1,d",
		"vegan,B,indian,1,1,1,d",
		"vegan,C,asian,1,1,1,d",
		"vegan,D,indian,1,1,1,d",
		"vegan,E,asian,1,1,1,d",
		"keto,F,american,1,1,1,d",
		"keto,G,french,1,1,1,d",
		"keto,H,french,1,1,1,d",
		"keto,I,,1,1,1,d",
		"keto,J,,1,1,1,d",
		"keto,K,,1,1,1,d",
	))

	winners, err := MostCommonCuisines(frame)
	require.NoError(t, err)
	assert.Equal(t, []domain.CuisineCount{
		{DietType: "keto", CuisineType: "french", Count: 2},
		{DietType: "vegan", CuisineType: "asian", Count: 2},
	}, winners)

	counts, err := CountCuisines(frame)
	require.NoError(t, err)
	assert.Len(t, counts, 5)
	assert.Equal(t, "american", counts[0].CuisineType)
}

func TestHighestProteinDiet(t *testing.T) {
	diet, err := HighestProteinDiet([]domain.MacroAverage{
		{DietType: "paleo", Protein: 40},
		{DietType: "keto", Protein: 55},
		{DietType: "dash", Protein: 55},
	})
	require.NoError(t, err)
	assert.Equal(t, "keto", diet)

	_, err = HighestProteinDiet(nil)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeAggregation))
}

func TestGroupByFirstAppearance(t *testing.T) {
	groups := groupByFirstAppearance([]string{"b", "a", "", "b", "c", "a"})
	require.Len(t, groups, 3)
	assert.Equal(t, "b", groups[0].key)
	assert.Equal(t, []int{0, 3}, groups[0].rows)
	assert.Equal(t, "a", groups[1].key)
	assert.Equal(t, []int{1, 5}, groups[1].rows)
	assert.Equal(t, "c", groups[2].key)
}
