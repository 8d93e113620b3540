package recipes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByCalorieProteinRatio_ExcludesMissingProtein(t *testing.T) {
	rows := []NutritionRow{
		{RecipeID: 1, NutrientName: "calories", Value: "400"},
		{RecipeID: 1, NutrientName: "protein", Value: "40"},
		{RecipeID: 2, NutrientName: "calories", Value: "300"},
	}

	results := FilterByCalorieProteinRatio(rows)
	require.Len(t, results, 1)
	assert.Equal(t, RatioResult{RecipeID: 1, Calories: 400, Protein: 40, CalPerProtein: 10}, results[0])
}

func TestFilterByCalorieProteinRatio_SortsAscending(t *testing.T) {
	rows := []NutritionRow{
		{RecipeID: 1, NutrientName: "Calories", Value: "400"},
		{RecipeID: 1, NutrientName: "Protein", Value: "20"},
		{RecipeID: 2, NutrientName: "CALORIES", Value: "250"},
		{RecipeID: 2, NutrientName: "protein", Value: "50"},
		{RecipeID: 3, NutrientName: "calories", Value: "360"},
		{RecipeID: 3, NutrientName: " protein ", Value: "30"},
	}

	results := FilterByCalorieProteinRatio(rows)
	require.Len(t, results, 3)

	var ratios []float64
	for _, r := range results {
		ratios = append(ratios, r.CalPerProtein)
	}
	assert.Equal(t, []float64{5, 12, 20}, ratios)
	assert.Equal(t, []int64{2, 3, 1}, []int64{results[0].RecipeID, results[1].RecipeID, results[2].RecipeID})
}

func TestFilterByCalorieProteinRatio_NonNumericValuesAreZero(t *testing.T) {
	rows := []NutritionRow{
		{RecipeID: 1, NutrientName: "calories", Value: "n/a"},
		{RecipeID: 1, NutrientName: "protein", Value: "10"},
		{RecipeID: 2, NutrientName: "calories", Value: "100"},
		{RecipeID: 2, NutrientName: "protein", Value: "trace"},
		{RecipeID: 3, NutrientName: "calories", Value: "100"},
		{RecipeID: 3, NutrientName: "protein", Value: "NaN"},
	}

	results := FilterByCalorieProteinRatio(rows)
	require.Len(t, results, 1)
	assert.Equal(t, int64(1), results[0].RecipeID)
	assert.Zero(t, results[0].CalPerProtein)
}

func TestFilterByCalorieProteinRatio_TiesKeepFirstSeenOrder(t *testing.T) {
	rows := []NutritionRow{
		{RecipeID: 9, NutrientName: "calories", Value: "100"},
		{RecipeID: 9, NutrientName: "protein", Value: "10"},
		{RecipeID: 4, NutrientName: "calories", Value: "200"},
		{RecipeID: 4, NutrientName: "protein", Value: "20"},
	}

	results := FilterByCalorieProteinRatio(rows)
	require.Len(t, results, 2)
	assert.Equal(t, int64(9), results[0].RecipeID)
	assert.Equal(t, int64(4), results[1].RecipeID)
}

func TestFilterByCalorieProteinRatio_Empty(t *testing.T) {
	results := FilterByCalorieProteinRatio(nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}
