package recipes

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	nutrientCalories = "calories"
	nutrientProtein  = "protein"
)

// FilterByCalorieProteinRatio keeps recipes that report calories and a non-zero protein
// value and orders them by calories per gram of protein, most protein-dense first. Values
// that do not parse as numbers count as 0. Recipes with equal ratios keep the order in
// which they first appear in rows.
func FilterByCalorieProteinRatio(rows []NutritionRow) []RatioResult {
	lower := cases.Lower(language.Und)

	var order []int64
	nutrients := make(map[int64]map[string]float64)
	for _, row := range rows {
		byName, seen := nutrients[row.RecipeID]
		if !seen {
			byName = make(map[string]float64)
			nutrients[row.RecipeID] = byName
			order = append(order, row.RecipeID)
		}
		byName[lower.String(strings.TrimSpace(row.NutrientName))] = parseNutrientValue(row.Value)
	}

	results := make([]RatioResult, 0, len(order))
	for _, recipeID := range order {
		byName := nutrients[recipeID]
		calories, hasCalories := byName[nutrientCalories]
		protein, hasProtein := byName[nutrientProtein]
		if !hasCalories || !hasProtein || protein == 0 {
			continue
		}

		results = append(results, RatioResult{
			RecipeID:      recipeID,
			Calories:      calories,
			Protein:       protein,
			CalPerProtein: calories / protein,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CalPerProtein < results[j].CalPerProtein
	})
	return results
}

func parseNutrientValue(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
