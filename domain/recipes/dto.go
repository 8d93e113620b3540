package recipes

import (
	"github.com/akeren/macro-app-api/internal/models"
)

// RecipeDetails is a recipe with its join tables resolved to names. The ordered steps are
// exposed as instruction_steps since the recipe row already has a free-text instructions column.
type RecipeDetails struct {
	models.Recipe
	Ingredients      []IngredientDetail   `json:"ingredients"`
	Nutrition        []NutritionDetail    `json:"nutrition"`
	DietPlans        []DietPlanDetail     `json:"diet_plans"`
	Tags             []TagDetail          `json:"tags"`
	InstructionSteps []models.Instruction `json:"instruction_steps"`
	MealPrepTips     []models.MealPrepTip `json:"meal_prep_tips"`
}

type IngredientDetail struct {
	ID           int64   `json:"id"`
	RecipeID     int64   `json:"recipe_id"`
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

type NutritionDetail struct {
	ID         int64  `json:"id"`
	RecipeID   int64  `json:"recipe_id"`
	NutrientID int64  `json:"nutrient_id"`
	Name       string `json:"name"`
	Unit       string `json:"unit"`
	Value      string `json:"value"`
}

type DietPlanDetail struct {
	DietPlanID int64  `json:"diet_plan_id"`
	Name       string `json:"name"`
}

type TagDetail struct {
	TagID   int64  `json:"tag_id"`
	TagName string `json:"tag_name"`
}

// NutritionRow is one nutrition join row with the nutrient name resolved.
type NutritionRow struct {
	RecipeID     int64
	Value        string
	NutrientName string
}

type RatioResult struct {
	RecipeID      int64   `json:"recipe_id"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	CalPerProtein float64 `json:"cal_per_protein"`
}

// SearchRequest binds the search query string. Filters stay strings so a non-numeric value
// is reported as a validation error instead of being dropped.
type SearchRequest struct {
	Query       string `form:"q" binding:"required,max=200"`
	MinProtein  string `form:"min_protein" binding:"omitempty,numeric"`
	MinCarbs    string `form:"min_carbs" binding:"omitempty,numeric"`
	MinFat      string `form:"min_fat" binding:"omitempty,numeric"`
	MaxCalories string `form:"max_calories" binding:"omitempty,numeric"`
}

// SearchFilters are optional numeric bounds; nil means unbounded.
type SearchFilters struct {
	MinProtein  *float64
	MinCarbs    *float64
	MinFat      *float64
	MaxCalories *float64
}
