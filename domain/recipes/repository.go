package recipes

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=recipes

import (
	"context"
	"errors"
	"strings"

	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"gorm.io/gorm"
)

type RecipeRepository interface {
	// FindDetails returns the recipe with every join table resolved, or a NotFound AppError.
	FindDetails(ctx context.Context, id int64) (*RecipeDetails, error)
	ListNewestFirst(ctx context.Context) ([]models.Recipe, error)
	// Search matches query case-insensitively anywhere in the recipe name.
	Search(ctx context.Context, query string, filters SearchFilters) ([]models.Recipe, error)
	ListNutritionRows(ctx context.Context) ([]NutritionRow, error)
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) FindDetails(ctx context.Context, id int64) (*RecipeDetails, error) {
	db := r.db.WithContext(ctx)

	var recipe models.Recipe
	if err := db.First(&recipe, "recipe_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewRecipeNotFoundError()
		}
		return nil, apperrors.NewDatabaseError("failed to fetch recipe", err)
	}

	details := &RecipeDetails{
		Recipe:           recipe,
		Ingredients:      []IngredientDetail{},
		Nutrition:        []NutritionDetail{},
		DietPlans:        []DietPlanDetail{},
		Tags:             []TagDetail{},
		InstructionSteps: []models.Instruction{},
		MealPrepTips:     []models.MealPrepTip{},
	}

	err := db.Table("recipe_ingredients_join_table AS ri").
		Select("ri.id, ri.recipe_id, ri.ingredient_id, COALESCE(il.name, 'Unknown') AS name, COALESCE(ri.amount, 0) AS amount, COALESCE(ri.unit, '') AS unit").
		Joins("LEFT JOIN ingredients_library il ON il.ingredient_id = ri.ingredient_id").
		Where("ri.recipe_id = ?", id).
		Order("ri.id").
		Scan(&details.Ingredients).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipe ingredients", err)
	}

	err = db.Table("recipe_nutrition_join_table AS rn").
		Select("rn.id, rn.recipe_id, rn.nutrient_id, COALESCE(nl.name, 'Unknown') AS name, COALESCE(nl.unit, '') AS unit, COALESCE(rn.value, '0') AS value").
		Joins("LEFT JOIN nutrient_library nl ON nl.nutrient_id = rn.nutrient_id").
		Where("rn.recipe_id = ?", id).
		Order("rn.id").
		Scan(&details.Nutrition).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipe nutrition", err)
	}

	err = db.Table("recipe_diet_plan_join_table AS rd").
		Select("rd.diet_plan_id, COALESCE(dp.name, 'Unknown') AS name").
		Joins("LEFT JOIN diet_plans dp ON dp.diet_plan_id = rd.diet_plan_id").
		Where("rd.recipe_id = ?", id).
		Order("rd.id").
		Scan(&details.DietPlans).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipe diet plans", err)
	}

	err = db.Table("recipe_tags_join_table AS rt").
		Select("rt.tag_id, COALESCE(tl.tag_name, 'Unknown') AS tag_name").
		Joins("LEFT JOIN tags_library tl ON tl.tag_id = rt.tag_id").
		Where("rt.recipe_id = ?", id).
		Order("rt.id").
		Scan(&details.Tags).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipe tags", err)
	}

	if err := db.Where("recipe_id = ?", id).Order("step_number, id").Find(&details.InstructionSteps).Error; err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipe instructions", err)
	}

	if err := db.Where("recipe_id = ?", id).Order("id").Find(&details.MealPrepTips).Error; err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch meal prep tips", err)
	}

	return details, nil
}

func (r *recipeRepository) ListNewestFirst(ctx context.Context) ([]models.Recipe, error) {
	recipes := []models.Recipe{}
	if err := r.db.WithContext(ctx).Order("created_at DESC, recipe_id DESC").Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch recipes", err)
	}
	return recipes, nil
}

func (r *recipeRepository) Search(ctx context.Context, query string, filters SearchFilters) ([]models.Recipe, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	tx := r.db.WithContext(ctx).Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	if filters.MinProtein != nil {
		tx = tx.Where("protein >= ?", *filters.MinProtein)
	}
	if filters.MinCarbs != nil {
		tx = tx.Where("carbs >= ?", *filters.MinCarbs)
	}
	if filters.MinFat != nil {
		tx = tx.Where("fat >= ?", *filters.MinFat)
	}
	if filters.MaxCalories != nil {
		tx = tx.Where("calories <= ?", *filters.MaxCalories)
	}

	recipes := []models.Recipe{}
	if err := tx.Order("created_at DESC, recipe_id DESC").Find(&recipes).Error; err != nil {
		return nil, apperrors.NewDatabaseError("failed to search recipes", err)
	}
	return recipes, nil
}

func (r *recipeRepository) ListNutritionRows(ctx context.Context) ([]NutritionRow, error) {
	var rows []NutritionRow
	err := r.db.WithContext(ctx).
		Table("recipe_nutrition_join_table AS rn").
		Select("rn.recipe_id, COALESCE(rn.value, '') AS value, nl.name AS nutrient_name").
		Joins("JOIN nutrient_library nl ON nl.nutrient_id = rn.nutrient_id").
		Order("rn.recipe_id, rn.id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to fetch nutrition rows", err)
	}
	return rows, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
