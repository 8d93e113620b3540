package recipes

import (
	"context"
	"testing"
	"time"

	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.ModelRegistry...))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	recipes := []models.Recipe{
		{RecipeID: 1, Name: "Chicken Rice Bowl", Calories: 550, Protein: 45, Carbs: 60, Fat: 12, CreatedAt: base},
		{RecipeID: 2, Name: "Tofu Stir Fry", Calories: 420, Protein: 25, Carbs: 40, Fat: 18, CreatedAt: base.Add(time.Hour)},
		{RecipeID: 3, Name: "100% Oat Bars", Calories: 300, Protein: 8, Carbs: 50, Fat: 9, CreatedAt: base.Add(2 * time.Hour)},
	}
	require.NoError(t, db.Create(&recipes).Error)

	require.NoError(t, db.Create(&[]models.IngredientLibrary{
		{IngredientID: 10, Name: "chicken breast"},
		{IngredientID: 11, Name: "brown rice"},
	}).Error)
	require.NoError(t, db.Create(&[]models.RecipeIngredient{
		{ID: 1, RecipeID: 1, IngredientID: 10, Amount: 200, Unit: "g"},
		{ID: 2, RecipeID: 1, IngredientID: 11, Amount: 1, Unit: "cup"},
		{ID: 3, RecipeID: 1, IngredientID: 99, Amount: 1, Unit: "pinch"},
	}).Error)

	require.NoError(t, db.Create(&[]models.NutrientLibrary{
		{NutrientID: 1, Name: "Calories", Unit: "kcal"},
		{NutrientID: 2, Name: "Protein", Unit: "g"},
	}).Error)
	require.NoError(t, db.Create(&[]models.RecipeNutrition{
		{ID: 1, RecipeID: 1, NutrientID: 1, Value: "550"},
		{ID: 2, RecipeID: 1, NutrientID: 2, Value: "45"},
		{ID: 3, RecipeID: 2, NutrientID: 1, Value: "420"},
		{ID: 4, RecipeID: 2, NutrientID: 2, Value: "25"},
		{ID: 5, RecipeID: 2, NutrientID: 77, Value: "3"},
	}).Error)

	require.NoError(t, db.Create(&models.TagLibrary{TagID: 5, TagName: "high-protein"}).Error)
	require.NoError(t, db.Create(&[]models.RecipeTag{
		{ID: 1, RecipeID: 1, TagID: 5},
	}).Error)

	require.NoError(t, db.Create(&models.DietPlan{DietPlanID: 7, Name: "Lean Bulk"}).Error)
	require.NoError(t, db.Create(&[]models.RecipeDietPlan{
		{ID: 1, RecipeID: 1, DietPlanID: 7},
		{ID: 2, RecipeID: 1, DietPlanID: 8},
	}).Error)

	require.NoError(t, db.Create(&[]models.Instruction{
		{ID: 1, RecipeID: 1, StepNumber: 2, Text: "Slice and serve"},
		{ID: 2, RecipeID: 1, StepNumber: 1, Text: "Grill the chicken"},
	}).Error)
	require.NoError(t, db.Create(&models.MealPrepTip{ID: 1, RecipeID: 1, Tip: "Keeps 4 days refrigerated"}).Error)
}

func TestRecipeRepository_FindDetails(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewRecipeRepository(db)

	details, err := repo.FindDetails(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, "Chicken Rice Bowl", details.Name)

	require.Len(t, details.Ingredients, 3)
	assert.Equal(t, "chicken breast", details.Ingredients[0].Name)
	assert.Equal(t, 200.0, details.Ingredients[0].Amount)
	assert.Equal(t, "g", details.Ingredients[0].Unit)
	assert.Equal(t, "Unknown", details.Ingredients[2].Name)

	require.Len(t, details.Nutrition, 2)
	assert.Equal(t, "Calories", details.Nutrition[0].Name)
	assert.Equal(t, "kcal", details.Nutrition[0].Unit)
	assert.Equal(t, "550", details.Nutrition[0].Value)

	require.Len(t, details.DietPlans, 2)
	assert.Equal(t, "Lean Bulk", details.DietPlans[0].Name)
	assert.Equal(t, "Unknown", details.DietPlans[1].Name)

	require.Len(t, details.Tags, 1)
	assert.Equal(t, "high-protein", details.Tags[0].TagName)

	require.Len(t, details.InstructionSteps, 2)
	assert.Equal(t, "Grill the chicken", details.InstructionSteps[0].Text)
	assert.Equal(t, "Slice and serve", details.InstructionSteps[1].Text)

	require.Len(t, details.MealPrepTips, 1)
}

func TestRecipeRepository_FindDetailsWithoutJoinsReturnsEmptySlices(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewRecipeRepository(db)

	details, err := repo.FindDetails(context.Background(), 3)
	require.NoError(t, err)

	assert.NotNil(t, details.Ingredients)
	assert.Empty(t, details.Ingredients)
	assert.NotNil(t, details.Tags)
	assert.Empty(t, details.InstructionSteps)
}

func TestRecipeRepository_FindDetailsNotFound(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))

	_, err := repo.FindDetails(context.Background(), 42)
	require.Error(t, err)
	assert.Equal(t, apperrors.StatusNotFound, apperrors.HTTPStatusCode(err))
	assert.Equal(t, "Recipe not found", apperrors.GetHumanReadableMessage(err))
}

func TestRecipeRepository_ListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewRecipeRepository(db)

	recipes, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	require.Len(t, recipes, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{recipes[0].RecipeID, recipes[1].RecipeID, recipes[2].RecipeID})
}

func TestRecipeRepository_ListNewestFirstEmpty(t *testing.T) {
	repo := NewRecipeRepository(newTestDB(t))

	recipes, err := repo.ListNewestFirst(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
}

func TestRecipeRepository_Search(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	minProtein := 20.0
	maxCalories := 500.0

	tests := []struct {
		name    string
		query   string
		filters SearchFilters
		want    []int64
	}{
		{name: "case insensitive substring", query: "RICE", want: []int64{1}},
		{name: "matches several", query: "o", want: []int64{3, 2, 1}},
		{name: "min protein", query: "o", filters: SearchFilters{MinProtein: &minProtein}, want: []int64{2, 1}},
		{name: "max calories", query: "o", filters: SearchFilters{MaxCalories: &maxCalories}, want: []int64{3, 2}},
		{name: "combined bounds", query: "o", filters: SearchFilters{MinProtein: &minProtein, MaxCalories: &maxCalories}, want: []int64{2}},
		{name: "percent is literal", query: "100%", want: []int64{3}},
		{name: "underscore is literal", query: "_", want: []int64{}},
		{name: "no match", query: "lasagna", want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recipes, err := repo.Search(ctx, tt.query, tt.filters)
			require.NoError(t, err)

			got := []int64{}
			for _, r := range recipes {
				got = append(got, r.RecipeID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipeRepository_ListNutritionRows(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)
	repo := NewRecipeRepository(db)

	rows, err := repo.ListNutritionRows(context.Background())
	require.NoError(t, err)

	// Row 5 references a nutrient missing from the library and is dropped.
	assert.Equal(t, []NutritionRow{
		{RecipeID: 1, Value: "550", NutrientName: "Calories"},
		{RecipeID: 1, Value: "45", NutrientName: "Protein"},
		{RecipeID: 2, Value: "420", NutrientName: "Calories"},
		{RecipeID: 2, Value: "25", NutrientName: "Protein"},
	}, rows)

	results := FilterByCalorieProteinRatio(rows)
	require.Len(t, results, 2)
	assert.Equal(t, int64(1), results[0].RecipeID)
}
