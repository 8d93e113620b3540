package chat

import (
	"strings"
	"testing"

	"github.com/akeren/macro-app-api/domain/recipes"
	"github.com/akeren/macro-app-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildUserPrompt_FullRecipe(t *testing.T) {
	recipe := &recipes.RecipeDetails{
		Recipe: models.Recipe{
			Name:         "Turkey Chili",
			Instructions: "Brown the turkey, add beans, simmer.",
			CookingTime:  "40 minutes",
			Difficulty:   "Easy",
		},
		Ingredients: []recipes.IngredientDetail{{Name: "ground turkey"}, {Name: "kidney beans"}},
		Nutrition: []recipes.NutritionDetail{
			{Name: "Calories", Value: "480", Unit: "kcal"},
			{Name: "Protein", Value: "42", Unit: "g"},
		},
	}

	prompt := BuildUserPrompt(recipe, "Is this freezer friendly?")

	assert.True(t, strings.HasPrefix(prompt, `A user is viewing the recipe "Turkey Chili" and has asked a question:`))
	assert.Contains(t, prompt, `"Is this freezer friendly?"`)
	assert.Contains(t, prompt, "- **Ingredients**: ground turkey, kidney beans\n")
	assert.Contains(t, prompt, "- **Nutritional Info**: Calories: 480 kcal, Protein: 42 g\n")
	assert.Contains(t, prompt, "- **Instructions**: Brown the turkey, add beans, simmer.\n")
	assert.Contains(t, prompt, "- **Cooking Time**: 40 minutes\n")
	assert.Contains(t, prompt, "- **Difficulty**: Easy\n")
	assert.True(t, strings.HasSuffix(prompt, "Only respond about this specific recipe."))
}

func TestBuildUserPrompt_Fallbacks(t *testing.T) {
	prompt := BuildUserPrompt(&recipes.RecipeDetails{Recipe: models.Recipe{Name: "Plain Oats"}}, "hi")

	assert.Contains(t, prompt, "- **Ingredients**: No ingredients listed\n")
	assert.Contains(t, prompt, "- **Nutritional Info**: No nutritional info available\n")
	assert.Contains(t, prompt, "- **Instructions**: No instructions available\n")
	assert.Contains(t, prompt, "- **Cooking Time**: Not specified\n")
	assert.Contains(t, prompt, "- **Difficulty**: Not specified\n")
}

func TestBuildUserPrompt_NumberedStepsWhenNoInstructionText(t *testing.T) {
	recipe := &recipes.RecipeDetails{
		Recipe: models.Recipe{Name: "Egg Muffins"},
		InstructionSteps: []models.Instruction{
			{StepNumber: 1, Text: "Whisk eggs"},
			{StepNumber: 2, Text: "Bake 20 minutes"},
		},
	}

	prompt := BuildUserPrompt(recipe, "hi")
	assert.Contains(t, prompt, "- **Instructions**: 1. Whisk eggs 2. Bake 20 minutes\n")
}
