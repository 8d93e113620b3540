package chat

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/akeren/macro-app-api/domain/recipes"
)

const SystemPrompt = `You are an expert meal-prep AI assistant focused on healthy cooking and nutrition.
When responding to questions about recipes:
1. Focus on healthy modifications and substitutions
2. Consider meal-prep friendly options
3. Provide clear, concise answers
4. Only respond about the specific recipe being discussed
5. Include nutritional considerations
6. Suggest healthy ingredient alternatives
7. Consider portion control and meal planning
8. Emphasize balanced nutrition

Keep responses focused and practical. If asked about modifications, prioritize healthy and meal-prep friendly options.`

const (
	noIngredients  = "No ingredients listed"
	noNutrition    = "No nutritional info available"
	noInstructions = "No instructions available"
	notSpecified   = "Not specified"
)

// BuildUserPrompt places the user's question inside the recipe's context.
func BuildUserPrompt(recipe *recipes.RecipeDetails, message string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "A user is viewing the recipe %q and has asked a question:\n\n", recipe.Name)
	fmt.Fprintf(&b, "%q\n\n", message)
	b.WriteString("Here are the details of the recipe:\n")
	fmt.Fprintf(&b, "- **Ingredients**: %s\n", ingredientList(recipe))
	fmt.Fprintf(&b, "- **Nutritional Info**: %s\n", nutritionList(recipe))
	fmt.Fprintf(&b, "- **Instructions**: %s\n", instructionsText(recipe))
	fmt.Fprintf(&b, "- **Cooking Time**: %s\n", orNotSpecified(recipe.CookingTime))
	fmt.Fprintf(&b, "- **Difficulty**: %s\n\n", orNotSpecified(recipe.Difficulty))
	b.WriteString("Provide clear, concise answers focused on healthy modifications and meal-prep friendly options. Only respond about this specific recipe.")

	return b.String()
}

func ingredientList(recipe *recipes.RecipeDetails) string {
	names := make([]string, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		names = append(names, ingredient.Name)
	}
	if len(names) == 0 {
		return noIngredients
	}
	return strings.Join(names, ", ")
}

func nutritionList(recipe *recipes.RecipeDetails) string {
	pairs := make([]string, 0, len(recipe.Nutrition))
	for _, n := range recipe.Nutrition {
		value := strings.TrimSpace(n.Value)
		if n.Unit != "" {
			value += " " + n.Unit
		}
		pairs = append(pairs, n.Name+": "+value)
	}
	if len(pairs) == 0 {
		return noNutrition
	}
	return strings.Join(pairs, ", ")
}

// instructionsText prefers the free-text column and falls back to the numbered steps.
func instructionsText(recipe *recipes.RecipeDetails) string {
	if text := strings.TrimSpace(recipe.Instructions); text != "" {
		return text
	}

	steps := make([]string, 0, len(recipe.InstructionSteps))
	for i, step := range recipe.InstructionSteps {
		steps = append(steps, strconv.Itoa(i+1)+". "+strings.TrimSpace(step.Text))
	}
	if len(steps) == 0 {
		return noInstructions
	}
	return strings.Join(steps, " ")
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
