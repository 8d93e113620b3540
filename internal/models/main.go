package models

// ModelRegistry lists every model handled by gorm AutoMigrate in development.
var ModelRegistry = []interface{}{
	&User{},
	&Recipe{},
	&IngredientLibrary{},
	&RecipeIngredient{},
	&NutrientLibrary{},
	&RecipeNutrition{},
	&TagLibrary{},
	&RecipeTag{},
	&DietPlan{},
	&RecipeDietPlan{},
	&Instruction{},
	&MealPrepTip{},
}
