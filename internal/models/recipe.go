package models

import "time"

type Recipe struct {
	RecipeID     int64     `gorm:"column:recipe_id;primaryKey" json:"recipe_id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Description  string    `json:"description"`
	Instructions string    `json:"instructions"`
	CookingTime  string    `json:"cooking_time"`
	Difficulty   string    `json:"difficulty"`
	Servings     int       `json:"servings"`
	Calories     float64   `json:"calories"`
	Protein      float64   `json:"protein"`
	Carbs        float64   `json:"carbs"`
	Fat          float64   `json:"fat"`
	CreatedAt    time.Time `json:"created_at"`
}

func (Recipe) TableName() string { return "recipes" }

type IngredientLibrary struct {
	IngredientID int64  `gorm:"column:ingredient_id;primaryKey" json:"ingredient_id"`
	Name         string `gorm:"not null" json:"name"`
}

func (IngredientLibrary) TableName() string { return "ingredients_library" }

type RecipeIngredient struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	RecipeID     int64   `gorm:"not null;index" json:"recipe_id"`
	IngredientID int64   `gorm:"not null" json:"ingredient_id"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

func (RecipeIngredient) TableName() string { return "recipe_ingredients_join_table" }

type NutrientLibrary struct {
	NutrientID int64  `gorm:"column:nutrient_id;primaryKey" json:"nutrient_id"`
	Name       string `gorm:"not null" json:"name"`
	Unit       string `json:"unit"`
}

func (NutrientLibrary) TableName() string { return "nutrient_library" }

// RecipeNutrition keeps Value as imported text; it may not parse as a number.
type RecipeNutrition struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	RecipeID   int64  `gorm:"not null;index" json:"recipe_id"`
	NutrientID int64  `gorm:"not null" json:"nutrient_id"`
	Value      string `gorm:"type:text" json:"value"`
}

func (RecipeNutrition) TableName() string { return "recipe_nutrition_join_table" }

type TagLibrary struct {
	TagID   int64  `gorm:"column:tag_id;primaryKey" json:"tag_id"`
	TagName string `gorm:"column:tag_name;not null" json:"tag_name"`
}

func (TagLibrary) TableName() string { return "tags_library" }

type RecipeTag struct {
	ID       int64 `gorm:"primaryKey" json:"id"`
	RecipeID int64 `gorm:"not null;index" json:"recipe_id"`
	TagID    int64 `gorm:"not null" json:"tag_id"`
}

func (RecipeTag) TableName() string { return "recipe_tags_join_table" }

type DietPlan struct {
	DietPlanID int64  `gorm:"column:diet_plan_id;primaryKey" json:"diet_plan_id"`
	Name       string `gorm:"not null" json:"name"`
}

func (DietPlan) TableName() string { return "diet_plans" }

type RecipeDietPlan struct {
	ID         int64 `gorm:"primaryKey" json:"id"`
	RecipeID   int64 `gorm:"not null;index" json:"recipe_id"`
	DietPlanID int64 `gorm:"not null" json:"diet_plan_id"`
}

func (RecipeDietPlan) TableName() string { return "recipe_diet_plan_join_table" }

type Instruction struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	RecipeID   int64  `gorm:"not null;index" json:"recipe_id"`
	StepNumber int    `gorm:"not null" json:"step_number"`
	Text       string `gorm:"type:text" json:"text"`
}

func (Instruction) TableName() string { return "instructions" }

type MealPrepTip struct {
	ID       int64  `gorm:"primaryKey" json:"id"`
	RecipeID int64  `gorm:"not null;index" json:"recipe_id"`
	Tip      string `gorm:"type:text" json:"tip"`
}

func (MealPrepTip) TableName() string { return "meal_prep_tips" }
