package shopping

import "github.com/akeren/macro-app-api/pkg/instacart"

type IngredientInput struct {
	Name   string  `json:"name" binding:"required,max=200"`
	Amount float64 `json:"amount" binding:"omitempty,gte=0"`
	Unit   string  `json:"unit" binding:"omitempty,max=32"`
}

type ShoppingListRequest struct {
	Token       string            `json:"token"`
	Ingredients []IngredientInput `json:"ingredients" binding:"required,min=1,max=100,dive"`
}

func (req *ShoppingListRequest) items() []instacart.Item {
	items := make([]instacart.Item, len(req.Ingredients))
	for i, ingredient := range req.Ingredients {
		items[i] = instacart.Item{
			Name:   ingredient.Name,
			Amount: ingredient.Amount,
			Unit:   ingredient.Unit,
		}
	}
	return items
}
