package chat

import "encoding/json"

// ChatRequest accepts recipe_id as a JSON number or a numeric string.
type ChatRequest struct {
	Token    string      `json:"token"`
	RecipeID json.Number `json:"recipe_id" binding:"required"`
	Message  string      `json:"message" binding:"required,max=2000"`
}

type ChatResponse struct {
	Response       string `json:"response"`
	ConversationID string `json:"conversation_id"`
}
