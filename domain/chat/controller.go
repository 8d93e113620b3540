package chat

import (
	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/domain/recipes"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/assistant"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewChatController(
	db *gorm.DB,
	logger *log.Logger,
	completer assistant.Completer,
	tokens TokenVerifier,
) *router.RESTController {

	return router.NewRESTController(
		"ChatController",
		"/api/recipe",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewChatService(logger, recipes.NewRecipeRepository(db), completer, tokens)

			rs.AddPostHandler(c, "/chat", chatHandler(service))
		},
	)
}

func chatHandler(service ChatService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req ChatRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			return router.ValidationFailedResult("Missing required fields", err, &req)
		}

		recipeID, err := req.RecipeID.Int64()
		if err != nil || recipeID <= 0 {
			logger.Warn("Invalid recipe ID", "value", req.RecipeID.String())
			return router.BadRequestResult("Invalid recipe ID", nil)
		}

		rawToken := router.SessionToken(ctx, req.Token)
		if rawToken == "" {
			return router.BadRequestResult("Missing required fields", nil)
		}

		resp, err := service.Ask(ctx.Request.Context(), rawToken, recipeID, req.Message)
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{
			"response":        resp.Response,
			"conversation_id": resp.ConversationID,
		})
	}
}
