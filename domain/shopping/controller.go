package shopping

import (
	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/instacart"
	"github.com/gin-gonic/gin"
)

func NewShoppingController(
	logger *log.Logger,
	creator instacart.ShoppingListCreator,
	tokens TokenVerifier,
) *router.RESTController {

	return router.NewRESTController(
		"ShoppingController",
		"/api/instacart",
		func(rs *router.RouterService, c *router.RESTController) {
			service := NewShoppingService(logger, creator, tokens)

			rs.AddPostHandler(c, "/shopping-list", shoppingListHandler(service))
		},
	)
}

func shoppingListHandler(service ShoppingService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req ShoppingListRequest
		if err := ctx.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind request", "error", err)
			return router.ValidationFailedResult("Missing required fields", err, &req)
		}

		rawToken := router.SessionToken(ctx, req.Token)
		url, err := service.CreateShoppingList(ctx.Request.Context(), rawToken, req.items())
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"shopping_list_url": url})
	}
}
