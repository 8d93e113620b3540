package recipes

import (
	"strings"

	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func NewRecipesController(
	db *gorm.DB,
	logger *log.Logger,
) *router.RESTController {

	return router.NewRESTController(
		"RecipesController",
		"/api",
		func(rs *router.RouterService, c *router.RESTController) {
			repository := NewRecipeRepository(db)
			service := NewRecipeService(logger, repository)

			rs.AddGetHandler(c, "/recipe/:id", getRecipeHandler(service))
			rs.AddGetHandler(c, "/recipes", listRecipesHandler(service))
			rs.AddGetHandler(c, "/recipes/filter", filterRecipesHandler(service))
			rs.AddGetHandler(c, "/search", searchRecipesHandler(service))
		},
	)
}

func getRecipeHandler(service RecipeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		id, errResult := router.ParsePositiveIDParam(ctx, "id")
		if errResult != nil {
			return errResult
		}

		details, err := service.GetRecipe(ctx.Request.Context(), id)
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"recipe": details})
	}
}

func listRecipesHandler(service RecipeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		recipes, err := service.ListRecipes(ctx.Request.Context())
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"recipes": recipes})
	}
}

func filterRecipesHandler(service RecipeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		results, err := service.FilterByRatio(ctx.Request.Context())
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"recipes": results})
	}
}

func searchRecipesHandler(service RecipeService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req SearchRequest
		if err := ctx.ShouldBindQuery(&req); err != nil {
			logger.Warn("Invalid search query", "error", err)

			if strings.TrimSpace(ctx.Query("q")) == "" {
				return router.BadRequestResult("Missing search query", nil)
			}
			return router.ValidationFailedResult("Invalid search filters", err, &req)
		}

		recipes, err := service.Search(ctx.Request.Context(), &req)
		if err != nil {
			return router.ErrorResultFrom(err)
		}

		return router.OKResult(gin.H{"recipes": recipes})
	}
}
