package recipes

import (
	"context"
	"strconv"
	"strings"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/internal/models"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
)

type RecipeService interface {
	// GetRecipe returns one recipe with ingredients, nutrition, diet plans, tags, steps and tips.
	GetRecipe(ctx context.Context, id int64) (*RecipeDetails, error)

	// ListRecipes returns every recipe, newest first.
	ListRecipes(ctx context.Context) ([]models.Recipe, error)

	// FilterByRatio ranks recipes by calories per gram of protein.
	FilterByRatio(ctx context.Context) ([]RatioResult, error)

	// Search matches recipe names and applies the optional macro bounds.
	Search(ctx context.Context, req *SearchRequest) ([]models.Recipe, error)
}

type recipeService struct {
	logger     *log.Logger
	repository RecipeRepository
}

func NewRecipeService(logger *log.Logger, repository RecipeRepository) RecipeService {
	return &recipeService{logger: logger, repository: repository}
}

func (s *recipeService) GetRecipe(ctx context.Context, id int64) (*RecipeDetails, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if id <= 0 {
		return nil, apperrors.NewInvalidRequestError("Invalid recipe ID", nil)
	}

	details, err := s.repository.FindDetails(ctx, id)
	if err != nil {
		if !apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			logger.Error("Failed to fetch recipe", "recipe_id", id, "error", err)
		}
		return nil, err
	}

	return details, nil
}

func (s *recipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	recipes, err := s.repository.ListNewestFirst(ctx)
	if err != nil {
		logger.Error("Failed to list recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

func (s *recipeService) FilterByRatio(ctx context.Context) ([]RatioResult, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	rows, err := s.repository.ListNutritionRows(ctx)
	if err != nil {
		logger.Error("Failed to load nutrition rows", "error", err)
		return nil, err
	}

	return FilterByCalorieProteinRatio(rows), nil
}

func (s *recipeService) Search(ctx context.Context, req *SearchRequest) ([]models.Recipe, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil || strings.TrimSpace(req.Query) == "" {
		return nil, NewMissingQueryError()
	}

	filters, err := req.Filters()
	if err != nil {
		return nil, err
	}

	recipes, err := s.repository.Search(ctx, strings.TrimSpace(req.Query), filters)
	if err != nil {
		logger.Error("Failed to search recipes", "error", err)
		return nil, err
	}
	return recipes, nil
}

// Filters parses the optional numeric bounds. Empty values are unbounded.
func (req *SearchRequest) Filters() (SearchFilters, error) {
	var filters SearchFilters

	for _, f := range []struct {
		name   string
		raw    string
		target **float64
	}{
		{"min_protein", req.MinProtein, &filters.MinProtein},
		{"min_carbs", req.MinCarbs, &filters.MinCarbs},
		{"min_fat", req.MinFat, &filters.MinFat},
		{"max_calories", req.MaxCalories, &filters.MaxCalories},
	} {
		raw := strings.TrimSpace(f.raw)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return SearchFilters{}, apperrors.NewInvalidRequestError("Invalid value for "+f.name, err)
		}
		*f.target = &v
	}

	return filters, nil
}
