package recipes

import apperrors "github.com/akeren/macro-app-api/pkg/errors"

func NewRecipeNotFoundError() *apperrors.AppError {
	return apperrors.NewNotFoundError("Recipe not found", nil)
}

func NewMissingQueryError() *apperrors.AppError {
	return apperrors.NewInvalidRequestError("Missing search query", nil)
}
