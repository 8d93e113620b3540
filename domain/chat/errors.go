package chat

import apperrors "github.com/akeren/macro-app-api/pkg/errors"

func NewMissingFieldsError() *apperrors.AppError {
	return apperrors.NewInvalidRequestError("Missing required fields", nil)
}

func NewInvalidTokenError(err error) *apperrors.AppError {
	return apperrors.NewUnauthorizedError("Invalid token", err)
}
