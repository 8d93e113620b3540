package auth

import (
	"errors"

	apperrors "github.com/akeren/macro-app-api/pkg/errors"
)

// CodeNeedUsername tells the client to ask for a display name and retry verify-otp.
const CodeNeedUsername = "need_username"

var (
	ErrNeedUsername = errors.New("user not found and no username provided")
	ErrUserNotFound = errors.New("user not found")
)

func NewInvalidOTPError() *apperrors.AppError {
	return apperrors.NewUnauthorizedError("Invalid OTP", nil)
}

func NewInvalidTokenError(err error) *apperrors.AppError {
	return apperrors.NewUnauthorizedError("Invalid token", err)
}
