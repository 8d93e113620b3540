package errors

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Kind classifies an AppError. The HTTP status a handler answers with is derived from it.
type Kind string

const (
	ErrorTypeInvalidRequest      Kind = "INVALID_REQUEST"
	ErrorTypeUnauthorized        Kind = "UNAUTHORIZED"
	ErrorTypeNotFound            Kind = "NOT_FOUND"
	ErrorTypeMethodNotAllowed    Kind = "METHOD_NOT_ALLOWED"
	ErrorTypeConflict            Kind = "CONFLICT"
	ErrorTypeTooManyRequests     Kind = "TOO_MANY_REQUESTS"
	ErrorTypeRequestTimeout      Kind = "REQUEST_TIMEOUT"
	ErrorTypeServiceUnavailable  Kind = "SERVICE_UNAVAILABLE"
	ErrorTypeUpstream            Kind = "UPSTREAM_ERROR"
	ErrorTypeDatabaseError       Kind = "DATABASE_ERROR"
	ErrorTypeInternalServerError Kind = "INTERNAL_SERVER_ERROR"
	ErrorTypeUnknown             Kind = "UNKNOWN_ERROR"
)

// GenericMessage is what clients see for failures whose detail must stay in the logs.
const GenericMessage = "Internal server error"

// AppError carries a client-safe Message next to the wrapped cause.
type AppError struct {
	Type    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(kind Kind, message string, err error) *AppError {
	return &AppError{Type: kind, Message: message, Err: err}
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

func NewUnauthorizedError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnauthorized, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

// NewUpstreamError wraps a failed provider call. Callers pass GenericMessage unless
// the detail is meant for the client.
func NewUpstreamError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUpstream, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

// GetErrorType returns the Kind of the first AppError in err's chain.
func GetErrorType(err error) Kind {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func IsType(err error, kind Kind) bool {
	return GetErrorType(err) == kind
}

// IsDuplicateKeyError recognises unique violations from gorm's translated error or
// from the raw driver text of postgres and sqlite.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint")
}
