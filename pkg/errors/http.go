package errors

import (
	"errors"
	"net/http"
)

const (
	StatusOK                  = http.StatusOK
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusNotFound            = http.StatusNotFound
	StatusMethodNotAllowed    = http.StatusMethodNotAllowed
	StatusRequestTimeout      = http.StatusRequestTimeout
	StatusConflict            = http.StatusConflict
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
	StatusServiceUnavailable  = http.StatusServiceUnavailable
)

// Kinds missing here (upstream, database, internal, unknown) answer 500.
var statusByKind = map[Kind]int{
	ErrorTypeInvalidRequest:     StatusBadRequest,
	ErrorTypeUnauthorized:       StatusUnauthorized,
	ErrorTypeNotFound:           StatusNotFound,
	ErrorTypeMethodNotAllowed:   StatusMethodNotAllowed,
	ErrorTypeConflict:           StatusConflict,
	ErrorTypeTooManyRequests:    StatusTooManyRequests,
	ErrorTypeRequestTimeout:     StatusRequestTimeout,
	ErrorTypeServiceUnavailable: StatusServiceUnavailable,
}

func HTTPStatusCode(err error) int {
	if status, ok := statusByKind[GetErrorType(err)]; ok {
		return status
	}
	return StatusInternalServerError
}

// GetHumanReadableMessage never exposes the text of an untyped error; provider payloads
// and driver messages stay in the logs.
func GetHumanReadableMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return GenericMessage
}
