package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/akeren/macro-app-api/internal/log"
	apperrors "github.com/akeren/macro-app-api/pkg/errors"
	"github.com/gin-gonic/gin"
)

func GetLogger(ctx *RequestContext) *log.Logger {
	if logger := ctx.Request.Context().Value(log.LoggerKeyForContext); logger != nil {
		if l, ok := logger.(*log.Logger); ok {
			return l
		}
	}

	baseLogger := log.NewLoggerWithJSONOutput()
	return baseLogger.WithCorrelationID(ctx.Request.Context())
}

func OKResult(data gin.H) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Success:    true,
		Data:       data,
	}
}

// FailureResult is a handled outcome that is not an HTTP error, e.g. a 200 asking the
// client for more input. Code tells clients which case they hit.
func FailureResult(statusCode int, code, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Success:    false,
		Code:       code,
		Error:      message,
	}
}

func TooManyRequestsResult(retryAfterSeconds int) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusTooManyRequests,
		Error:      "Too many requests",
		Data:       gin.H{"retryAfter": retryAfterSeconds},
	}
}

func BadRequestResult(message string, details any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Error:      message,
		Details:    details,
	}
}

// ValidationFailedResult reports a bind or validation error, listing field details when the
// error carries any.
func ValidationFailedResult(message string, err error, model any) *ServiceResult {
	if details := apperrors.FormatValidationErrors(err, model); len(details) > 0 {
		return BadRequestResult(message, details)
	}
	return BadRequestResult(message, nil)
}

func UnauthorizedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusUnauthorized, message, nil)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message, nil)
}

func MethodNotAllowedResult() *ServiceResult {
	return ErrorResult(http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

func ErrorResult(statusCode int, message string, details any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Error:      message,
		Details:    details,
	}
}

// ErrorResultFrom converts any error into the envelope. Only AppError messages reach the client.
func ErrorResultFrom(err error) *ServiceResult {
	return ErrorResult(apperrors.HTTPStatusCode(err), apperrors.GetHumanReadableMessage(err), nil)
}

// ParsePositiveIDParam reads a path parameter that must be a positive integer.
func ParsePositiveIDParam(ctx *RequestContext, paramName string) (int64, *ServiceResult) {
	logger := GetLogger(ctx)

	idParam := ctx.Param(paramName)
	id, err := strconv.ParseInt(idParam, 10, 64)

	if err != nil || id <= 0 {
		logger.Warn("Invalid ID parameter", "param", paramName, "value", idParam)
		return 0, BadRequestResult("Invalid recipe ID", nil)
	}

	return id, nil
}

// SessionToken returns bodyToken, or the bearer credential of the Authorization header
// when the body carries none.
func SessionToken(ctx *RequestContext, bodyToken string) string {
	if t := strings.TrimSpace(bodyToken); t != "" {
		return t
	}

	scheme, credential, found := strings.Cut(strings.TrimSpace(ctx.GetHeader("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(credential)
}
