package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is rendered as a flat envelope: {"success": bool, ...Data, "error", "code", "details"}.
// StatusCode is the HTTP status and is never part of the body.
type ServiceResult struct {
	StatusCode int
	Success    bool
	Data       gin.H
	Error      string
	Code       string
	Details    any
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	body := gin.H{"success": result.Success}
	for k, v := range result.Data {
		body[k] = v
	}
	if result.Error != "" {
		body["error"] = result.Error
	}
	if result.Code != "" {
		body["code"] = result.Code
	}
	if result.Details != nil {
		body["details"] = result.Details
	}
	return body
}
