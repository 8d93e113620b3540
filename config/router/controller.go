package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/akeren/macro-app-api/pkg/ratelimit"
)

func normalizePath(controller *RESTController, relativePath string) string {
	var path string = controller.mountPoint

	if relativePath != "" {
		path = path + "/" + relativePath
	}

	if path[0] != '/' {
		path = "/" + path
	}

	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	return strings.ReplaceAll(path, "//", "/")
}

// Handlers are registered for every method, so a path can belong to only one handler.
func (controller *RESTController) bindHandlerToController(routerService *RouterService, path string) {
	otherController, foundPrevious := routerService.handlerToControllerMap[path]

	if foundPrevious {
		panic(fmt.Sprintf("A handler is already registered for path '%s' by controller '%s'", path, otherController.name))
	}

	routerService.handlerToControllerMap[path] = controller
}

func createHandler(handler HandlerFunction) MiddlewareFunc {
	return func(c *RequestContext) {
		result := handler(c)

		if result == nil {
			GetLogger(c).Error("Handler returned a nil result", "path", c.FullPath())
			c.JSON(http.StatusInternalServerError, InternalServerErrorResult("Internal server error").ToJSON())
			return
		}

		c.JSON(result.StatusCode, result.ToJSON())
	}
}

func NewRESTController(name, mountPoint string, prepare func(*RouterService, *RESTController)) *RESTController {
	mountPoint = strings.ReplaceAll("/"+mountPoint, "//", "/")

	return &RESTController{
		name:       name,
		mountPoint: mountPoint,
		prepare:    prepare,
	}
}

// addHandler mounts the request gate in front of handler: rate limit, method check, handler.
// CORS and preflight handling run earlier as global middleware. The rate-limit class comes
// from the path.
func (routerService *RouterService) addHandler(
	controller *RESTController,
	method string,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	controller.handlerCount++
	mountPoint := normalizePath(controller, path)
	controller.bindHandlerToController(routerService, mountPoint)

	resolved := ratelimit.ResolveRouteClass(mountPoint, routerService.classes)

	chain := []MiddlewareFunc{routerService.rateLimitMiddleware(resolved), methodGuard(method)}
	chain = append(chain, middlewares...)
	chain = append(chain, createHandler(handler))

	routerService.engine.Any(mountPoint, chain...)
	routerService.logger.Debug("Handler registered", "method", method, "path", mountPoint, "rate_limit_class", resolved)
}

func (routerService *RouterService) AddPostHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, http.MethodPost, path, handler, middlewares...)
}

func (routerService *RouterService) AddGetHandler(
	controller *RESTController,
	path string,
	handler HandlerFunction,
	middlewares ...MiddlewareFunc,
) {
	routerService.addHandler(controller, http.MethodGet, path, handler, middlewares...)
}
