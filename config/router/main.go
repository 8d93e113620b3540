package router

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/constants"
	"github.com/akeren/macro-app-api/pkg/ratelimit"
	"github.com/akeren/macro-app-api/pkg/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	// DefaultTimeoutDuration is the default request timeout
	DefaultTimeoutDuration = constants.DefaultRequestTimeout

	corsAllowMethods = "GET,OPTIONS,PATCH,DELETE,POST,PUT"
	corsAllowHeaders = "X-CSRF-Token, X-Requested-With, Accept, Accept-Version, Content-Length, Content-MD5, Content-Type, Date, X-Api-Version, Authorization"
)

type MiddlewareConfig struct {
	TimeoutDuration time.Duration
	MaxBodyBytes    int64
}

type RouterService struct {
	engine           *gin.Engine
	server           *http.Server
	logger           *log.Logger
	rateLimiter      ratelimit.RateLimiter
	classes          map[string]ratelimit.Rule
	trustForwarded   bool
	middlewareConfig *MiddlewareConfig
	metrics          *metrics

	handlerToControllerMap map[string]*RESTController
}

type RouterConfig struct {
	RateLimiter ratelimit.RateLimiter // Optional, defaults to an in-memory fixed-window limiter
	// RouteClasses feeds path based class resolution. Defaults to ratelimit.DefaultRouteClasses.
	RouteClasses      map[string]ratelimit.Rule
	TrustForwardedFor bool
	RequestTimeout    time.Duration
}

func CreateRouterService(logger *log.Logger, routerConfig *RouterConfig) *RouterService {
	if mode, ok := os.LookupEnv("GIN_MODE"); ok && mode != "" {
		logger.Info("Setting Gin mode", "mode", mode)
		gin.SetMode(mode)
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())

	if tracing := utils.TracingSettingsFromEnv(); tracing.Enabled {
		ginRouter.Use(otelgin.Middleware(tracing.ServiceName))
		logger.Info("Tracing middleware enabled", "service", tracing.ServiceName)
	}

	// Gin's ClientIP is only used for request logs; rate limiting has its own client resolution.
	trustedProxies := parseTrustedProxiesEnv(os.Getenv("TRUSTED_PROXIES"))
	if err := ginRouter.SetTrustedProxies(trustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = ginRouter.SetTrustedProxies(nil)
	}

	requestTimeout := routerConfig.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = DefaultTimeoutDuration
	}

	classes := routerConfig.RouteClasses
	if len(classes) == 0 {
		classes = ratelimit.DefaultRouteClasses()
	}

	rs := &RouterService{
		engine:         ginRouter,
		logger:         logger,
		rateLimiter:    routerConfig.RateLimiter,
		classes:        classes,
		trustForwarded: routerConfig.TrustForwardedFor,
		middlewareConfig: &MiddlewareConfig{
			TimeoutDuration: requestTimeout,
			MaxBodyBytes:    maxBodyBytesFromEnv(),
		},

		handlerToControllerMap: make(map[string]*RESTController),
	}

	rs.initRateLimiting()

	// Observability (opt-out): /metrics
	rs.mountMetrics()

	ginRouter.Use(rs.securityHeadersMiddleware())
	ginRouter.Use(rs.correlationIDMiddleware())
	ginRouter.Use(rs.loggerInjectionMiddleware())
	ginRouter.Use(rs.requestLoggingMiddleware())
	ginRouter.Use(rs.corsMiddleware())
	ginRouter.Use(rs.maxBodySizeMiddleware())
	ginRouter.Use(rs.timeoutMiddleware())

	ginRouter.HandleMethodNotAllowed = true
	ginRouter.RedirectTrailingSlash = true

	ginRouter.NoRoute(func(c *gin.Context) {
		GetLogger(c).Warn("Route not found", "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, NotFoundResult("Route not found").ToJSON())
	})

	ginRouter.NoMethod(func(c *gin.Context) {
		GetLogger(c).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, MethodNotAllowedResult().ToJSON())
	})

	rs.server = &http.Server{
		Addr:    ":8080", // Default, will be overridden in RunHTTPServer
		Handler: ginRouter,

		// Gin's Context is not goroutine-safe, so request time limits are enforced here
		// rather than by running handlers in a separate goroutine.
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized")
	return rs
}

func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	if s == "" {
		// Disable trusted proxies: ClientIP() will use RemoteAddr.
		return nil
	}
	if s == "*" {
		// Explicit escape hatch for local/dev.
		return []string{"0.0.0.0/0", "::/0"}
	}
	parts := strings.Split(s, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}
	if len(proxies) == 0 {
		return nil
	}
	return proxies
}

func maxBodyBytesFromEnv() int64 {
	maxBytes := constants.DefaultMaxRequestBodyBytes
	if raw := strings.TrimSpace(os.Getenv("MAX_REQUEST_BODY_BYTES")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			maxBytes = parsed
		}
	}
	return maxBytes
}

func (routerService *RouterService) initRateLimiting() {
	if routerService.rateLimiter != nil {
		routerService.logger.Info("Rate limiting initialized", "classes", len(routerService.classes))
		return
	}

	routerService.rateLimiter = ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Store:   ratelimit.NewMemoryStore(),
		Classes: routerService.classes,
		Logger:  routerService.logger,
	})
	routerService.logger.Warn("No counter store configured; rate limiting with an in-memory store")
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

func (routerService *RouterService) Cleanup() {
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	routerService.logger.Info("Mounting controller",
		"name", controller.name,
		"path", controller.mountPoint,
	)

	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"handlers", controller.handlerCount,
	)
}

// MountHealthCheck registers an operational endpoint outside the rate-limited API surface.
func (routerService *RouterService) MountHealthCheck(path string, handler HandlerFunction) {
	routerService.engine.GET(path, createHandler(handler))
}

func (routerService *RouterService) RunHTTPServer() error {
	appPort, ok := os.LookupEnv("APP_PORT")
	if !ok || appPort == "" {
		appPort = "8080"
	}
	addr := ":" + appPort

	// Update server address
	routerService.server.Addr = addr

	routerService.logger.Info("Starting HTTP server", "addr", addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		routerService.logger.Error("Failed to start HTTP server", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully...")
	return routerService.server.Shutdown(ctx)
}
