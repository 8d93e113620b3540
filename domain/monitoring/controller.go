package monitoring

import (
	"context"
	"net/http"
	"time"

	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ServiceName = "macro-app-api"

	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"

	checkTimeout = 2 * time.Second
)

// Pinger is satisfied by the rate limiter's counter store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Status       string
	Service      string
	Database     int // 1 = healthy, 0 = unhealthy
	CounterStore int // 1 = healthy, 0 = unhealthy or not configured
	Uptime       int // seconds
}

// Fields is the response body of GET /health, merged into the result envelope.
func (s HealthStatus) Fields() gin.H {
	return gin.H{
		"status":        s.Status,
		"service":       s.Service,
		"database":      s.Database,
		"counter_store": s.CounterStore,
		"uptime":        s.Uptime,
	}
}

type MonitoringController struct {
	db           *gorm.DB
	logger       *log.Logger
	counterStore Pinger
	startTime    time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, counterStore Pinger) *MonitoringController {
	return &MonitoringController{
		db:           db,
		logger:       logger,
		counterStore: counterStore,
		startTime:    time.Now(),
	}
}

// Mount registers GET /health outside the rate-limited API surface.
func (ctrl *MonitoringController) Mount(routerService *router.RouterService) {
	routerService.MountHealthCheck("/health", ctrl.healthCheck)
}

// A down database is 503. A down counter store only degrades the service since the rate
// limiter fails open.
func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	status := ctrl.performHealthChecks(c.Request.Context(), logger)

	result := router.OKResult(status.Fields())
	if status.Status == statusDown {
		result.StatusCode = http.StatusServiceUnavailable
		result.Success = false
		result.Error = "Service unavailable"
	}
	return result
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Status:  statusOK,
		Service: ServiceName,
		Uptime:  int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	if ctrl.checkCounterStore(ctx) {
		status.CounterStore = 1
	} else {
		logger.Warn("Counter store health check failed")
	}

	switch {
	case status.Database == 0:
		status.Status = statusDown
	case status.CounterStore == 0:
		status.Status = statusDegraded
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}

func (ctrl *MonitoringController) checkCounterStore(ctx context.Context) bool {
	if ctrl.counterStore == nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()
	return ctrl.counterStore.Ping(ctx) == nil
}
