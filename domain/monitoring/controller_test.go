package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/macro-app-api/config/router"
	"github.com/akeren/macro-app-api/internal/log"
	"github.com/akeren/macro-app-api/pkg/ratelimit"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func newRedisStore(t *testing.T) (*miniredis.Miniredis, ratelimit.CounterStore) {
	t.Helper()

	mr := miniredis.RunT(t)
	store := ratelimit.NewRedisStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = store.Close() })
	return mr, store
}

func getHealth(t *testing.T, db *gorm.DB, store Pinger) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rs := router.CreateRouterService(log.NewDiscardLogger(), &router.RouterConfig{RequestTimeout: 5 * time.Second})
	NewMonitoringController(db, log.NewDiscardLogger(), store).Mount(rs)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHealth_AllHealthy(t *testing.T) {
	_, store := newRedisStore(t)

	w, body := getHealth(t, newTestDB(t), store)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, ServiceName, body["service"])
	assert.Equal(t, float64(1), body["database"])
	assert.Equal(t, float64(1), body["counter_store"])
	assert.Contains(t, body, "uptime")
}

func TestHealth_CounterStoreDownIsDegraded(t *testing.T) {
	mr, store := newRedisStore(t)
	mr.Close()

	w, body := getHealth(t, newTestDB(t), store)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, float64(0), body["counter_store"])
}

func TestHealth_DatabaseDownIs503(t *testing.T) {
	db := newTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w, body := getHealth(t, db, ratelimit.NewMemoryStore())

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "down", body["status"])
	assert.Equal(t, float64(0), body["database"])
}

func TestHealth_IsNotRateLimited(t *testing.T) {
	limiter := ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Store:   ratelimit.NewMemoryStore(),
		Classes: map[string]ratelimit.Rule{ratelimit.ClassDefault: {MaxRequests: 1, Window: time.Minute}},
	})
	rs := router.CreateRouterService(log.NewDiscardLogger(), &router.RouterConfig{RateLimiter: limiter})
	NewMonitoringController(newTestDB(t), log.NewDiscardLogger(), ratelimit.NewMemoryStore()).Mount(rs)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestHealthStatus_Fields(t *testing.T) {
	status := HealthStatus{Status: "degraded", Service: ServiceName, Database: 1, CounterStore: 0, Uptime: 42}

	assert.Equal(t, map[string]any{
		"status":        "degraded",
		"service":       ServiceName,
		"database":      1,
		"counter_store": 0,
		"uptime":        42,
	}, map[string]any(status.Fields()))
}
