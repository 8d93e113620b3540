package config

import (
	"testing"
	"time"

	"github.com/akeren/macro-app-api/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestRouteClassesFromEnv_Defaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")

	assert.Equal(t, ratelimit.DefaultRouteClasses(), RouteClassesFromEnv())
}

func TestRouteClassesFromEnv_OverridesDefaultClassOnly(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "100")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")

	classes := RouteClassesFromEnv()

	assert.Equal(t, ratelimit.Rule{MaxRequests: 100, Window: 2 * time.Minute}, classes[ratelimit.ClassDefault])
	assert.Equal(t, ratelimit.DefaultRouteClasses()[ratelimit.ClassAuth], classes[ratelimit.ClassAuth])
	assert.Equal(t, ratelimit.DefaultRouteClasses()[ratelimit.ClassChat], classes[ratelimit.ClassChat])
}

func TestRouteClassesFromEnv_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("RATE_LIMIT_REQUESTS", "-3")
	t.Setenv("RATE_LIMIT_WINDOW", "500ms")

	classes := RouteClassesFromEnv()
	assert.Equal(t, ratelimit.DefaultRouteClasses()[ratelimit.ClassDefault], classes[ratelimit.ClassDefault])
}

func TestNewAppConfig_Defaults(t *testing.T) {
	for _, key := range []string{"RATE_LIMIT_TRUST_FORWARDED", "OUTBOUND_TIMEOUT", "OPENAI_MODEL", "OPENAI_BASE_URL", "INSTACART_API_URL", "REQUEST_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg := NewAppConfig()
	assert.True(t, cfg.TrustForwardedFor)
	assert.Equal(t, 10*time.Second, cfg.OutboundTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gpt-4", cfg.OpenAIModel)
	assert.Equal(t, "https://api.instacart.com/v2", cfg.InstacartBaseURL)
	assert.Empty(t, cfg.OpenAIBaseURL)
}

func TestNewAppConfig_TrustForwardedCanBeDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_TRUST_FORWARDED", "false")

	assert.False(t, NewAppConfig().TrustForwardedFor)
}
