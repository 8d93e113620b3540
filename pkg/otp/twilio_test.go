package otp

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestProvider(t *testing.T, handler http.HandlerFunc) *TwilioVerify {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	provider, err := NewTwilioVerify(Config{
		AccountSID: "AC123",
		AuthToken:  "secret",
		ServiceSID: "VA123",
		Timeout:    2 * time.Second,
		Transport:  rewriteTransport{target: target},
	})
	require.NoError(t, err)

	return provider
}

func TestNewTwilioVerify_RequiresCredentials(t *testing.T) {
	_, err := NewTwilioVerify(Config{AccountSID: "AC123"})
	assert.Error(t, err)
}

func TestStartVerification_SendsSMS(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/Services/VA123/Verifications", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "AC123", user)
		assert.Equal(t, "secret", pass)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "+15551234567", r.PostForm.Get("To"))
		assert.Equal(t, "sms", r.PostForm.Get("Channel"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"VE1","status":"pending"}`))
	})

	status, err := provider.StartVerification(context.Background(), "+15551234567")
	require.NoError(t, err)
	assert.Equal(t, "pending", status)
}

func TestStartVerification_ProviderErrorKeepsMessage(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":60200,"message":"Invalid parameter `+"`To`"+`: 123","status":400}`))
	})

	_, err := provider.StartVerification(context.Background(), "+123")
	require.Error(t, err)

	var providerErr *ProviderError
	require.True(t, errors.As(err, &providerErr))
	assert.Equal(t, "Invalid parameter `To`: 123", providerErr.Message())
}

func TestCheckVerification(t *testing.T) {
	cases := []struct {
		name     string
		status   int
		body     string
		approved bool
		wantErr  bool
	}{
		{name: "approved", status: http.StatusOK, body: `{"status":"approved","valid":true}`, approved: true},
		{name: "wrong code", status: http.StatusOK, body: `{"status":"pending","valid":false}`},
		{name: "expired", status: http.StatusNotFound, body: `{"code":20404,"message":"not found","status":404}`},
		{name: "provider down", status: http.StatusInternalServerError, body: `{"code":20500,"message":"internal","status":500}`, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v2/Services/VA123/VerificationCheck", r.URL.Path)
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "123456", r.PostForm.Get("Code"))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			approved, err := provider.CheckVerification(context.Background(), "+15551234567", "123456")
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.approved, approved)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+15551234567", NormalizePhone("15551234567"))
	assert.Equal(t, "+15551234567", NormalizePhone("+15551234567"))
	assert.Equal(t, "+15551234567", NormalizePhone("  15551234567 "))
	assert.Equal(t, "", NormalizePhone(""))
}
