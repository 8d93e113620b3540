package instacart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/akeren/macro-app-api/pkg/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedCall struct {
	Path string
	Body map[string]any
}

type fakeInstacart struct {
	mu     sync.Mutex
	calls  []recordedCall
	status map[string]int
	cartID string
}

func (f *fakeInstacart) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer ic-key", r.Header.Get("Authorization"))

		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		f.calls = append(f.calls, recordedCall{Path: r.URL.Path, Body: body})
		status := f.status[r.URL.Path]
		f.mu.Unlock()

		if status != 0 {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":"nope"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/carts":
			_, _ = w.Write([]byte(`{"id":` + f.cartID + `}`))
		case "/carts/c-1/items", "/carts/77/items":
			_, _ = w.Write([]byte(`{}`))
		case "/carts/c-1/share", "/carts/77/share":
			_, _ = w.Write([]byte(`{"share_url":"https://instacart.example/s/abc"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (f *fakeInstacart) paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.Path
	}
	return out
}

func newTestClient(t *testing.T, fake *fakeInstacart) *Client {
	t.Helper()

	server := httptest.NewServer(fake.handler(t))
	t.Cleanup(server.Close)

	c, err := NewClient(Config{
		APIKey:  "ic-key",
		StoreID: "store-9",
		BaseURL: server.URL,
		Timeout: 2 * time.Second,
		Retry:   &retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	})
	require.NoError(t, err)
	return c
}

func TestCreateShoppingList_HappyPath(t *testing.T) {
	fake := &fakeInstacart{cartID: `"c-1"`}
	c := newTestClient(t, fake)

	url, err := c.CreateShoppingList(context.Background(), []Item{
		{Name: "chicken breast", Amount: 2, Unit: "lb"},
		{Name: "rice"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://instacart.example/s/abc", url)

	assert.Equal(t, []string{"/carts", "/carts/c-1/items", "/carts/c-1/share"}, fake.paths())
	assert.Equal(t, "store-9", fake.calls[0].Body["store_id"])

	items := fake.calls[1].Body["items"].([]any)
	require.Len(t, items, 2)
	assert.Equal(t, map[string]any{"name": "chicken breast", "quantity": 2.0, "unit": "lb"}, items[0])
	assert.Equal(t, map[string]any{"name": "rice", "quantity": 1.0, "unit": "unit"}, items[1])
}

func TestCreateShoppingList_NumericCartID(t *testing.T) {
	fake := &fakeInstacart{cartID: `77`}
	c := newTestClient(t, fake)

	_, err := c.CreateShoppingList(context.Background(), []Item{{Name: "eggs"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"/carts", "/carts/77/items", "/carts/77/share"}, fake.paths())
}

func TestCreateShoppingList_AbortsOnFirstFailedStep(t *testing.T) {
	cases := []struct {
		name      string
		failPath  string
		wantStep  string
		wantPaths []string
	}{
		{
			name:      "create cart fails",
			failPath:  "/carts",
			wantStep:  StepCreateCart,
			wantPaths: []string{"/carts"},
		},
		{
			name:      "add items fails",
			failPath:  "/carts/c-1/items",
			wantStep:  StepAddItems,
			wantPaths: []string{"/carts", "/carts/c-1/items"},
		},
		{
			name:      "share fails",
			failPath:  "/carts/c-1/share",
			wantStep:  StepShareCart,
			wantPaths: []string{"/carts", "/carts/c-1/items", "/carts/c-1/share"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeInstacart{cartID: `"c-1"`, status: map[string]int{tc.failPath: http.StatusServiceUnavailable}}
			c := newTestClient(t, fake)

			_, err := c.CreateShoppingList(context.Background(), []Item{{Name: "eggs"}})
			require.Error(t, err)

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, tc.wantStep, stepErr.Step)

			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)

			// Status failures are not retried, and later steps never run.
			assert.Equal(t, tc.wantPaths, fake.paths())
		})
	}
}

func TestCreateShoppingList_RetriesTransportFailures(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	c, err := NewClient(Config{
		APIKey:  "ic-key",
		StoreID: "store-9",
		BaseURL: "http://" + addr,
		Timeout: time.Second,
		Retry:   &retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	})
	require.NoError(t, err)

	_, err = c.CreateShoppingList(context.Background(), []Item{{Name: "eggs"}})
	require.Error(t, err)
	assert.True(t, retry.IsMaxRetriesExceeded(err), "connection refused should be retried until attempts run out: %v", err)
}

func TestCreateShoppingList_TimeoutIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(Config{
		APIKey:  "ic-key",
		StoreID: "store-9",
		BaseURL: server.URL,
		Timeout: 50 * time.Millisecond,
		Retry:   &retry.Config{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: time.Millisecond, Multiplier: 1},
	})
	require.NoError(t, err)

	_, err = c.CreateShoppingList(context.Background(), []Item{{Name: "eggs"}})

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, StepCreateCart, stepErr.Step)
	assert.False(t, retry.IsMaxRetriesExceeded(err))
	assert.Equal(t, int32(1), hits.Load(), "a cart request that may have landed must not be sent again")
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, isRetryable(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("no route to host")}))
	assert.True(t, isRetryable(fmt.Errorf("post: %w", syscall.ECONNREFUSED)))
	assert.True(t, isRetryable(&net.DNSError{Err: "no such host", Name: "api.instacart.com"}))
	assert.False(t, isRetryable(&net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}))
	assert.False(t, isRetryable(errors.New("net/http: request canceled (Client.Timeout exceeded)")))
	assert.False(t, isRetryable(&StatusError{StatusCode: http.StatusBadGateway}))
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{APIKey: "k"})
	assert.Error(t, err)
}
