package triggersdk_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// upstream fakes the token, remediation and properties endpoints.
type upstream struct {
	*httptest.Server

	tokenCalls       atomic.Int32
	remediationCalls atomic.Int32
	propertiesCalls  atomic.Int32

	mu          sync.Mutex
	token       http.HandlerFunc
	remediation http.HandlerFunc
	properties  http.HandlerFunc
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{
		token: jsonHandler(http.StatusOK, triggersdk.TokenResponse{
			AccessToken: "T",
			ExpiresIn:   120,
			TokenType:   "bearer",
		}),
		remediation: jsonHandler(http.StatusOK, triggersdk.RemediationResult{Status: "OK", Message: "done"}),
		properties:  jsonHandler(http.StatusOK, map[string]any{"feature": "on"}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		u.tokenCalls.Add(1)
		u.handler(&u.token)(w, r)
	})
	mux.HandleFunc("POST /v2/remediation", func(w http.ResponseWriter, r *http.Request) {
		u.remediationCalls.Add(1)
		u.handler(&u.remediation)(w, r)
	})
	mux.HandleFunc("GET /v1/application/properties/", func(w http.ResponseWriter, r *http.Request) {
		u.propertiesCalls.Add(1)
		u.handler(&u.properties)(w, r)
	})

	u.Server = httptest.NewServer(mux)
	t.Cleanup(u.Close)
	return u
}

func (u *upstream) handler(h *http.HandlerFunc) http.HandlerFunc {
	u.mu.Lock()
	defer u.mu.Unlock()
	return *h
}

func (u *upstream) setToken(h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.token = h
}

func (u *upstream) setRemediation(h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.remediation = h
}

func (u *upstream) setProperties(h http.HandlerFunc) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.properties = h
}

func (u *upstream) config() triggersdk.ClientConfig {
	return triggersdk.ClientConfig{
		TriggerURL: u.URL,
		AuthURL:    u.URL + "/oauth/token",
		AppID:      "app-1",
		AppSecret:  "s3cret",
	}
}

func jsonHandler(status int, v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
}

func statusHandler(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// newClient builds a client pointed at u with a fake clock.
func newClient(t *testing.T, u *upstream, opts ...triggersdk.Option) (*triggersdk.Client, *fakeClock) {
	t.Helper()

	clock := newFakeClock()
	opts = append([]triggersdk.Option{
		triggersdk.WithDefaultConfig(u.config()),
		triggersdk.WithClock(clock.Now),
		triggersdk.WithHTTPClient(u.Client()),
	}, opts...)

	client, err := triggersdk.New(context.Background(), triggersdk.NewMemoryProvider(), opts...)
	require.NoError(t, err)
	return client, clock
}

func csvFile() *triggersdk.File {
	return &triggersdk.File{Name: "accounts.csv", Content: []byte("account\n1001\n1002\n")}
}

// failingProvider fails every Put.
type failingProvider struct {
	*triggersdk.MemoryProvider
}

func (failingProvider) Put(context.Context, string, []byte) error {
	return errors.New("disk full")
}
