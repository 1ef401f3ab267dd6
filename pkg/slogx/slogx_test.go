package slogx

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}

	for in, want := range tests {
		require.Equal(t, want, parseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := New(Config{Service: "trigger-dashboard", Version: "v1", Env: "test", Format: "json", Output: &buf})
	logger.Info("token generated", "app_id", "app-1", "app_secret", "s3cret", "access_token", "eyJ...")

	out := buf.String()
	require.Contains(t, out, `"service":"trigger-dashboard"`)
	require.Contains(t, out, `"app_id":"app-1"`)
	require.NotContains(t, out, "s3cret")
	require.NotContains(t, out, "eyJ")
	require.Equal(t, 2, strings.Count(out, Redacted))
	require.Same(t, logger, slog.Default())
}

func TestFromContext_DefaultsWhenMissing(t *testing.T) {
	require.Equal(t, slog.Default(), FromContext(context.Background()))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var ctxLogger *slog.Logger
	h := HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxLogger = FromContext(r.Context())
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/refresh/add", nil))

		require.Equal(t, http.StatusBadGateway, rec.Code)
		require.Len(t, rec.Header().Get(RequestIDHeader), 26)
		require.NotSame(t, base, ctxLogger)

		out := buf.String()
		require.Contains(t, out, `"status":502`)
		require.Contains(t, out, `"bytes":13`)
		require.Contains(t, out, `"level":"WARN"`)
		require.Contains(t, out, `"path":"/v1/refresh/add"`)
	})

	tests := []struct {
		name     string
		supplied string
		keep     bool
	}{
		{"keeps a sane id", "caller-id.42", true},
		{"replaces newlines", "evil\nid", false},
		{"replaces overlong ids", strings.Repeat("a", maxRequestIDLen+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/livez", nil)
			req.Header.Set(RequestIDHeader, tt.supplied)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if tt.keep {
				require.Equal(t, tt.supplied, rec.Header().Get(RequestIDHeader))
			} else {
				require.NotEqual(t, tt.supplied, rec.Header().Get(RequestIDHeader))
			}
		})
	}
}
