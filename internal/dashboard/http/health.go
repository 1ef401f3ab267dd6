package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/trigger/internal/dashboard/store"
	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
)

// LivezHandler godoc
//
//	@Summary		Health Check Endpoint
//	@Description	Liveness probe returning uptime and version. Always 200 while the process runs.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, newHealth("ok", startTime, version))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that also pings the config store.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		resp := newHealth("ok", startTime, version)
		resp.Checks = &HealthChecks{Store: "ok"}

		code := http.StatusOK
		if err := st.Ping(ctx); err != nil {
			slogx.FromContext(ctx).Warn("readiness: store ping failed", "error", err)
			resp.Status = "degraded"
			resp.Checks.Store = "error: " + err.Error()
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, resp)
	}
}

// readyTimeout bounds the store ping.
const readyTimeout = 2 * time.Second

func newHealth(status string, startTime time.Time, version string) HealthResponse {
	return HealthResponse{
		Status:  status,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Version: version,
	}
}
