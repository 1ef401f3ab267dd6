package http

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// writeClientError maps a triggersdk error to a JSON error response.
func writeClientError(w http.ResponseWriter, r *http.Request, err error) {
	log := slogx.FromContext(r.Context())

	var urlErr *url.Error
	switch {
	case errors.Is(err, triggersdk.ErrNoFile):
		httpx.WriteError(w, http.StatusBadRequest, "no_file", "Please select a CSV file to upload")
	case errors.Is(err, triggersdk.ErrEmptyFile), errors.Is(err, triggersdk.ErrInvalidFileType):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_file", err.Error())
	case errors.Is(err, triggersdk.ErrFileTooLarge):
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, "file_too_large", err.Error())
	case errors.Is(err, triggersdk.ErrTokenDiscarded):
		httpx.WriteError(w, http.StatusConflict, "config_changed", "Configuration changed during the request, retry")
	default:
		if apiErr, ok := triggersdk.AsAPIError(err); ok {
			log.Warn("upstream rejected request",
				"operation", apiErr.Operation,
				"upstream_status", apiErr.StatusCode,
			)
			httpx.WriteJSON(w, http.StatusBadGateway, httpx.ErrorResponse{
				Error:            "upstream_error",
				ErrorDescription: apiErr.Error(),
				UpstreamStatus:   apiErr.StatusCode,
			})
			return
		}

		if errors.As(err, &urlErr) || errors.Is(err, context.DeadlineExceeded) {
			log.Error("upstream unreachable", "error", err)
			httpx.WriteError(w, http.StatusBadGateway, "upstream_unreachable", "The trigger API could not be reached")
			return
		}

		log.Error("request failed", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Internal server error")
	}
}
