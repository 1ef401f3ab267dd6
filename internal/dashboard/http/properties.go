package http

import (
	"net/http"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// PropertiesHandler handles GET /v1/properties
//
//	@Summary		Application Properties
//	@Description	Passes the application properties document through from the trigger API unchanged.
//	@Tags			Properties
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	object				"properties document"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		502	{object}	httpx.ErrorResponse	"error, error_description, upstream_status"
//	@Router			/v1/properties [get].
func PropertiesHandler(client *triggersdk.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		props, err := client.GetApplicationProperties(r.Context())
		if err != nil {
			writeClientError(w, r, err)
			return
		}

		httpx.NoCache(w)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(props)
	}
}
