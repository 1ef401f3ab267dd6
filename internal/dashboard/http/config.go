package http

import (
	"net/http"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
	"github.com/goccy/go-json"
)

// ConfigHandler reads and updates the trigger API configuration.
type ConfigHandler struct {
	Client *triggersdk.Client
}

// HandleGet handles GET /v1/config
//
//	@Summary		Get Trigger API Configuration
//	@Description	Returns the endpoints, application id and demo flag. The application secret is masked.
//	@Tags			Config
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	ConfigResponse		"current configuration"
//	@Failure		401	{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/config [get].
func (h *ConfigHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, newConfigResponse(h.Client.GetConfig()))
}

// HandlePut handles PUT /v1/config
//
//	@Summary		Update Trigger API Configuration
//	@Description	Merges the given fields into the configuration and persists it. Omitted fields are kept.
//	@Description	Sending the masked secret back leaves the secret unchanged. Changing credentials discards the held token.
//	@Tags			Config
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		ConfigUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	ConfigResponse		"updated configuration"
//	@Failure		400		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	httpx.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	httpx.ErrorResponse	"error, error_description"
//	@Router			/v1/config [put].
func (h *ConfigHandler) HandlePut(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req ConfigUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON in request body")
		return
	}

	// The masked value is what GET returned, not a new secret
	if req.AppSecret != nil && *req.AppSecret == triggersdk.MaskedSecret {
		req.AppSecret = nil
	}

	cfg, err := h.Client.UpdateConfig(ctx, triggersdk.ConfigUpdate{
		TriggerURL: req.TriggerURL,
		AuthURL:    req.AuthURL,
		AppID:      req.AppID,
		AppSecret:  req.AppSecret,
		DemoMode:   req.DemoMode,
	})
	if err != nil {
		log.Error("failed to update config", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "Failed to save configuration")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newConfigResponse(cfg))
}
