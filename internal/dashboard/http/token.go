package http

import (
	"net/http"

	"github.com/aussiebroadwan/trigger/pkg/httpx"
	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// TokenHandler generates access tokens and reports on the held one.
type TokenHandler struct {
	Client *triggersdk.Client
}

// HandleGenerate handles POST /v1/token
//
//	@Summary		Generate Access Token
//	@Description	Requests a new signed access token from the token endpoint and holds it for later uploads.
//	@Description	The token value itself is never returned.
//	@Tags			Token
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	GenerateTokenResponse	"token_type, expires_in, status"
//	@Failure		401	{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		429	{object}	httpx.ErrorResponse		"error, error_description"
//	@Failure		502	{object}	httpx.ErrorResponse		"error, error_description, upstream_status"
//	@Router			/v1/token [post].
func (h *TokenHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	resp, err := h.Client.GenerateToken(r.Context())
	if err != nil {
		writeClientError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, GenerateTokenResponse{
		TokenType: resp.TokenType,
		ExpiresIn: resp.ExpiresIn,
		Status:    h.Client.TokenStatus(),
	})
}

// HandleStatus handles GET /v1/token/status
//
//	@Summary		Token Status
//	@Description	Reports whether a token is held, whether it is still valid and how long until it expires (milliseconds).
//	@Tags			Token
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	triggersdk.TokenStatus	"hasToken, expiresIn, valid"
//	@Failure		401	{object}	httpx.ErrorResponse		"error, error_description"
//	@Router			/v1/token/status [get].
func (h *TokenHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Client.TokenStatus())
}
