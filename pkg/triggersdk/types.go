package triggersdk

import (
	"time"

	"github.com/goccy/go-json"
)

// ProcessType selects what the remediation endpoint does with an upload.
type ProcessType string

const (
	ProcessAddRefreshTrigger ProcessType = "ADD_REFRESH_TRIGGER"
	ProcessStopRefresh       ProcessType = "STOP_REFRESH"
)

// DefaultMarketCode is used when a caller passes an empty market code.
const DefaultMarketCode = "036"

// TokenScopes are requested on every token generation.
var TokenScopes = []string{
	"/v1/schedules::post",
	"/v1/remediation::post",
	"/v2/remediation::post",
	"/v1/application/properties/**::GET",
	"/v1/application/properties/**::PATCH",
}

// TokenResponse is the token endpoint's response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"` // seconds
	TokenType   string `json:"token_type"`
}

// tokenRequest is the token endpoint's request body.
type tokenRequest struct {
	Scope []string `json:"scope"`
}

// RemediationResult is the remediation endpoint's response body.
type RemediationResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

// File is an upload candidate.
type File struct {
	Name    string
	Content []byte
}

// TokenStatus describes the held token.
type TokenStatus struct {
	HasToken bool `json:"hasToken"`

	// ExpiresIn is the time left until hard expiry in milliseconds, never negative.
	ExpiresIn int64 `json:"expiresIn"`

	// Valid is false once the expiry margin has been reached.
	Valid bool `json:"valid"`

	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	// Subject and Scopes are only set when the access token is a JWT.
	Subject string   `json:"subject,omitempty"`
	Scopes  []string `json:"scopes,omitempty"`
}

// ApplicationProperties is the properties document exactly as returned.
type ApplicationProperties = json.RawMessage
