// Package jwtx inspects access tokens issued by the upstream token endpoint.
//
// Upstream tokens are opaque to this service since the upstream API verifies
// them. Their claims are read without signature verification and only ever
// used for display. Signer mints look-alike tokens for demo mode.
package jwtx

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned when a token is not a parseable JWT.
var ErrNotJWT = errors.New("jwtx: token is not a jwt")

// Claims are the access-token claims worth surfacing to an operator.
type Claims struct {
	jwt.RegisteredClaims

	// Scopes may arrive as a space-delimited "scope" string or a "scopes" array.
	Scope  string   `json:"scope,omitempty"`
	Scopes []string `json:"scopes,omitempty"`
}

// AllScopes merges the two scope encodings.
func (c *Claims) AllScopes() []string {
	if len(c.Scopes) > 0 {
		return c.Scopes
	}
	return strings.Fields(c.Scope)
}

// Expiry returns the exp claim or the zero time.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// InspectUnverified parses raw without checking its signature.
func InspectUnverified(raw string) (*Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, ErrNotJWT
	}

	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, errors.Join(ErrNotJWT, err)
	}
	return &claims, nil
}
