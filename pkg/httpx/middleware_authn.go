package httpx

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/trigger/pkg/slogx"
)

// RequireBearerToken rejects requests whose Authorization header does not
// carry the expected static token. An empty expected token disables the check.
func RequireBearerToken(expected string) Middleware {
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}

		want := []byte(expected)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			if subtle.ConstantTimeCompare([]byte(raw), want) != 1 {
				slogx.FromContext(r.Context()).Warn("operator token mismatch")
				writeBearerError(w, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}

	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
