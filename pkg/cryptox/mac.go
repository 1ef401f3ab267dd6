package cryptox

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// SignHMAC returns the base64url (no padding) HMAC-SHA256 of message keyed by
// secret. An empty secret still produces a value, it just proves nothing.
func SignHMAC(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(message))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
