package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// correlationIDBytes gives 128 random bits, 32 hex characters.
const correlationIDBytes = 16

// RandomHex returns n random bytes encoded as lowercase hex.
func RandomHex(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("cryptox: random size must be positive, got %d", n)
	}

	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// CorrelationID returns 32 lowercase hex characters for X-CorrelationID.
func CorrelationID() (string, error) {
	return RandomHex(correlationIDBytes)
}

// FingerprintToken returns a stable SHA-256 fingerprint of token, truncated
// to 32 hex characters. It is safe to log where the token is not.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:16])
}
