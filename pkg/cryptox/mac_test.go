package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSignHMAC_KnownVector(t *testing.T) {
	// RFC 4231 test case 2, base64url encoded.
	sig := cryptox.SignHMAC("Jefe", "what do ya want for nothing?")
	require.Equal(t, "W9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM", sig)
}

func TestSignHMAC_DependsOnSecretAndMessage(t *testing.T) {
	base := cryptox.SignHMAC("secret", "app-2-1700000000000")

	require.Equal(t, base, cryptox.SignHMAC("secret", "app-2-1700000000000"))
	require.NotEqual(t, base, cryptox.SignHMAC("other", "app-2-1700000000000"))
	require.NotEqual(t, base, cryptox.SignHMAC("secret", "app-2-1700000000001"))
	require.NotEmpty(t, cryptox.SignHMAC("", "app-2-1700000000000"))
}
