package cryptox_test

import (
	"testing"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	a, err := cryptox.RandomHex(8)
	require.NoError(t, err)
	require.Regexp(t, `^[0-9a-f]{16}$`, a)

	b, err := cryptox.RandomHex(8)
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	for _, n := range []int{0, -1} {
		_, err := cryptox.RandomHex(n)
		require.Error(t, err)
	}
}

func TestCorrelationID(t *testing.T) {
	id, err := cryptox.CorrelationID()
	require.NoError(t, err)
	require.Regexp(t, `^[0-9a-f]{32}$`, id)
}

func TestFingerprintToken(t *testing.T) {
	fp := cryptox.FingerprintToken("operator-token")
	require.Len(t, fp, 32)
	require.Equal(t, fp, cryptox.FingerprintToken("operator-token"))
	require.NotEqual(t, fp, cryptox.FingerprintToken("operator-token2"))
	require.NotContains(t, fp, "operator")
}
