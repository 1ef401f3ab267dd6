package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("test-master-key-for-encryption-12345"))
	require.NoError(t, err)

	plaintext := []byte(`{"appSecret":"very-secret"}`)

	sealed, err := s.Seal(plaintext)
	require.NoError(t, err)
	require.NotEqual(t, plaintext, sealed)

	opened, err := s.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, plaintext, opened)
}

func TestSeal_RandomNonce(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("test-master-key-multiple-times-xyz"))
	require.NoError(t, err)

	a, err := s.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := s.Seal([]byte("same"))
	require.NoError(t, err)

	require.NotEqual(t, a, b, "multiple seals should produce different ciphertexts")
}

func TestOpen_WrongKey(t *testing.T) {
	s1, err := cryptox.NewSealer([]byte("key-one"))
	require.NoError(t, err)
	s2, err := cryptox.NewSealer([]byte("key-two"))
	require.NoError(t, err)

	sealed, err := s1.Seal([]byte("data"))
	require.NoError(t, err)

	_, err = s2.Open(sealed)
	require.Error(t, err)
}

func TestOpen_TamperedAndShort(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("key"))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("data"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = s.Open(sealed)
	require.Error(t, err)

	_, err = s.Open([]byte("short"))
	require.ErrorIs(t, err, cryptox.ErrCiphertextTooShort)
}

func TestNewSealer_Errors(t *testing.T) {
	_, err := cryptox.NewSealer(nil)
	require.Error(t, err)

	_, err = cryptox.NewSealerFromFile(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}

func TestNewSealerFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master.key")
	require.NoError(t, os.WriteFile(path, []byte("file-key-material"), 0o600))

	fromFile, err := cryptox.NewSealerFromFile(path)
	require.NoError(t, err)
	direct, err := cryptox.NewSealer([]byte("file-key-material"))
	require.NoError(t, err)

	sealed, err := fromFile.Seal([]byte("data"))
	require.NoError(t, err)
	opened, err := direct.Open(sealed)
	require.NoError(t, err)
	require.Equal(t, []byte("data"), opened)
}
