package store

import (
	"context"
	"fmt"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
)

// Sealed encrypts every Settings value at rest. Submissions pass through
// untouched since they never hold secrets.
func Sealed(s Store, sealer *cryptox.Sealer) Store {
	return &sealedStore{Store: s, sealer: sealer}
}

type sealedStore struct {
	Store
	sealer *cryptox.Sealer
}

func (s *sealedStore) Settings() Settings {
	return &sealedSettings{inner: s.Store.Settings(), sealer: s.sealer}
}

type sealedSettings struct {
	inner  Settings
	sealer *cryptox.Sealer
}

func (s *sealedSettings) Get(ctx context.Context, key string) ([]byte, error) {
	sealed, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	plain, err := s.sealer.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("store: unseal %q: %w", key, err)
	}
	return plain, nil
}

func (s *sealedSettings) Put(ctx context.Context, key string, value []byte) error {
	sealed, err := s.sealer.Seal(value)
	if err != nil {
		return fmt.Errorf("store: seal %q: %w", key, err)
	}
	return s.inner.Put(ctx, key, sealed)
}

func (s *sealedSettings) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}
