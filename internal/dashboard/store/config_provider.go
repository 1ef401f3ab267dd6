package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/trigger/pkg/triggersdk"
)

// ConfigProviderAdapter adapts Settings to triggersdk.ConfigProvider so the SDK
// never sees store errors it does not know about.
type ConfigProviderAdapter struct {
	settings Settings
}

// NewConfigProvider wraps the settings of s.
func NewConfigProvider(s Store) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{settings: s.Settings()}
}

func (a *ConfigProviderAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := a.settings.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, triggersdk.ErrConfigNotFound
	}
	return v, err
}

func (a *ConfigProviderAdapter) Put(ctx context.Context, key string, value []byte) error {
	return a.settings.Put(ctx, key, value)
}
