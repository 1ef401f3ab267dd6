package triggersdk

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"
)

// ConfigStorageKey is the key ClientConfig is persisted under.
const ConfigStorageKey = "triggerApiConfig"

// ClientConfig holds the API endpoints and application credentials.
// Any field may be blank.
type ClientConfig struct {
	TriggerURL string `json:"triggerUrl"`
	AuthURL    string `json:"cbisA2aApiUrl"`
	AppID      string `json:"appId"`
	AppSecret  string `json:"appSecret"`
	DemoMode   bool   `json:"demoMode"`
}

// DefaultConfig is used on first start, before anything has been persisted.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		TriggerURL: "https://api-trigger-demo.example.com",
		AuthURL:    "https://auth-demo.example.com/oauth/token",
		AppID:      "trigger-app-demo",
		AppSecret:  "demo-secret-key-replace-with-actual",
	}
}

// MaskedSecret replaces the application secret in Redacted configs.
const MaskedSecret = "********"

// Redacted returns a copy with the secret masked.
func (c ClientConfig) Redacted() ClientConfig {
	if c.AppSecret != "" {
		c.AppSecret = MaskedSecret
	}
	return c
}

// ConfigUpdate is a partial ClientConfig. Nil fields are left unchanged.
type ConfigUpdate struct {
	TriggerURL *string `json:"triggerUrl,omitempty"`
	AuthURL    *string `json:"cbisA2aApiUrl,omitempty"`
	AppID      *string `json:"appId,omitempty"`
	AppSecret  *string `json:"appSecret,omitempty"`
	DemoMode   *bool   `json:"demoMode,omitempty"`
}

// String returns a pointer to s, for building a ConfigUpdate.
func String(s string) *string { return &s }

// Bool returns a pointer to b, for building a ConfigUpdate.
func Bool(b bool) *bool { return &b }

// apply merges u into c and reports whether a token minted under c is no
// longer usable under the result.
func (u ConfigUpdate) apply(c ClientConfig) (ClientConfig, bool) {
	before := c
	if u.TriggerURL != nil {
		c.TriggerURL = *u.TriggerURL
	}
	if u.AuthURL != nil {
		c.AuthURL = *u.AuthURL
	}
	if u.AppID != nil {
		c.AppID = *u.AppID
	}
	if u.AppSecret != nil {
		c.AppSecret = *u.AppSecret
	}
	if u.DemoMode != nil {
		c.DemoMode = *u.DemoMode
	}

	credentialsChanged := c.AuthURL != before.AuthURL ||
		c.AppID != before.AppID ||
		c.AppSecret != before.AppSecret ||
		c.DemoMode != before.DemoMode
	return c, credentialsChanged
}

// ConfigProvider is the key-value storage the client persists its
// configuration through. Get must return ErrConfigNotFound for absent keys.
type ConfigProvider interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// MemoryProvider is an in-process ConfigProvider.
type MemoryProvider struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryProvider returns an empty MemoryProvider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{values: make(map[string][]byte)}
}

// Get implements ConfigProvider.
func (p *MemoryProvider) Get(_ context.Context, key string) ([]byte, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	v, ok := p.values[key]
	if !ok {
		return nil, ErrConfigNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements ConfigProvider.
func (p *MemoryProvider) Put(_ context.Context, key string, value []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.values[key] = append([]byte(nil), value...)
	return nil
}

// loadConfig reads the persisted config, seeding the provider with fallback
// when nothing is stored yet.
func loadConfig(ctx context.Context, provider ConfigProvider, fallback ClientConfig) (ClientConfig, error) {
	raw, err := provider.Get(ctx, ConfigStorageKey)
	if errors.Is(err, ErrConfigNotFound) {
		if err := saveConfig(ctx, provider, fallback); err != nil {
			return ClientConfig{}, err
		}
		return fallback, nil
	}
	if err != nil {
		return ClientConfig{}, fmt.Errorf("failed to load config: %w", err)
	}

	var cfg ClientConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("failed to decode stored config: %w", err)
	}
	return cfg, nil
}

func saveConfig(ctx context.Context, provider ConfigProvider, cfg ClientConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := provider.Put(ctx, ConfigStorageKey, raw); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	return nil
}
