package triggersdk

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/jwtx"
	"github.com/aussiebroadwan/trigger/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

// DefaultExpiryMargin is how long before hard expiry a token stops counting as valid.
const DefaultExpiryMargin = 60 * time.Second

// Client talks to the token, remediation and properties endpoints.
type Client struct {
	httpClient     *http.Client
	provider       ConfigProvider
	now            func() time.Time
	margin         time.Duration
	maxUploadBytes int64
	log            *slog.Logger
	defaults       ClientConfig

	// updateMu serializes UpdateConfig so the persisted and in-memory
	// configs cannot diverge.
	updateMu sync.Mutex

	mu     sync.RWMutex
	config ClientConfig
	token  *accessToken

	// generation increments whenever credentials change. A token minted
	// under an older generation is discarded.
	generation uint64

	flight singleflight.Group

	demoSigner *jwtx.Signer
}

// accessToken is the held token. It is replaced, never mutated.
type accessToken struct {
	value     string
	expiresAt time.Time
	claims    *jwtx.Claims
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithExpiryMargin replaces DefaultExpiryMargin.
func WithExpiryMargin(margin time.Duration) Option {
	return func(c *Client) { c.margin = margin }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithMaxUploadBytes rejects larger files with ErrFileTooLarge. Zero means no limit.
func WithMaxUploadBytes(n int64) Option {
	return func(c *Client) { c.maxUploadBytes = n }
}

// WithDefaultConfig replaces DefaultConfig as the first-start configuration.
func WithDefaultConfig(cfg ClientConfig) Option {
	return func(c *Client) { c.defaults = cfg }
}

// New builds a Client, restoring its configuration from provider or seeding
// provider with the defaults. A nil provider keeps configuration in memory.
func New(ctx context.Context, provider ConfigProvider, opts ...Option) (*Client, error) {
	if provider == nil {
		provider = NewMemoryProvider()
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		provider:   provider,
		now:        time.Now,
		margin:     DefaultExpiryMargin,
		log:        slogx.Discard(),
		defaults:   DefaultConfig(),
	}
	for _, opt := range opts {
		opt(c)
	}

	signer, err := jwtx.NewSigner(demoIssuer)
	if err != nil {
		return nil, err
	}
	c.demoSigner = signer

	cfg, err := loadConfig(ctx, provider, c.defaults)
	if err != nil {
		return nil, err
	}
	c.config = cfg

	return c, nil
}

// GetConfig returns a copy of the current configuration.
func (c *Client) GetConfig() ClientConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// UpdateConfig merges u into the configuration and persists the result.
// Nothing changes if persisting fails.
func (c *Client) UpdateConfig(ctx context.Context, u ConfigUpdate) (ClientConfig, error) {
	c.updateMu.Lock()
	defer c.updateMu.Unlock()

	next, credentialsChanged := u.apply(c.GetConfig())
	if err := saveConfig(ctx, c.provider, next); err != nil {
		return ClientConfig{}, err
	}

	c.mu.Lock()
	c.config = next
	if credentialsChanged {
		c.token = nil
		c.generation++
	}
	c.mu.Unlock()

	c.log.InfoContext(ctx, "trigger api config updated",
		"app_id", next.AppID,
		"demo_mode", next.DemoMode,
		"token_dropped", credentialsChanged,
	)

	return next, nil
}
