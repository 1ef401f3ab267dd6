package triggersdk

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/cryptox"
	"github.com/aussiebroadwan/trigger/pkg/jwtx"
	"github.com/goccy/go-json"
)

// SignatureVersion is sent as X-Auth-Version and is part of the signed string.
const SignatureVersion = "2"

// Token request headers.
const (
	HeaderCorrelationID = "X-CorrelationID"
	HeaderSignature     = "X-Auth-Signature"
	HeaderTimestamp     = "X-Auth-Timestamp"
	HeaderAppID         = "X-Auth-AppID"
	HeaderVersion       = "X-Auth-Version"
)

// maxTokenLifetime caps expires_in so the expiry arithmetic cannot overflow.
const maxTokenLifetime = 365 * 24 * time.Hour

// ComputeSignature signs "{appID}-{version}-{unixMillis}" with appSecret.
// It returns the signature and the timestamp string that was signed.
func ComputeSignature(appID, appSecret string, at time.Time) (signature, timestamp string) {
	timestamp = strconv.FormatInt(at.UnixMilli(), 10)
	base := appID + "-" + SignatureVersion + "-" + timestamp
	return cryptox.SignHMAC(appSecret, base), timestamp
}

// GenerateToken requests a new access token and holds it, replacing any
// previous token.
func (c *Client) GenerateToken(ctx context.Context) (*TokenResponse, error) {
	c.mu.RLock()
	cfg, generation := c.config, c.generation
	c.mu.RUnlock()

	var (
		tokenResp *TokenResponse
		err       error
	)
	if cfg.DemoMode {
		tokenResp, err = demoToken(c.demoSigner, cfg, c.now())
	} else {
		tokenResp, err = c.requestToken(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	if !c.holdToken(tokenResp, generation, cfg.DemoMode) {
		c.log.WarnContext(ctx, "discarded token minted under superseded config")
		return nil, ErrTokenDiscarded
	}
	return tokenResp, nil
}

func (c *Client) requestToken(ctx context.Context, cfg ClientConfig) (*TokenResponse, error) {
	correlationID, err := cryptox.CorrelationID()
	if err != nil {
		return nil, err
	}
	signature, timestamp := ComputeSignature(cfg.AppID, cfg.AppSecret, c.now())

	body, err := json.Marshal(tokenRequest{Scope: TokenScopes})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, cfg.AuthURL, bytes.NewReader(body), map[string]string{
		"Content-Type":      "application/json",
		HeaderCorrelationID: correlationID,
		HeaderSignature:     signature,
		HeaderTimestamp:     timestamp,
		HeaderAppID:         cfg.AppID,
		HeaderVersion:       SignatureVersion,
	})
	if err != nil {
		return nil, err
	}

	var tokenResp TokenResponse
	if err := decodeJSON(resp, OpTokenGeneration, &tokenResp); err != nil {
		c.log.WarnContext(ctx, "token generation failed",
			"correlation_id", correlationID,
			"error", err,
		)
		return nil, err
	}

	c.log.DebugContext(ctx, "token generated",
		"correlation_id", correlationID,
		"expires_in", tokenResp.ExpiresIn,
		"token_fp", cryptox.FingerprintToken(tokenResp.AccessToken),
	)
	return &tokenResp, nil
}

// tokenLifetime converts expires_in seconds to a duration within
// [0, maxTokenLifetime].
func tokenLifetime(expiresIn int64) time.Duration {
	if expiresIn <= 0 {
		return 0
	}
	if expiresIn > int64(maxTokenLifetime/time.Second) {
		return maxTokenLifetime
	}
	return time.Duration(expiresIn) * time.Second
}

// holdToken stores tokenResp unless the config changed since it was
// requested, and reports whether it did. An exp claim earlier than
// expires_in wins.
func (c *Client) holdToken(tokenResp *TokenResponse, generation uint64, demo bool) bool {
	now := c.now()
	held := &accessToken{
		value:     tokenResp.AccessToken,
		expiresAt: now.Add(tokenLifetime(tokenResp.ExpiresIn)),
	}

	var (
		claims *jwtx.Claims
		err    error
	)
	if demo {
		claims, err = c.demoSigner.Verify(tokenResp.AccessToken, now)
	} else {
		claims, err = jwtx.InspectUnverified(tokenResp.AccessToken)
	}
	if err == nil {
		held.claims = claims
		if exp := claims.Expiry(); !exp.IsZero() && exp.Before(held.expiresAt) {
			held.expiresAt = exp
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if generation != c.generation {
		return false
	}
	c.token = held
	return true
}

// EnsureValidToken generates a token unless the held one is still valid.
// Concurrent callers share a single token request; a caller whose ctx ends
// stops waiting but does not cancel the shared request.
func (c *Client) EnsureValidToken(ctx context.Context) error {
	if c.IsTokenValid() {
		return nil
	}

	ch := c.flight.DoChan("token", func() (any, error) {
		if c.IsTokenValid() {
			return nil, nil
		}
		_, err := c.GenerateToken(context.WithoutCancel(ctx))
		return nil, err
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

// bearer returns a valid access token, generating one first if needed.
func (c *Client) bearer(ctx context.Context) (string, error) {
	if err := c.EnsureValidToken(ctx); err != nil {
		return "", err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.token == nil {
		return "", ErrTokenDiscarded
	}
	return c.token.value, nil
}

// IsTokenValid reports whether a token is held and the expiry margin has not
// been reached.
func (c *Client) IsTokenValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.validLocked(c.now())
}

func (c *Client) validLocked(now time.Time) bool {
	return c.token != nil && now.Before(c.token.expiresAt.Add(-c.margin))
}

// TokenStatus describes the held token.
func (c *Client) TokenStatus() TokenStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.token == nil {
		return TokenStatus{}
	}

	now := c.now()
	expiresAt := c.token.expiresAt
	status := TokenStatus{
		HasToken:  true,
		ExpiresIn: max(expiresAt.Sub(now).Milliseconds(), 0),
		Valid:     c.validLocked(now),
		ExpiresAt: &expiresAt,
	}
	if c.token.claims != nil {
		status.Subject = c.token.claims.Subject
		status.Scopes = c.token.claims.AllScopes()
	}
	return status
}
