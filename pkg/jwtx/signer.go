package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/trigger/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// Signer mints EdDSA tokens that stand in for upstream tokens in demo mode.
// Its key is generated at construction and never leaves the process.
type Signer struct {
	kid    string
	issuer string
	key    ed25519.PrivateKey
}

// NewSigner generates a fresh Ed25519 key for issuer.
func NewSigner(issuer string) (*Signer, error) {
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("jwtx: failed to generate Ed25519 key: %w", err)
	}

	return &Signer{
		kid:    idx.New().String(),
		issuer: issuer,
		key:    key,
	}, nil
}

// Sign issues a token for subject carrying scopes, valid for ttl from now.
func (s *Signer) Sign(subject string, scopes []string, now time.Time, ttl time.Duration) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject,
			ID:        idx.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Scope: strings.Join(scopes, " "),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

// Verify checks that raw was minted by s and is not expired at now.
func (s *Signer) Verify(raw string, now time.Time) (*Claims, error) {
	var claims Claims

	tok, err := jwt.ParseWithClaims(raw, &claims,
		func(t *jwt.Token) (any, error) {
			if kid, _ := t.Header["kid"].(string); kid != s.kid {
				return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
			}
			return s.key.Public(), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("jwtx: invalid token")
	}
	return &claims, nil
}
