package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single failure returned by Verify. Malformed
// encoding, signature mismatch, missing subject and expiry all collapse into
// it: callers only need to know the bearer is unauthenticated, and keeping
// the causes indistinct leaks nothing to an attacker probing tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenConfig is the immutable signing configuration injected into the codec
// at construction. It is read once at startup and never mutated afterward.
type TokenConfig struct {
	// Secret is the HMAC signing key shared by issue and verify.
	Secret string
	// TTL is the default validity window for issued tokens.
	TTL time.Duration
}

// TokenCodec issues and verifies HS256-signed bearer tokens carrying a
// subject username. Tokens are stateless: nothing is persisted, and an
// issued token stays valid until its expiry regardless of later account
// changes.
type TokenCodec struct {
	cfg TokenConfig
}

// NewTokenCodec builds a codec around cfg. A non-positive TTL falls back to
// one hour.
func NewTokenCodec(cfg TokenConfig) *TokenCodec {
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	return &TokenCodec{cfg: cfg}
}

// TTL exposes the configured validity window.
func (c *TokenCodec) TTL() time.Duration {
	return c.cfg.TTL
}

// Issue signs a token asserting subject for the given ttl. A non-positive
// ttl uses the configured default.
func (c *TokenCodec) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl == 0 {
		ttl = c.cfg.TTL
	}
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(c.cfg.Secret))
}

// Verify checks signature and expiry and returns the subject. Any failure
// (bad encoding, wrong signature, no subject, expired) yields ErrInvalidToken.
func (c *TokenCodec) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(c.cfg.Secret), nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
