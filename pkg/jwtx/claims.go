// Package jwtx wraps golang-jwt with the claim shape and the signer and
// verifier capabilities used for session tokens. Access and refresh tokens
// are signed with two independent secrets so that leaking one never
// compromises the other.
package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Access tokens are short-lived; refresh tokens carry
// the session lifetime.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims is the single claim shape used by both token kinds. The subject is
// always the user ID; earlier revisions of this system disagreed on the
// field name, so the registered "sub" claim is now the only identity field.
type Claims struct {
	jwt.RegisteredClaims

	// Admin marks the user as an administrator. Granted at sign time from
	// the user record, checked by route authorization.
	Admin bool `json:"admin,omitempty"`
}

// NewClaims builds claims for a user with the given TTL.
func NewClaims(userID string, admin bool, ttl time.Duration, issuer string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        newJTI(),
		},
		Admin: admin,
	}
}

// newJTI returns a URL-safe random identifier for the "jti" claim.
func newJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateIssuer checks the issuer against an expected value. An empty
// expected issuer enforces nothing.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected != "" && c.Issuer != expected {
		return ErrIssuer
	}
	return nil
}

// ValidateExpiry ensures the token has not expired (exp) and is not used
// before it becomes valid (nbf).
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}
	return nil
}
