package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
)

// Signer mints signed JWT strings.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and returns its claims.
//
// When verification fails with ErrExpired the returned claims are still
// populated: the signature was genuine, only the lifetime has lapsed. Every
// other failure returns zero claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// Authority combines signing and verification for one token kind.
type Authority interface {
	Signer
	Verifier
}

// HS256 is a combined Signer/Verifier over a single HMAC-SHA256 secret.
// The service holds two instances, one per token kind.
type HS256 struct {
	secret []byte
	issuer string
}

// NewHS256 creates a signer/verifier for the given secret.
func NewHS256(secret []byte, issuer string) (*HS256, error) {
	if len(secret) == 0 {
		return nil, errors.New("jwtx: empty HS256 secret")
	}
	return &HS256{secret: secret, issuer: issuer}, nil
}

// Sign turns claims into a signed JWT string.
func (h *HS256) Sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
}

// Verify checks the signature first and the claims second, so an expired
// token is distinguishable from a forged one.
func (h *HS256) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Claim validation is done by hand below: the caller needs to tell
		// "expired but genuine" apart from "invalid".
		jwt.WithoutClaimsValidation(),
	)

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, fmt.Errorf("jwtx: parse: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(h.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(time.Now().UTC()); err != nil {
		// Signature was genuine; surface the claims with the error.
		return *claims, err
	}

	return *claims, nil
}
