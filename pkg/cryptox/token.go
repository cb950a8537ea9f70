package cryptox

import (
	"crypto/sha256"
	"encoding/base64"
)

// FingerprintToken returns a deterministic SHA-256 fingerprint of a token,
// base64url encoded. Stored instead of the token itself so a database leak
// never yields usable credentials.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
