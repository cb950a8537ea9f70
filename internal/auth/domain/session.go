package domain

import "time"

// Session is one persisted token pair: a logical login instance. A user may
// hold many concurrent sessions (one per device); logout, refresh failure
// and password reset delete rows, which is what makes the store the
// authoritative revocation list.
type Session struct {
	ID     string
	UserID string

	// RefreshToken is the long-lived signed token, stored verbatim because
	// its signature is re-verified on every silent refresh. Unique per row.
	RefreshToken string

	// AccessTokenFP is the SHA-256 fingerprint of the current access token.
	// Rotated in place on silent refresh; empty only transiently between
	// issuance steps.
	AccessTokenFP string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair is what issuance returns to the HTTP layer: the short-lived
// access token for the response body and the refresh token for the cookie.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessTTL    time.Duration
}
