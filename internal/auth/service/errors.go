package service

import "errors"

// Failure taxonomy of the authentication core. The HTTP layer maps these to
// the uniform authapi error envelope; nothing below leaks store internals.
var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
	ErrUserNotFound       = errors.New("user_not_found")

	// ErrInvalidToken covers malformed tokens, bad signatures and issuer
	// mismatches. Deliberately coarser than the jwtx errors it wraps.
	ErrInvalidToken = errors.New("invalid_token")

	// ErrRevoked means a cryptographically valid token has no live session
	// backing it: the store is the authoritative revocation list.
	ErrRevoked = errors.New("revoked_token")

	// ErrExpiredRefresh is terminal. The session row is gone by the time
	// this is returned; the caller must authenticate again.
	ErrExpiredRefresh = errors.New("expired_refresh_token")

	ErrOtpMismatch        = errors.New("otp_mismatch")
	ErrOtpExpired         = errors.New("otp_expired")
	ErrResetWindowExpired = errors.New("reset_window_expired")
	ErrDuplicatePassword  = errors.New("duplicate_password")
)
