// Package domain holds the persisted models of the authentication core.
package domain

import "time"

// OtpVerified is the sentinel stored in User.ResetOtp once the emailed code
// has been confirmed. It can never collide with an issuable numeric code.
const OtpVerified = "verified"

// User is the identity and credential record.
//
// ResetOtp is either nil (no reset in flight), a pending 4-digit code, or
// the OtpVerified sentinel. ResetOtpExpiresAt is always set when ResetOtp
// is set; together they drive the password-reset state machine.
type User struct {
	ID                string
	Email             string // unique, compared case-insensitively
	PasswordHash      string // argon2id encoded
	IsAdmin           bool
	ResetOtp          *string
	ResetOtpExpiresAt *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ResetState is the password-reset state derived from the OTP fields.
type ResetState int

const (
	ResetStateNone ResetState = iota
	ResetStateOtpIssued
	ResetStateOtpVerified
	ResetStateExpired
)

// ResetStateAt derives the reset state at the given instant.
func (u User) ResetStateAt(now time.Time) ResetState {
	if u.ResetOtp == nil || u.ResetOtpExpiresAt == nil {
		return ResetStateNone
	}
	if now.After(*u.ResetOtpExpiresAt) {
		return ResetStateExpired
	}
	if *u.ResetOtp == OtpVerified {
		return ResetStateOtpVerified
	}
	return ResetStateOtpIssued
}
