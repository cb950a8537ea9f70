package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
	"github.com/lunamart/lunamart/internal/auth/mail"
	"github.com/lunamart/lunamart/internal/auth/store"
	"github.com/lunamart/lunamart/pkg/cryptox"
	"github.com/lunamart/lunamart/pkg/slogx"
)

// ResetService drives the OTP-gated password-reset state machine:
//
//	NoReset -> OtpIssued -> OtpVerified -> (PasswordReset | Expired)
//
// It is reachable without authentication; possession of the emailed code
// is the only proof of identity.
type ResetService struct {
	Store  store.Store
	Mailer mail.Mailer

	// OtpTTL is how long an issued code stays redeemable.
	OtpTTL time.Duration

	// ResetWindow is how long a verified user has to submit the new
	// password.
	ResetWindow time.Duration
}

// RequestReset moves NoReset -> OtpIssued for a registered email. A new
// request while a code is pending simply overwrites it; only the most
// recently issued code is ever valid. The unknown-email branch is the
// single path allowed to disambiguate; once the user exists, delivery
// failure must look exactly like success to the caller.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := cryptox.GenerateResetCode()
	if err != nil {
		return fmt.Errorf("generate reset code: %w", err)
	}

	expiresAt := time.Now().UTC().Add(s.OtpTTL)
	if err := s.Store.Users().SetResetOtp(ctx, u.ID, code, expiresAt); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	// The transition already happened; the code stays valid even if the
	// email never arrives.
	if err := s.Mailer.SendResetCode(ctx, u.Email, code); err != nil {
		log.Warn("reset code delivery failed", "user_id", u.ID, "err", err)
	}

	return nil
}

// VerifyOtp moves OtpIssued -> OtpVerified when the submitted code matches
// the pending one before expiry, replacing the code with the verified
// sentinel and extending the expiry to the reset window. Any failed
// attempt leaves the stored state untouched.
func (s *ResetService) VerifyOtp(ctx context.Context, email, code string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now().UTC()
	switch u.ResetStateAt(now) {
	case domain.ResetStateOtpIssued:
		// Proceed to the comparison below.
	case domain.ResetStateExpired:
		return ErrOtpExpired
	default:
		// No code in flight, or already verified. A numeric code can never
		// equal the sentinel, so resubmission is just a mismatch.
		return ErrOtpMismatch
	}

	if subtle.ConstantTimeCompare([]byte(*u.ResetOtp), []byte(code)) != 1 {
		return ErrOtpMismatch
	}

	windowEnd := now.Add(s.ResetWindow)
	return s.Store.Users().SetResetOtp(ctx, u.ID, domain.OtpVerified, windowEnd)
}

// ResetPassword completes the machine from OtpVerified within its window.
// On success the hash is replaced, the reset state is cleared, and every
// session for the user is deleted in the same transaction, forcing
// re-authentication on all devices.
func (s *ResetService) ResetPassword(ctx context.Context, email, newPassword string) error {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now().UTC()
	if state := u.ResetStateAt(now); state != domain.ResetStateOtpVerified {
		return ErrResetWindowExpired
	}

	// Compared through the hash, never plaintext equality.
	if cryptox.VerifyPassword(newPassword, u.PasswordHash) == nil {
		return ErrDuplicatePassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
			return err
		}
		if err := tx.Users().ClearResetOtp(ctx, u.ID); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, u.ID)
	})
}
