package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
	"github.com/lunamart/lunamart/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

// captureMailer records the last code handed to it instead of sending mail.
type captureMailer struct {
	email string
	code  string
	err   error
}

func (m *captureMailer) SendResetCode(ctx context.Context, email, code string) error {
	m.email = email
	m.code = code
	return m.err
}

func newTestResetService(t *testing.T, svc *SessionService) (*ResetService, *captureMailer) {
	t.Helper()

	mailer := &captureMailer{}
	return &ResetService{
		Store:       svc.Store,
		Mailer:      mailer,
		OtpTTL:      10 * time.Minute,
		ResetWindow: 30 * time.Minute,
	}, mailer
}

func TestRequestReset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestSessionService(t, st)
	reset, mailer := newTestResetService(t, svc)

	u, _, err := svc.Signup(ctx, "alice@example.com", "password123")
	require.NoError(t, err)

	t.Run("unknown email is reported", func(t *testing.T) {
		err := reset.RequestReset(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("issues a four digit code", func(t *testing.T) {
		require.NoError(t, reset.RequestReset(ctx, "alice@example.com"))
		require.Equal(t, "alice@example.com", mailer.email)
		require.Len(t, mailer.code, cryptox.ResetCodeDigits)

		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResetStateOtpIssued, stored.ResetStateAt(time.Now().UTC()))
		require.Equal(t, mailer.code, *stored.ResetOtp)
	})

	t.Run("a new request replaces the pending code", func(t *testing.T) {
		first := mailer.code
		require.NoError(t, reset.RequestReset(ctx, "alice@example.com"))

		require.ErrorIs(t, reset.VerifyOtp(ctx, "alice@example.com", first), ErrOtpMismatch)
		require.NoError(t, reset.VerifyOtp(ctx, "alice@example.com", mailer.code))
	})

	t.Run("delivery failure does not surface", func(t *testing.T) {
		mailer.err = errors.New("smtp unreachable")
		defer func() { mailer.err = nil }()

		require.NoError(t, reset.RequestReset(ctx, "alice@example.com"))

		// The code issued alongside the failed delivery is still live.
		require.NoError(t, reset.VerifyOtp(ctx, "alice@example.com", mailer.code))
	})
}

func TestVerifyOtp(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestSessionService(t, st)
	reset, mailer := newTestResetService(t, svc)

	u, _, err := svc.Signup(ctx, "bob@example.com", "password123")
	require.NoError(t, err)

	t.Run("no code in flight is a mismatch", func(t *testing.T) {
		err := reset.VerifyOtp(ctx, "bob@example.com", "1234")
		require.ErrorIs(t, err, ErrOtpMismatch)
	})

	require.NoError(t, reset.RequestReset(ctx, "bob@example.com"))

	t.Run("wrong code is a mismatch and keeps the real one live", func(t *testing.T) {
		wrong := "0000"
		if wrong == mailer.code {
			wrong = "0001"
		}
		require.ErrorIs(t, reset.VerifyOtp(ctx, "bob@example.com", wrong), ErrOtpMismatch)

		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, mailer.code, *stored.ResetOtp)
	})

	t.Run("expired code is reported as expired", func(t *testing.T) {
		require.NoError(t, st.Users().SetResetOtp(ctx, u.ID, mailer.code, time.Now().UTC().Add(-time.Second)))
		require.ErrorIs(t, reset.VerifyOtp(ctx, "bob@example.com", mailer.code), ErrOtpExpired)
	})

	t.Run("exact unexpired code verifies", func(t *testing.T) {
		require.NoError(t, reset.RequestReset(ctx, "bob@example.com"))
		require.NoError(t, reset.VerifyOtp(ctx, "bob@example.com", mailer.code))

		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResetStateOtpVerified, stored.ResetStateAt(time.Now().UTC()))
	})

	t.Run("resubmitting the code after verification is a mismatch", func(t *testing.T) {
		require.ErrorIs(t, reset.VerifyOtp(ctx, "bob@example.com", mailer.code), ErrOtpMismatch)
	})
}

func TestResetPassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestSessionService(t, st)
	reset, mailer := newTestResetService(t, svc)

	u, pair, err := svc.Signup(ctx, "carol@example.com", "old password 1")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "carol@example.com", "old password 1")
	require.NoError(t, err)

	t.Run("requires a verified code", func(t *testing.T) {
		err := reset.ResetPassword(ctx, "carol@example.com", "new password 1")
		require.ErrorIs(t, err, ErrResetWindowExpired)

		require.NoError(t, reset.RequestReset(ctx, "carol@example.com"))
		err = reset.ResetPassword(ctx, "carol@example.com", "new password 1")
		require.ErrorIs(t, err, ErrResetWindowExpired)
	})

	require.NoError(t, reset.VerifyOtp(ctx, "carol@example.com", mailer.code))

	t.Run("rejects reusing the current password", func(t *testing.T) {
		err := reset.ResetPassword(ctx, "carol@example.com", "old password 1")
		require.ErrorIs(t, err, ErrDuplicatePassword)
	})

	t.Run("expired window is terminal", func(t *testing.T) {
		// Age the verified window out, then restore it for the tests below.
		require.NoError(t, st.Users().SetResetOtp(ctx, u.ID, domain.OtpVerified, time.Now().UTC().Add(-time.Second)))
		err := reset.ResetPassword(ctx, "carol@example.com", "new password 1")
		require.ErrorIs(t, err, ErrResetWindowExpired)

		require.NoError(t, st.Users().SetResetOtp(ctx, u.ID, domain.OtpVerified, time.Now().UTC().Add(30*time.Minute)))
	})

	require.NoError(t, reset.ResetPassword(ctx, "carol@example.com", "new password 1"))

	t.Run("every session is revoked", func(t *testing.T) {
		n, err := st.Sessions().CountUserSessions(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, 0, n)

		_, _, err = svc.Authorize(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrRevoked)
	})

	t.Run("reset state is cleared", func(t *testing.T) {
		stored, err := st.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, domain.ResetStateNone, stored.ResetStateAt(time.Now().UTC()))

		// The machine cannot be re-entered without a fresh code.
		err = reset.ResetPassword(ctx, "carol@example.com", "yet another pw 1")
		require.ErrorIs(t, err, ErrResetWindowExpired)
	})

	t.Run("only the new password logs in", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "carol@example.com", "old password 1")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "carol@example.com", "new password 1")
		require.NoError(t, err)
	})
}

func TestHousekeepingCleansStaleRows(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestSessionService(t, st)
	reset, mailer := newTestResetService(t, svc)

	u, pair, err := svc.Signup(ctx, "dave@example.com", "password123")
	require.NoError(t, err)

	require.NoError(t, reset.RequestReset(ctx, "dave@example.com"))
	require.NotEmpty(t, mailer.code)

	// Sessions created from now on are "stale" relative to a future cutoff.
	require.NoError(t, st.Sessions().DeleteSessionsCreatedBefore(ctx, time.Now().UTC().Add(time.Hour)))
	n, err := st.Sessions().CountUserSessions(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, 0, n)
	_ = pair

	// An unexpired code survives housekeeping; an expired one is cleared.
	require.NoError(t, st.Users().ClearExpiredResetOtps(ctx, time.Now().UTC()))
	stored, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ResetOtp)

	require.NoError(t, st.Users().SetResetOtp(ctx, u.ID, mailer.code, time.Now().UTC().Add(-time.Minute)))
	require.NoError(t, st.Users().ClearExpiredResetOtps(ctx, time.Now().UTC()))
	stored, err = st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, stored.ResetOtp)
}
