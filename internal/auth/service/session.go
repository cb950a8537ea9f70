package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
	"github.com/lunamart/lunamart/internal/auth/store"
	"github.com/lunamart/lunamart/pkg/cryptox"
	"github.com/lunamart/lunamart/pkg/idx"
	"github.com/lunamart/lunamart/pkg/jwtx"
	"github.com/lunamart/lunamart/pkg/slogx"
)

// Identity is the authenticated principal attached to allowed requests.
type Identity struct {
	UserID  string
	IsAdmin bool
}

// SessionService owns the token lifecycle: issuance on login, the
// revocation gate decision, and silent refresh of expired access tokens.
//
// Access and Refresh are two independent authorities with distinct
// secrets, so leaking one never compromises the other.
type SessionService struct {
	Store   store.Store
	Access  jwtx.Authority
	Refresh jwtx.Authority
	Issuer  string

	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// LenientRevocation keeps the fallback behaviour of accepting a valid
	// access token that is absent from the store as long as the user still
	// holds any live session. Off by default: exact-token revocation.
	LenientRevocation bool
}

// Signup registers a new user and issues their first session.
func (s *SessionService) Signup(ctx context.Context, email, password string) (domain.User, *domain.TokenPair, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, nil, fmt.Errorf("hash password: %w", err)
	}

	u := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, nil, ErrEmailTaken
		}
		return domain.User{}, nil, err
	}

	pair, err := s.IssueSession(ctx, u)
	if err != nil {
		return domain.User{}, nil, err
	}

	return u, pair, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.User, *domain.TokenPair, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, err
	}

	pair, err := s.IssueSession(ctx, u)
	if err != nil {
		return domain.User{}, nil, err
	}

	return u, pair, nil
}

// IssueSession mints an access/refresh pair for an already-verified user
// and persists the session row. Every call creates exactly one new row;
// rows are never reused or updated by login. If the store write fails no
// token reaches the caller.
func (s *SessionService) IssueSession(ctx context.Context, u domain.User) (*domain.TokenPair, error) {
	now := time.Now().UTC()

	accessToken, err := s.Access.Sign(jwtx.NewClaims(u.ID, u.IsAdmin, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, err := s.Refresh.Sign(jwtx.NewClaims(u.ID, u.IsAdmin, s.RefreshTTL, s.Issuer, now))
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}

	sess := domain.Session{
		ID:            idx.New().String(),
		UserID:        u.ID,
		RefreshToken:  refreshToken,
		AccessTokenFP: cryptox.FingerprintToken(accessToken),
	}

	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessTTL:    s.AccessTTL,
	}, nil
}

// Authorize is the revocation gate. It decides allow/deny for a raw bearer
// token and, when the token is expired but its session still holds a valid
// refresh token, performs the silent refresh inline: the returned
// newAccessToken is non-empty exactly when a refresh happened and must be
// surfaced to the caller for persistence.
//
// Gate reads never mutate state; only the refresh path writes (rotating
// the access fingerprint in place, or deleting a dead session).
func (s *SessionService) Authorize(ctx context.Context, rawToken string) (Identity, string, error) {
	claims, err := s.Access.Verify(rawToken)
	switch {
	case err == nil:
		id, err := s.checkRevocation(ctx, rawToken, claims)
		return id, "", err

	case errors.Is(err, jwtx.ErrExpired):
		// Expired but genuine: recover locally instead of failing the
		// request. Claims are populated on this path.
		return s.refreshSession(ctx, rawToken)

	default:
		return Identity{}, "", ErrInvalidToken
	}
}

// Check is the non-mutating probe behind check-auth-status. It never
// refreshes and never errors; an unusable token simply reports logged-out.
func (s *SessionService) Check(ctx context.Context, rawToken string) (Identity, bool) {
	claims, err := s.Access.Verify(rawToken)
	if err != nil {
		return Identity{}, false
	}

	id, err := s.checkRevocation(ctx, rawToken, claims)
	if err != nil {
		return Identity{}, false
	}
	return id, true
}

// Logout deletes the session backing the given access token. Idempotent:
// an unknown or already-removed token is not an error.
func (s *SessionService) Logout(ctx context.Context, rawToken string) error {
	fp := cryptox.FingerprintToken(rawToken)
	sess, err := s.Store.Sessions().GetSessionByAccessFP(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	return s.Store.Sessions().DeleteSession(ctx, sess.ID)
}

// ChangePassword replaces the hash for an authenticated user after
// re-verifying the current password. Existing sessions stay valid; only
// the unauthenticated reset flow revokes them.
func (s *SessionService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := cryptox.VerifyPassword(currentPassword, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return err
	}

	if cryptox.VerifyPassword(newPassword, u.PasswordHash) == nil {
		return ErrDuplicatePassword
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash)
}

// checkRevocation validates a live access token against the store. The
// exact fingerprint is authoritative; the lenient fallback (any live
// session for this user) is opt-in.
func (s *SessionService) checkRevocation(ctx context.Context, rawToken string, claims jwtx.Claims) (Identity, error) {
	fp := cryptox.FingerprintToken(rawToken)

	_, err := s.Store.Sessions().GetSessionByAccessFP(ctx, fp)
	if err == nil {
		return Identity{UserID: claims.Subject, IsAdmin: claims.Admin}, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return Identity{}, err
	}

	if s.LenientRevocation {
		n, err := s.Store.Sessions().CountUserSessions(ctx, claims.Subject)
		if err != nil {
			return Identity{}, err
		}
		if n > 0 {
			return Identity{UserID: claims.Subject, IsAdmin: claims.Admin}, nil
		}
	}

	return Identity{}, ErrRevoked
}

// refreshSession is the silent refresh coordinator. It exchanges a valid
// stored refresh token for a new access token without surfacing a second
// round trip to the caller. Racing refreshes for the same session both
// succeed; the row keeps whichever fingerprint lands last and both minted
// tokens stay valid for the owner.
func (s *SessionService) refreshSession(ctx context.Context, expiredToken string) (Identity, string, error) {
	log := slogx.FromContext(ctx)

	fp := cryptox.FingerprintToken(expiredToken)
	sess, err := s.Store.Sessions().GetSessionByAccessFP(ctx, fp)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Expired and absent from the store: revocation already
			// happened, nothing to refresh.
			return Identity{}, "", ErrRevoked
		}
		return Identity{}, "", err
	}

	rclaims, err := s.Refresh.Verify(sess.RefreshToken)
	if err != nil || rclaims.Subject != sess.UserID {
		// The session is dead. Remove the row so no half-valid pair
		// lingers, then deny terminally.
		if delErr := s.Store.Sessions().DeleteSession(ctx, sess.ID); delErr != nil {
			log.Error("failed to delete dead session", "session_id", sess.ID, "err", delErr)
		}
		return Identity{}, "", ErrExpiredRefresh
	}

	now := time.Now().UTC()
	newAccess, err := s.Access.Sign(jwtx.NewClaims(rclaims.Subject, rclaims.Admin, s.AccessTTL, s.Issuer, now))
	if err != nil {
		return Identity{}, "", fmt.Errorf("sign access token: %w", err)
	}

	if err := s.Store.Sessions().UpdateSessionAccessFP(ctx, sess.ID, cryptox.FingerprintToken(newAccess)); err != nil {
		// A concurrent refresh may have deleted the row; treat it as
		// revoked rather than handing out a token with no backing session.
		if errors.Is(err, store.ErrNotFound) {
			return Identity{}, "", ErrRevoked
		}
		return Identity{}, "", err
	}

	log.Debug("access token silently refreshed", "user_id", sess.UserID, "session_id", sess.ID)

	return Identity{UserID: rclaims.Subject, IsAdmin: rclaims.Admin}, newAccess, nil
}
