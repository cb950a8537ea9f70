// Package store defines the data access interfaces of the authentication
// core. Concrete drivers (sqlite) implement Store; services depend only on
// these interfaces so tests can swap drivers freely.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface, split into sub-repositories to
// keep concerns tidy and testable.
type Store interface {
	Users() Users
	Sessions() Sessions

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise committed. Multi-step mutations
	// that must be atomic (password reset) go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	Sessions() Sessions
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail looks a user up by email, case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	// Returns ErrAlreadyExists when the email is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetResetOtp stores a pending code or the verified sentinel together
	// with its expiry. Overwrites any previous reset state.
	SetResetOtp(ctx context.Context, userID string, otp string, expiresAt time.Time) error

	// ClearResetOtp returns the user to the no-reset state.
	ClearResetOtp(ctx context.Context, userID string) error

	// ClearExpiredResetOtps clears reset state whose expiry precedes now.
	// Housekeeping only; the state machine also checks expiry on read.
	ClearExpiredResetOtps(ctx context.Context, now time.Time) error

	// ListUsers returns all users ordered by creation date, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type Sessions interface {
	// CreateSession stores a new session row. Every successful login
	// creates exactly one; rows are never reused across logins.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByAccessFP returns the session whose current access-token
	// fingerprint matches.
	GetSessionByAccessFP(ctx context.Context, fp string) (domain.Session, error)

	// UpdateSessionAccessFP rotates the access-token fingerprint in place.
	// Used by silent refresh; never creates a new row.
	UpdateSessionAccessFP(ctx context.Context, sessionID, fp string) error

	// DeleteSession removes a single session (logout, dead refresh token).
	DeleteSession(ctx context.Context, sessionID string) error

	// DeleteUserSessions removes every session for a user. Password reset
	// uses this to force re-authentication on all devices.
	DeleteUserSessions(ctx context.Context, userID string) error

	// CountUserSessions reports how many live sessions a user holds. Backs
	// the lenient revocation fallback.
	CountUserSessions(ctx context.Context, userID string) (int, error)

	// DeleteSessionsCreatedBefore drops sessions older than the cutoff,
	// i.e. rows whose refresh token has necessarily expired. Housekeeping.
	DeleteSessionsCreatedBefore(ctx context.Context, cutoff time.Time) error
}
