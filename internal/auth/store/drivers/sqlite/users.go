package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
)

type usersRepo struct {
	q queryer
}

const userColumns = `id, email, password_hash, is_admin, reset_otp, reset_otp_expires_at, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	// email is COLLATE NOCASE, so the comparison is case-insensitive.
	row := r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, is_admin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.IsAdmin, now, now)
	return mapConflict(err)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID string, newHash string) error {
	return r.exec(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, time.Now().UTC(), userID)
}

func (r *usersRepo) SetResetOtp(ctx context.Context, userID string, otp string, expiresAt time.Time) error {
	return r.exec(ctx,
		`UPDATE users SET reset_otp = ?, reset_otp_expires_at = ?, updated_at = ? WHERE id = ?`,
		otp, expiresAt.UTC(), time.Now().UTC(), userID)
}

func (r *usersRepo) ClearResetOtp(ctx context.Context, userID string) error {
	return r.exec(ctx,
		`UPDATE users SET reset_otp = NULL, reset_otp_expires_at = NULL, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) ClearExpiredResetOtps(ctx context.Context, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE users SET reset_otp = NULL, reset_otp_expires_at = NULL, updated_at = ?
		 WHERE reset_otp IS NOT NULL AND reset_otp_expires_at < ?`,
		now.UTC(), now.UTC())
	return err
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// exec runs an update that must touch exactly one row, mapping a miss to
// store.ErrNotFound.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u         domain.User
		otp       sql.NullString
		otpExpiry sql.NullTime
	)

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.IsAdmin,
		&otp,
		&otpExpiry,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}

	if otp.Valid {
		u.ResetOtp = &otp.String
	}
	if otpExpiry.Valid {
		t := otpExpiry.Time
		u.ResetOtpExpiresAt = &t
	}

	return u, nil
}
