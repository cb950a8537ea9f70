package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/lunamart/lunamart/internal/auth/domain"
)

type sessionsRepo struct {
	q queryer
}

const sessionColumns = `id, user_id, refresh_token, access_token_fp, created_at, updated_at`

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, refresh_token, access_token_fp, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.RefreshToken, nullIfEmpty(s.AccessTokenFP), now, now)
	return mapConflict(err)
}

func (r *sessionsRepo) GetSessionByAccessFP(ctx context.Context, fp string) (domain.Session, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE access_token_fp = ?`, fp)
	return scanSession(row)
}

func (r *sessionsRepo) UpdateSessionAccessFP(ctx context.Context, sessionID, fp string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET access_token_fp = ?, updated_at = ? WHERE id = ?`,
		fp, time.Now().UTC(), sessionID)
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

func (r *sessionsRepo) DeleteSession(ctx context.Context, sessionID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID)
	return err
}

func (r *sessionsRepo) DeleteUserSessions(ctx context.Context, userID string) error {
	_, err := r.q.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

func (r *sessionsRepo) CountUserSessions(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

func (r *sessionsRepo) DeleteSessionsCreatedBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE created_at < ?`, cutoff.UTC())
	return err
}

func nullIfEmpty(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanSession(row rowScanner) (domain.Session, error) {
	var (
		s  domain.Session
		fp sql.NullString
	)

	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshToken,
		&fp,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	if fp.Valid {
		s.AccessTokenFP = fp.String
	}

	return s, nil
}
