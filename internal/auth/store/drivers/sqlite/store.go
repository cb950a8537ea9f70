// Package sqlite is the SQLite driver for the auth store, backed by
// modernc.org/sqlite with hand-written queries.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/lunamart/lunamart/internal/auth/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs so deleting a user cascades to their sessions.
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Users() store.Users       { return &usersRepo{q: s.db} }
func (s *Store) Sessions() store.Sessions { return &sessionsRepo{q: s.db} }

// WithTx executes fn within a transaction, handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Rollback is a no-op after a successful commit.
	defer func() { _ = tx.Rollback() }()

	if err := fn(&txStore{tx: tx}); err != nil {
		return err
	}

	return tx.Commit()
}

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Users() store.Users       { return &usersRepo{q: t.tx} }
func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{q: t.tx} }

// queryer abstracts *sql.DB and *sql.Tx so the repos work in both modes.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapConflict(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}
