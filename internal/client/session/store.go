// Package session persists the CLI login state (bearer token and the email
// it was issued for) in a local SQLite file.
package session

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/taskmanager/internal/client/migrations"
	"github.com/dmitrijs2005/taskmanager/internal/dbx"
	"github.com/dmitrijs2005/taskmanager/internal/filex"
)

const (
	keyToken = "token"
	keyEmail = "email"
)

// Store keeps the session of the current CLI user.
type Store struct {
	db   *sql.DB
	repo Repository
}

// RunMigrations brings the session schema up to date.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("session migrations: %w", err)
	}

	return &Store{db: db, repo: NewSQLiteRepository(db)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the saved bearer token or "" when logged out.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, keyToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Email returns the email of the logged in user or "".
func (s *Store) Email(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, keyEmail)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Save replaces the stored session atomically.
func (s *Store) Save(ctx context.Context, email, token string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := NewSQLiteRepository(tx)
		if err := r.Set(ctx, keyEmail, []byte(email)); err != nil {
			return err
		}
		return r.Set(ctx, keyToken, []byte(token))
	})
}

// Clear forgets the stored session.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.Clear(ctx)
}
