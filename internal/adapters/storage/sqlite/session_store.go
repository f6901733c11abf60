// Package sqlite persists the signed-in session in a local SQLite file so
// separate processes (the local API and the CLI) share one login.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/quotevault/quotevault/internal/domain"
	"github.com/quotevault/quotevault/internal/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS session (
	id            INTEGER PRIMARY KEY CHECK (id = 1),
	user_id       TEXT NOT NULL,
	email         TEXT NOT NULL DEFAULT '',
	full_name     TEXT NOT NULL DEFAULT '',
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL DEFAULT '',
	expires_at    INTEGER,
	saved_at      INTEGER NOT NULL
);
`

// SessionStore keeps at most one session row.
type SessionStore struct {
	conn *sql.DB
	now  func() time.Time
}

var (
	_ ports.SessionStore  = (*SessionStore)(nil)
	_ ports.HealthChecker = (*SessionStore)(nil)
)

// Open opens or creates the store at path, creating parent directories.
func Open(ctx context.Context, path string) (*SessionStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// One writer at a time; WAL lets the CLI read while the server writes.
	conn.SetMaxOpenConns(1)

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set wal mode: %w", err)
	}

	if _, err := conn.ExecContext(ctx, "PRAGMA busy_timeout=5000;"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &SessionStore{conn: conn, now: time.Now}, nil
}

// Close closes the database connection.
func (s *SessionStore) Close() error {
	return s.conn.Close()
}

// Load returns the stored session, or nil when none is stored.
func (s *SessionStore) Load(ctx context.Context) (*domain.Session, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT user_id, email, full_name, access_token, refresh_token, expires_at
		FROM session WHERE id = 1`)

	var (
		session domain.Session
		expires sql.NullInt64
	)

	err := row.Scan(
		&session.User.ID,
		&session.User.Email,
		&session.User.FullName,
		&session.AccessToken,
		&session.RefreshToken,
		&expires,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	if expires.Valid {
		session.ExpiresAt = time.Unix(expires.Int64, 0)
	}

	return &session, nil
}

// Save replaces the stored session. Saving nil clears the store.
func (s *SessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return s.Clear(ctx)
	}

	var expires sql.NullInt64
	if !session.ExpiresAt.IsZero() {
		expires = sql.NullInt64{Int64: session.ExpiresAt.Unix(), Valid: true}
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO session (id, user_id, email, full_name, access_token, refresh_token, expires_at, saved_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			email = excluded.email,
			full_name = excluded.full_name,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			saved_at = excluded.saved_at`,
		session.User.ID,
		session.User.Email,
		session.User.FullName,
		session.AccessToken,
		session.RefreshToken,
		expires,
		s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

// Clear removes the stored session.
func (s *SessionStore) Clear(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, "DELETE FROM session"); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

// Name implements ports.HealthChecker.
func (s *SessionStore) Name() string {
	return "session-store"
}

// Check implements ports.HealthChecker.
func (s *SessionStore) Check(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}
