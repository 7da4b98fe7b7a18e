// Package prefs provides the SQLite-backed key-value preference store.
// The only preference today is the viewer's dark/light theme choice.
package prefs

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS prefs (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const themeKey = "theme"

// Store wraps a sql.DB with preference operations.
type Store struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*Store, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("prefs: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prefs: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("prefs: apply schema: %w", err)
	}
	return &Store{conn: conn}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the stored value for key, and whether it was present.
func (s *Store) Get(key string) (string, bool, error) {
	var v string
	err := s.conn.QueryRow(`SELECT value FROM prefs WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs: get %s: %w", key, err)
	}
	return v, true, nil
}

// Set stores a value for key, replacing any previous one.
func (s *Store) Set(key, value string) error {
	_, err := s.conn.Exec(`
		INSERT INTO prefs (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("prefs: set %s: %w", key, err)
	}
	return nil
}

// Theme returns the persisted dark-mode flag. An unset preference is the
// light default.
func (s *Store) Theme() (bool, error) {
	v, ok, err := s.Get(themeKey)
	if err != nil {
		return false, err
	}
	return ok && v == "dark", nil
}

// SetTheme persists the dark-mode flag.
func (s *Store) SetTheme(dark bool) error {
	v := "light"
	if dark {
		v = "dark"
	}
	return s.Set(themeKey, v)
}
