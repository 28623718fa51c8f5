package localstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS kv_list (
	key      TEXT NOT NULL,
	value    TEXT NOT NULL,
	position INTEGER PRIMARY KEY AUTOINCREMENT,
	UNIQUE (key, value)
);
`

// Sqlite is a KV backed by a local sqlite database file.
type Sqlite struct {
	db *sql.DB
}

// NewSqlite opens (and initializes) the local database at path.
func NewSqlite(path string) (*Sqlite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize local store: %w", err)
	}
	return &Sqlite{db: db}, nil
}

func (s *Sqlite) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", key, err)
	}
	return value, nil
}

func (s *Sqlite) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

func (s *Sqlite) AppendUnique(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_list (key, value) VALUES (?, ?)
		ON CONFLICT (key, value) DO NOTHING
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to append to %q: %w", key, err)
	}
	return nil
}

func (s *Sqlite) List(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM kv_list WHERE key = ? ORDER BY position
	`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", key, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan %q: %w", key, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}
