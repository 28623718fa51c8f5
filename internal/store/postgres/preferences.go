package postgres

import (
	"context"
	"database/sql"
	"log/slog"
)

// PreferenceStore implements store.PreferenceStore for PostgreSQL.
type PreferenceStore struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
}

func (s *PreferenceStore) conn() queryable {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Get retrieves one preference value; empty when unset.
func (s *PreferenceStore) Get(ctx context.Context, userID, key string) (string, error) {
	var value string
	err := s.conn().QueryRowContext(ctx,
		"SELECT value FROM preferences WHERE user_id = $1 AND key = $2", userID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// Set stores one preference value for a user.
func (s *PreferenceStore) Set(ctx context.Context, userID, key, value string) error {
	_, err := s.conn().ExecContext(ctx, `
		INSERT INTO preferences (user_id, key, value, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, key) DO UPDATE SET value = $3, updated_at = CURRENT_TIMESTAMP
	`, userID, key, value)
	return err
}

// GetAll retrieves every preference stored for a user.
func (s *PreferenceStore) GetAll(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := s.conn().QueryContext(ctx,
		"SELECT key, value FROM preferences WHERE user_id = $1", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		prefs[key] = value
	}
	return prefs, rows.Err()
}
