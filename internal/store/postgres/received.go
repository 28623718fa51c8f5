package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/lib/pq"
)

// ReceivedStore implements store.ReceivedStore using PostgreSQL.
// Each user row holds the received invitation IDs as a text array;
// Append is deduplicated in SQL so it stays idempotent under retries.
type ReceivedStore struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
}

func (s *ReceivedStore) conn() queryable {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Append adds an invitation ID to the user's received list unless it
// is already present.
func (s *ReceivedStore) Append(ctx context.Context, userID, invitationID string) error {
	query := `
		INSERT INTO received_invitations (user_id, invitation_ids)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE
		SET invitation_ids = received_invitations.invitation_ids || EXCLUDED.invitation_ids
		WHERE NOT received_invitations.invitation_ids @> EXCLUDED.invitation_ids
	`

	_, err := s.conn().ExecContext(ctx, query, userID, pq.Array([]string{invitationID}))
	return err
}

// List retrieves the user's received invitation IDs in insertion order.
func (s *ReceivedStore) List(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT invitation_ids FROM received_invitations WHERE user_id = $1`

	var ids []string
	err := s.conn().QueryRowContext(ctx, query, userID).Scan(pq.Array(&ids))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
