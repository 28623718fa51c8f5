package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/toyxona/toycard/internal/models"
)

// WishStore implements store.WishStore using PostgreSQL.
type WishStore struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
}

func (s *WishStore) conn() queryable {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Create creates a new wish and assigns its ID.
func (s *WishStore) Create(ctx context.Context, wish *models.Wish) error {
	if wish.ID == "" {
		wish.ID = uuid.New().String()
	}
	if wish.CreatedAt.IsZero() {
		wish.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO wishes (id, invitation_id, author, text, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.conn().ExecContext(ctx, query,
		wish.ID,
		wish.InvitationID,
		wish.Author,
		wish.Text,
		wish.CreatedAt,
	)
	return err
}

// ListByInvitation retrieves all wishes for an invitation, newest first.
func (s *WishStore) ListByInvitation(ctx context.Context, invitationID string) ([]*models.Wish, error) {
	query := `
		SELECT id, invitation_id, author, text, created_at
		FROM wishes WHERE invitation_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.conn().QueryContext(ctx, query, invitationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var wishes []*models.Wish
	for rows.Next() {
		var w models.Wish
		if err := rows.Scan(&w.ID, &w.InvitationID, &w.Author, &w.Text, &w.CreatedAt); err != nil {
			return nil, err
		}
		wishes = append(wishes, &w)
	}

	return wishes, rows.Err()
}
