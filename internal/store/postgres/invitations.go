package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/toyxona/toycard/internal/models"
)

// InvitationStore implements store.InvitationStore using PostgreSQL.
type InvitationStore struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
}

func (s *InvitationStore) conn() queryable {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// Create creates a new invitation and assigns its ID.
func (s *InvitationStore) Create(ctx context.Context, invitation *models.Invitation) error {
	if invitation.ID == "" {
		invitation.ID = uuid.New().String()
	}
	now := time.Now()
	if invitation.CreatedAt.IsZero() {
		invitation.CreatedAt = now
	}
	invitation.UpdatedAt = now

	query := `
		INSERT INTO invitations (
			id, owner_id, groom_name, groom_lastname, bride_name, bride_lastname,
			event_at, location, hall, text, background_music, template,
			groom_picture_url, bride_picture_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := s.conn().ExecContext(ctx, query,
		invitation.ID,
		invitation.OwnerID,
		invitation.GroomName,
		invitation.GroomLastname,
		invitation.BrideName,
		invitation.BrideLastname,
		eventAt(invitation),
		invitation.Location,
		invitation.Hall,
		invitation.Text,
		invitation.BackgroundMusic,
		invitation.Template,
		invitation.GroomPictureURL,
		invitation.BridePictureURL,
		invitation.CreatedAt,
		invitation.UpdatedAt,
	)
	return err
}

// Get retrieves an invitation by ID.
func (s *InvitationStore) Get(ctx context.Context, id string) (*models.Invitation, error) {
	query := selectInvitation + ` WHERE id = $1`

	inv, err := scanInvitation(s.conn().QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// ListByOwner retrieves all invitations owned by a user, newest first.
func (s *InvitationStore) ListByOwner(ctx context.Context, ownerID string) ([]*models.Invitation, error) {
	query := selectInvitation + ` WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := s.conn().QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []*models.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, err
		}
		invitations = append(invitations, inv)
	}

	return invitations, rows.Err()
}

// CountByOwner returns the number of invitations owned by a user.
func (s *InvitationStore) CountByOwner(ctx context.Context, ownerID string) (int, error) {
	var count int
	err := s.conn().QueryRowContext(ctx,
		`SELECT COUNT(*) FROM invitations WHERE owner_id = $1`, ownerID,
	).Scan(&count)
	return count, err
}

// Update updates an existing invitation.
func (s *InvitationStore) Update(ctx context.Context, invitation *models.Invitation) error {
	invitation.UpdatedAt = time.Now()

	query := `
		UPDATE invitations
		SET groom_name = $1, groom_lastname = $2, bride_name = $3, bride_lastname = $4,
			event_at = $5, location = $6, hall = $7, text = $8,
			background_music = $9, template = $10, updated_at = $11
		WHERE id = $12
	`

	_, err := s.conn().ExecContext(ctx, query,
		invitation.GroomName,
		invitation.GroomLastname,
		invitation.BrideName,
		invitation.BrideLastname,
		eventAt(invitation),
		invitation.Location,
		invitation.Hall,
		invitation.Text,
		invitation.BackgroundMusic,
		invitation.Template,
		invitation.UpdatedAt,
		invitation.ID,
	)
	return err
}

// SetPicture updates one portrait URL ("groom" or "bride" slot).
func (s *InvitationStore) SetPicture(ctx context.Context, id, slot, pictureURL string) error {
	column := "groom_picture_url"
	if slot == "bride" {
		column = "bride_picture_url"
	}

	query := `UPDATE invitations SET ` + column + ` = $1, updated_at = $2 WHERE id = $3`
	_, err := s.conn().ExecContext(ctx, query, pictureURL, time.Now(), id)
	return err
}

const selectInvitation = `
	SELECT id, owner_id, groom_name, groom_lastname, bride_name, bride_lastname,
		event_at, location, hall, text, background_music, template,
		groom_picture_url, bride_picture_url, created_at, updated_at
	FROM invitations`

// eventAt composes the separate date and time fields into the combined
// timestamp column. A draft without a date stores NULL.
func eventAt(inv *models.Invitation) sql.NullTime {
	combined := models.CombineDateTime(inv.Date, inv.Time)
	if combined == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse(time.RFC3339, combined)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvitation(row rowScanner) (*models.Invitation, error) {
	var inv models.Invitation
	var event sql.NullTime

	if err := row.Scan(
		&inv.ID, &inv.OwnerID, &inv.GroomName, &inv.GroomLastname,
		&inv.BrideName, &inv.BrideLastname,
		&event, &inv.Location, &inv.Hall, &inv.Text,
		&inv.BackgroundMusic, &inv.Template,
		&inv.GroomPictureURL, &inv.BridePictureURL,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if event.Valid {
		inv.Date, inv.Time = models.SplitDateTime(event.Time.UTC().Format(time.RFC3339))
	}

	return &inv, nil
}
