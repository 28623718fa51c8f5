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

// UserStore implements store.UserStore using PostgreSQL.
type UserStore struct {
	db     *sql.DB
	tx     *sql.Tx
	logger *slog.Logger
}

func (s *UserStore) conn() queryable {
	if s.tx != nil {
		return s.tx
	}
	return s.db
}

// UpsertByTelegramID creates the user on first sight and refreshes the
// display fields on subsequent logins.
func (s *UserStore) UpsertByTelegramID(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.AccountType == "" {
		user.AccountType = models.AccountFree
	}

	query := `
		INSERT INTO users (id, telegram_id, display_name, avatar_url, account_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (telegram_id) DO UPDATE
		SET display_name = EXCLUDED.display_name, avatar_url = EXCLUDED.avatar_url
		RETURNING id, telegram_id, display_name, avatar_url, account_type, created_at
	`

	var out models.User
	var accountType string
	err := s.conn().QueryRowContext(ctx, query,
		user.ID, user.TelegramID, user.DisplayName, user.AvatarURL,
		string(user.AccountType), user.CreatedAt,
	).Scan(&out.ID, &out.TelegramID, &out.DisplayName, &out.AvatarURL, &accountType, &out.CreatedAt)
	if err != nil {
		return nil, err
	}

	out.AccountType = models.AccountType(accountType)
	return &out, nil
}

// GetByTelegramID retrieves a user by Telegram ID.
func (s *UserStore) GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `
		SELECT id, telegram_id, display_name, avatar_url, account_type, created_at
		FROM users WHERE telegram_id = $1
	`
	return s.scanOne(s.conn().QueryRowContext(ctx, query, telegramID))
}

// GetByID retrieves a user by ID.
func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `
		SELECT id, telegram_id, display_name, avatar_url, account_type, created_at
		FROM users WHERE id = $1
	`
	return s.scanOne(s.conn().QueryRowContext(ctx, query, id))
}

func (s *UserStore) scanOne(row *sql.Row) (*models.User, error) {
	var user models.User
	var accountType string

	err := row.Scan(
		&user.ID, &user.TelegramID, &user.DisplayName,
		&user.AvatarURL, &accountType, &user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user.AccountType = models.AccountType(accountType)
	return &user, nil
}
