// Package store provides database access interfaces and implementations.
package store

import (
	"context"

	"github.com/toyxona/toycard/internal/models"
)

// InvitationStore defines operations for invitation management.
type InvitationStore interface {
	// Create creates a new invitation and assigns its ID.
	Create(ctx context.Context, invitation *models.Invitation) error
	// Get retrieves an invitation by ID.
	Get(ctx context.Context, id string) (*models.Invitation, error)
	// ListByOwner retrieves all invitations owned by a user, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Invitation, error)
	// CountByOwner returns the number of invitations owned by a user.
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	// Update updates an existing invitation.
	Update(ctx context.Context, invitation *models.Invitation) error
	// SetPicture updates one portrait URL ("groom" or "bride" slot).
	SetPicture(ctx context.Context, id, slot, pictureURL string) error
}

// WishStore defines operations for guest wishes.
type WishStore interface {
	// Create creates a new wish and assigns its ID.
	Create(ctx context.Context, wish *models.Wish) error
	// ListByInvitation retrieves all wishes for an invitation, newest first.
	ListByInvitation(ctx context.Context, invitationID string) ([]*models.Wish, error)
}

// UserStore defines operations for user management.
type UserStore interface {
	// UpsertByTelegramID creates the user on first sight and refreshes
	// the display fields on subsequent logins.
	UpsertByTelegramID(ctx context.Context, user *models.User) (*models.User, error)
	// GetByTelegramID retrieves a user by Telegram ID.
	GetByTelegramID(ctx context.Context, telegramID int64) (*models.User, error)
	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// ReceivedStore holds, per user, the set of invitation IDs the user has
// received from others. Append is idempotent.
type ReceivedStore interface {
	// Append adds an invitation ID to the user's received list unless
	// it is already present.
	Append(ctx context.Context, userID, invitationID string) error
	// List retrieves the user's received invitation IDs in insertion order.
	List(ctx context.Context, userID string) ([]string, error)
}

// PreferenceStore holds per-user interface preferences (language,
// theme) keyed by name.
type PreferenceStore interface {
	// Get retrieves one preference value; empty when unset.
	Get(ctx context.Context, userID, key string) (string, error)
	// Set stores one preference value for a user.
	Set(ctx context.Context, userID, key, value string) error
	// GetAll retrieves every preference stored for a user.
	GetAll(ctx context.Context, userID string) (map[string]string, error)
}

// Store is the main interface for database operations.
type Store interface {
	// Invitations returns the InvitationStore for invitation operations.
	Invitations() InvitationStore
	// Wishes returns the WishStore for wish operations.
	Wishes() WishStore
	// Users returns the UserStore for user operations.
	Users() UserStore
	// Received returns the ReceivedStore for received-invitation lists.
	Received() ReceivedStore
	// Preferences returns the PreferenceStore for per-user preferences.
	Preferences() PreferenceStore

	// WithTx executes the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// Otherwise, the transaction is committed.
	WithTx(ctx context.Context, fn func(Store) error) error

	// Ping verifies the database connection is alive.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close() error
}
