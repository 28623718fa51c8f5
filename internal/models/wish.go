package models

import (
	"time"
)

// Wish is a guest congratulatory message attached to a persisted
// invitation. Wishes are never edited or deleted; listings are ordered
// most recent first.
type Wish struct {
	ID           string    `json:"id"`
	InvitationID string    `json:"invitation_id"`
	Author       string    `json:"author"`
	Text         string    `json:"text"`
	CreatedAt    time.Time `json:"created_at"`
}
