package models

import (
	"time"
)

// AccountType distinguishes free accounts from paying ones.
type AccountType string

const (
	// AccountFree is the default account tier.
	AccountFree AccountType = "free"
	// AccountPremium unlocks premium card templates.
	AccountPremium AccountType = "premium"
)

// User is a platform account, keyed by the Telegram identity that
// opened the mini app.
type User struct {
	ID          string      `json:"id"`
	TelegramID  int64       `json:"telegram_id"`
	DisplayName string      `json:"display_name,omitempty"`
	AvatarURL   string      `json:"avatar_url,omitempty"`
	AccountType AccountType `json:"account_type"`
	CreatedAt   time.Time   `json:"created_at"`
}
