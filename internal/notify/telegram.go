// Package notify sends owner notifications through Telegram.
package notify

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/toyxona/toycard/internal/models"
)

// Notifier sends Telegram messages to invitation owners. A nil
// Notifier is valid and drops every notification, so callers never
// need to branch on configuration.
type Notifier struct {
	bot    *tgbotapi.BotAPI
	logger *slog.Logger
}

// New creates a Notifier. Returns nil (disabled) when botToken is
// empty.
func New(botToken string, logger *slog.Logger) (*Notifier, error) {
	if botToken == "" {
		return nil, nil
	}
	if logger == nil {
		logger = slog.Default()
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	logger.Info("telegram notifier enabled", "bot", bot.Self.UserName)
	return &Notifier{bot: bot, logger: logger}, nil
}

// WishReceived tells the invitation owner about a new guest wish.
// Failures are logged and swallowed; the guest's request must not
// depend on the owner's chat being reachable.
func (n *Notifier) WishReceived(owner *models.User, wish *models.Wish) {
	if n == nil || owner == nil || owner.TelegramID == 0 {
		return
	}

	text := fmt.Sprintf("💌 %s: %s", wish.Author, wish.Text)
	msg := tgbotapi.NewMessage(owner.TelegramID, text)

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn("failed to send wish notification",
			"error", err,
			"telegram_id", owner.TelegramID,
		)
	}
}
