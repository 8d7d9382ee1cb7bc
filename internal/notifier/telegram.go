package notifier

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"lostandfound-backend/internal/models"
)

// TelegramDispatcher announces created matches to an operations channel.
type TelegramDispatcher struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramDispatcher creates the Telegram notification channel.
// Returns nil (channel disabled) when no token is configured.
func NewTelegramDispatcher(token string, chatID int64, logger *zap.Logger) (*TelegramDispatcher, error) {
	if token == "" || chatID == 0 {
		logger.Info("Telegram notifications disabled (no token or chat id configured)")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", api.Self.UserName))
	return &TelegramDispatcher{api: api, chatID: chatID, logger: logger}, nil
}

func (d *TelegramDispatcher) NotifyMatch(_ context.Context, match *models.Match, lost *models.LostItem, found *models.FoundItem) error {
	text := fmt.Sprintf(
		"New match #%d (%s, %d%%)\nLost: %s — %s\nFound: %s — %s",
		match.ID, match.MatchType, int(match.ConfidenceScore*100),
		lost.ItemName, lost.Location,
		found.ItemName, found.Location)

	msg := tgbotapi.NewMessage(d.chatID, text)
	if _, err := d.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram notification: %w", err)
	}
	return nil
}
