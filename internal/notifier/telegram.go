// Package notifier delivers rendered signals to Telegram.
package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Telegram sends one-way messages to a fixed chat.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger zerolog.Logger
}

// NewTelegram connects to the bot API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	return &Telegram{
		bot:    bot,
		chatID: chatID,
		logger: log.With().Str("component", "telegram_notifier").Logger(),
	}, nil
}

// Send delivers a plain-text message to the configured chat.
func (t *Telegram) Send(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("sending Telegram message: %w", err)
	}
	t.logger.Debug().Int64("chat_id", t.chatID).Msg("Notification sent")
	return nil
}
