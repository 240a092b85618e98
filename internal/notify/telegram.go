package notify

import (
	"context"
	"fmt"

	tgbot "github.com/go-telegram/bot"
)

// Telegram delivers reminders as Telegram messages to a fixed chat.
type Telegram struct {
	bot    *tgbot.Bot
	chatID int64
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	b, err := tgbot.New(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return &Telegram{bot: b, chatID: chatID}, nil
}

// Notify sends the message to the configured chat.
func (t *Telegram) Notify(ctx context.Context, message string) error {
	_, err := t.bot.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: t.chatID,
		Text:   message,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
