// Package notify delivers reports to the secondary broadcast channel that
// mirrors everything the admin sees.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the sending half of *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Channel broadcasts markdown messages to a fixed chat id.
type Channel struct {
	api    Sender
	chatID int64
}

func NewChannel(api Sender, chatID int64) *Channel {
	return &Channel{api: api, chatID: chatID}
}

// Broadcast sends text to the channel. The Telegram client has no request
// context, so ctx is only honored up front.
func (c *Channel) Broadcast(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("broadcast to channel %d: %w", c.chatID, err)
	}
	return nil
}
