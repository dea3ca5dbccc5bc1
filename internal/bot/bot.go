// Package bot implements the Telegram front-end of the cash book: access
// checks against the admin allow-list, the per-admin conversation state,
// and the dispatch of commands, menu callbacks, and entry text.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kasbot/internal/core"
	"kasbot/internal/log"
)

// API is the slice of *tgbotapi.BotAPI the handlers need. Tests swap in a
// recorder.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Ledger is the cash-book surface the handlers drive. *ledger.Service
// implements it.
type Ledger interface {
	Record(ctx context.Context, kind core.Kind, amount int64, note string) (int64, error)
	Balance(ctx context.Context) (int64, error)
	History(ctx context.Context) ([]core.Transaction, error)
}

// Notifier mirrors reports to the broadcast channel.
type Notifier interface {
	Broadcast(ctx context.Context, text string) error
}

type Bot struct {
	api      API
	admins   map[int64]struct{}
	ledger   Ledger
	notifier Notifier
	sessions *sessions
	logger   *log.Logger
}

func New(api API, adminIDs []int64, ledger Ledger, notifier Notifier, logger *log.Logger) *Bot {
	admins := make(map[int64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = struct{}{}
	}
	if logger == nil {
		logger = log.New(nil, log.ComponentBot)
	}
	return &Bot{
		api:      api,
		admins:   admins,
		ledger:   ledger,
		notifier: notifier,
		sessions: newSessions(),
		logger:   logger,
	}
}

// Run processes updates until the context is cancelled or the channel
// closes. The framework delivers one update at a time, so handlers never
// run concurrently.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	b.logger.Info("Bot is running")
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Stopping update loop", "reason", ctx.Err())
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

func (b *Bot) isAdmin(userID int64) bool {
	_, ok := b.admins[userID]
	return ok
}

// send delivers a markdown message. Delivery errors are logged, never
// returned.
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", log.FieldChatID, chatID, log.FieldError, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message", log.FieldChatID, chatID, log.FieldError, err)
	}
}
