package bot

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kasbot/internal/core"
	"kasbot/internal/log"
	"kasbot/internal/report"
)

const (
	msgWelcome     = "🤖 *BOT KAS BENDAHARA*\n\nLogin berhasil ✅"
	msgMainMenu    = "📋 *MENU UTAMA*"
	msgDenied      = "⛔ Akses ditolak"
	msgEntryPrompt = "Ketik:\n`jumlah keterangan`\n\nContoh:\n`50000 iuran anggota`"
	msgBadEntry    = "❌ Format salah"
	msgSaved       = "✅ Transaksi tersimpan"
)

// HandleUpdate dispatches a single inbound update. Unknown update kinds
// are ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		if update.Message.Command() == "start" {
			b.handleStart(ctx, update.Message)
		}
	case update.Message != nil && update.Message.Text != "":
		b.handleEntry(ctx, update.Message)
	}
}

func (b *Bot) handleStart(_ context.Context, m *tgbotapi.Message) {
	if !b.isAdmin(m.From.ID) {
		b.logger.Warn("Access denied", log.FieldUserID, m.From.ID, log.FieldAction, "start")
		b.send(m.Chat.ID, msgDenied)
		return
	}

	b.sendWithKeyboard(m.Chat.ID, msgWelcome, menuKeyboard())
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	// Acknowledge the button press so the client stops its spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.logger.Debug("Failed to answer callback query", log.FieldError, err)
	}

	if cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	// Same explicit denial as /start: one authorization policy for every
	// interactive entry point.
	if !b.isAdmin(cb.From.ID) {
		b.logger.Warn("Access denied", log.FieldUserID, cb.From.ID, log.FieldAction, cb.Data)
		b.send(chatID, msgDenied)
		return
	}

	action, err := ParseMenuAction(cb.Data)
	if err != nil {
		b.logger.Warn("Rejected callback", log.FieldUserID, cb.From.ID, log.FieldError, err)
		return
	}

	switch action {
	case ActionInflow, ActionOutflow:
		kind, _ := action.Kind()
		b.sessions.Set(cb.From.ID, kind)
		b.send(chatID, msgEntryPrompt)

	case ActionBalance:
		balance, err := b.ledger.Balance(ctx)
		if err != nil {
			b.logger.Error("Failed to read balance", log.FieldError, err)
			return
		}
		b.broadcast(ctx, report.Balance(balance))
		b.sendWithKeyboard(chatID, report.BalanceReply(balance), backKeyboard())

	case ActionHistory:
		txs, err := b.ledger.History(ctx)
		if err != nil {
			b.logger.Error("Failed to read history", log.FieldError, err)
			return
		}
		table := report.History(txs)
		b.broadcast(ctx, table)
		b.sendWithKeyboard(chatID, table, backKeyboard())

	case ActionMenu:
		b.sendWithKeyboard(chatID, msgMainMenu, menuKeyboard())
	}
}

// handleEntry consumes "jumlah keterangan" text while a kind is pending.
// Free text without a pending kind is ignored entirely, for admins and
// strangers alike.
func (b *Bot) handleEntry(ctx context.Context, m *tgbotapi.Message) {
	if !b.isAdmin(m.From.ID) {
		return
	}

	kind, ok := b.sessions.Get(m.From.ID)
	if !ok {
		return
	}

	amount, note, err := core.ParseEntry(m.Text)
	if err != nil {
		// Pending kind survives so the admin can retry the same entry.
		b.send(m.Chat.ID, msgBadEntry)
		return
	}

	id, err := b.ledger.Record(ctx, kind, amount, note)
	if err != nil {
		if errors.Is(err, core.ErrInvalidAmount) || errors.Is(err, core.ErrEmptyNote) {
			b.send(m.Chat.ID, msgBadEntry)
			return
		}
		b.logger.Error("Failed to record transaction",
			log.FieldUserID, m.From.ID,
			log.FieldKind, kind,
			log.FieldError, err)
		return
	}

	b.sessions.Clear(m.From.ID)
	b.logger.Info("Transaction recorded",
		log.FieldUserID, m.From.ID,
		log.FieldKind, kind,
		log.FieldAmount, amount,
		"id", id)
	b.sendWithKeyboard(m.Chat.ID, msgSaved, menuKeyboard())
}

// broadcast mirrors a report to the channel. Failures are logged and
// swallowed so the admin reply still goes out.
func (b *Bot) broadcast(ctx context.Context, text string) {
	if b.notifier == nil {
		return
	}
	if err := b.notifier.Broadcast(ctx, text); err != nil {
		b.logger.Error("Failed to broadcast report", log.FieldError, err)
	}
}
