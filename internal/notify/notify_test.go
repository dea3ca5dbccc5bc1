package notify

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func TestBroadcast(t *testing.T) {
	sender := &fakeSender{}
	ch := NewChannel(sender, -100123)

	if err := ch.Broadcast(context.Background(), "hello"); err != nil {
		t.Fatalf("broadcast: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(sender.sent))
	}
	msg := sender.sent[0]
	if msg.ChatID != -100123 {
		t.Fatalf("expected channel chat id, got %d", msg.ChatID)
	}
	if msg.Text != "hello" {
		t.Fatalf("unexpected text %q", msg.Text)
	}
	if msg.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("expected markdown parse mode, got %q", msg.ParseMode)
	}
}

func TestBroadcastPropagatesSendError(t *testing.T) {
	sender := &fakeSender{err: errors.New("bad gateway")}
	ch := NewChannel(sender, -100123)

	if err := ch.Broadcast(context.Background(), "hello"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBroadcastHonorsCancelledContext(t *testing.T) {
	sender := &fakeSender{}
	ch := NewChannel(sender, -100123)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := ch.Broadcast(ctx, "hello"); err == nil {
		t.Fatalf("expected context error")
	}
	if len(sender.sent) != 0 {
		t.Fatalf("nothing should be sent after cancellation")
	}
}
