package bot

import (
	"context"
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"kasbot/internal/core"
	"kasbot/internal/report"
)

const (
	adminID    = int64(111)
	strangerID = int64(999)
	chatID     = int64(555)
)

type fakeAPI struct {
	sent     []tgbotapi.MessageConfig
	requests []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if msg, ok := c.(tgbotapi.MessageConfig); ok {
		f.sent = append(f.sent, msg)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) lastText(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatalf("no messages sent")
	}
	return f.sent[len(f.sent)-1].Text
}

type fakeLedger struct {
	txs       []core.Transaction
	recordErr error
}

func (f *fakeLedger) Record(_ context.Context, kind core.Kind, amount int64, note string) (int64, error) {
	if f.recordErr != nil {
		return 0, f.recordErr
	}
	tx := core.Transaction{
		ID:     int64(len(f.txs) + 1),
		Date:   "01-01-2025",
		Kind:   kind,
		Amount: amount,
		Note:   note,
	}
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	f.txs = append(f.txs, tx)
	return tx.ID, nil
}

func (f *fakeLedger) Balance(context.Context) (int64, error) {
	var sum int64
	for _, tx := range f.txs {
		sum += tx.Signed()
	}
	return sum, nil
}

func (f *fakeLedger) History(context.Context) ([]core.Transaction, error) {
	return f.txs, nil
}

type fakeNotifier struct {
	broadcasts []string
	err        error
}

func (f *fakeNotifier) Broadcast(_ context.Context, text string) error {
	if f.err != nil {
		return f.err
	}
	f.broadcasts = append(f.broadcasts, text)
	return nil
}

func newTestBot() (*Bot, *fakeAPI, *fakeLedger, *fakeNotifier) {
	api := &fakeAPI{}
	led := &fakeLedger{}
	not := &fakeNotifier{}
	b := New(api, []int64{adminID}, led, not, nil)
	return b, api, led, not
}

func startUpdate(userID int64) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text:     "/start",
			From:     &tgbotapi.User{ID: userID},
			Chat:     &tgbotapi.Chat{ID: chatID},
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}},
		},
	}
}

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: chatID},
		},
	}
}

func callbackUpdate(userID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			Data:    data,
			From:    &tgbotapi.User{ID: userID},
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: chatID}},
		},
	}
}

func TestStartShowsMenuForAdmin(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), startUpdate(adminID))

	if got := api.lastText(t); !strings.Contains(got, "BOT KAS BENDAHARA") {
		t.Fatalf("expected welcome message, got %q", got)
	}
	if api.sent[len(api.sent)-1].ReplyMarkup == nil {
		t.Fatalf("expected main menu keyboard")
	}
}

func TestStartDeniedForStranger(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), startUpdate(strangerID))

	if got := api.lastText(t); got != msgDenied {
		t.Fatalf("expected denial, got %q", got)
	}
	if b.sessions.Len() != 0 {
		t.Fatalf("no session should be created for a denied actor")
	}
}

func TestCallbackDeniedForStranger(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), callbackUpdate(strangerID, string(ActionInflow)))

	if got := api.lastText(t); got != msgDenied {
		t.Fatalf("expected denial, got %q", got)
	}
	if b.sessions.Len() != 0 {
		t.Fatalf("no session should be created for a denied actor")
	}
}

func TestUnknownCallbackRejected(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, "DROP_TABLE"))

	if len(api.sent) != 0 {
		t.Fatalf("unknown action should not produce a reply, got %q", api.lastText(t))
	}
	if len(api.requests) != 1 {
		t.Fatalf("callback should still be answered")
	}
}

func TestSelectKindPromptsForEntry(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, string(ActionInflow)))

	if got := api.lastText(t); !strings.Contains(got, "jumlah keterangan") {
		t.Fatalf("expected entry prompt, got %q", got)
	}
	kind, ok := b.sessions.Get(adminID)
	if !ok || kind != core.Inflow {
		t.Fatalf("expected pending inflow, got %q (%v)", kind, ok)
	}
}

func TestSelectKindReplacesPriorSelection(t *testing.T) {
	b, _, _, _ := newTestBot()
	ctx := context.Background()

	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionInflow)))
	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionOutflow)))

	kind, ok := b.sessions.Get(adminID)
	if !ok || kind != core.Outflow {
		t.Fatalf("expected pending outflow after reselect, got %q (%v)", kind, ok)
	}
}

func TestEntryRecordsTransaction(t *testing.T) {
	b, api, led, _ := newTestBot()
	ctx := context.Background()

	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionInflow)))
	b.HandleUpdate(ctx, textUpdate(adminID, "50000 iuran anggota"))

	if len(led.txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(led.txs))
	}
	tx := led.txs[0]
	if tx.Kind != core.Inflow || tx.Amount != 50000 || tx.Note != "iuran anggota" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if _, ok := b.sessions.Get(adminID); ok {
		t.Fatalf("session should be consumed after a successful record")
	}
	if got := api.lastText(t); got != msgSaved {
		t.Fatalf("expected acknowledgment, got %q", got)
	}
	if api.sent[len(api.sent)-1].ReplyMarkup == nil {
		t.Fatalf("expected main menu to be re-shown")
	}
}

// A malformed entry must not drop the pending kind: the next well-formed
// message is still accepted under the originally selected kind.
func TestMalformedEntryKeepsPendingKind(t *testing.T) {
	b, api, led, _ := newTestBot()
	ctx := context.Background()

	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionInflow)))
	b.HandleUpdate(ctx, textUpdate(adminID, "abc"))

	if got := api.lastText(t); got != msgBadEntry {
		t.Fatalf("expected format error, got %q", got)
	}
	if kind, ok := b.sessions.Get(adminID); !ok || kind != core.Inflow {
		t.Fatalf("pending kind should survive a malformed entry")
	}

	b.HandleUpdate(ctx, textUpdate(adminID, "1000 dues"))

	if len(led.txs) != 1 || led.txs[0].Kind != core.Inflow || led.txs[0].Amount != 1000 {
		t.Fatalf("retry should record under the original kind, got %+v", led.txs)
	}
}

func TestIdleTextIgnored(t *testing.T) {
	b, api, led, _ := newTestBot()

	b.HandleUpdate(context.Background(), textUpdate(adminID, "50000 iuran anggota"))

	if len(api.sent) != 0 {
		t.Fatalf("idle free text should be ignored, got %q", api.lastText(t))
	}
	if len(led.txs) != 0 {
		t.Fatalf("idle free text should not record anything")
	}
}

func TestStrangerTextIgnored(t *testing.T) {
	b, api, led, _ := newTestBot()

	b.HandleUpdate(context.Background(), textUpdate(strangerID, "50000 iuran anggota"))

	if len(api.sent) != 0 || len(led.txs) != 0 {
		t.Fatalf("free text from a stranger should be ignored entirely")
	}
}

func TestBalanceBroadcastsAndReplies(t *testing.T) {
	b, api, led, not := newTestBot()
	ctx := context.Background()

	led.txs = []core.Transaction{
		{ID: 1, Date: "01-01-2025", Kind: core.Inflow, Amount: 50000, Note: "a"},
		{ID: 2, Date: "02-01-2025", Kind: core.Outflow, Amount: 20000, Note: "b"},
	}

	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionBalance)))

	if len(not.broadcasts) != 1 || not.broadcasts[0] != report.Balance(30000) {
		t.Fatalf("expected balance broadcast, got %v", not.broadcasts)
	}
	got := api.lastText(t)
	if !strings.Contains(got, "30.000") || !strings.Contains(got, "Dikirim ke channel") {
		t.Fatalf("unexpected balance reply %q", got)
	}
	if api.sent[len(api.sent)-1].ReplyMarkup == nil {
		t.Fatalf("expected back keyboard on balance reply")
	}
}

func TestBalanceReplySurvivesBroadcastFailure(t *testing.T) {
	b, api, _, not := newTestBot()
	not.err = errors.New("channel unreachable")

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, string(ActionBalance)))

	if got := api.lastText(t); !strings.Contains(got, "SALDO SAAT INI") {
		t.Fatalf("reply should still be delivered when the broadcast fails, got %q", got)
	}
}

func TestHistoryBroadcastsTable(t *testing.T) {
	b, api, led, not := newTestBot()
	ctx := context.Background()

	led.txs = []core.Transaction{
		{ID: 1, Date: "01-01-2025", Kind: core.Inflow, Amount: 50000, Note: "iuran"},
	}

	b.HandleUpdate(ctx, callbackUpdate(adminID, string(ActionHistory)))

	want := report.History(led.txs)
	if len(not.broadcasts) != 1 || not.broadcasts[0] != want {
		t.Fatalf("expected history broadcast")
	}
	if got := api.lastText(t); got != want {
		t.Fatalf("reply should carry the same table")
	}
}

func TestMenuCallbackShowsMainMenu(t *testing.T) {
	b, api, _, _ := newTestBot()

	b.HandleUpdate(context.Background(), callbackUpdate(adminID, string(ActionMenu)))

	if got := api.lastText(t); got != msgMainMenu {
		t.Fatalf("expected main menu, got %q", got)
	}
	if api.sent[len(api.sent)-1].ReplyMarkup == nil {
		t.Fatalf("expected menu keyboard")
	}
}

func TestParseMenuAction(t *testing.T) {
	for _, data := range []string{"MASUK", "KELUAR", "SALDO", "RIWAYAT", "MENU"} {
		if _, err := ParseMenuAction(data); err != nil {
			t.Fatalf("%q should parse: %v", data, err)
		}
	}
	for _, data := range []string{"", "masuk", "SALDO2", "anything"} {
		if _, err := ParseMenuAction(data); err == nil {
			t.Fatalf("%q should be rejected", data)
		}
	}
}
