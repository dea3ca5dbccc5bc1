package bot

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func menuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Pemasukan", string(ActionInflow)),
			tgbotapi.NewInlineKeyboardButtonData("🔴 Pengeluaran", string(ActionOutflow)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💰 Saldo", string(ActionBalance)),
			tgbotapi.NewInlineKeyboardButtonData("📒 Riwayat", string(ActionHistory)),
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Kembali", string(ActionMenu)),
		),
	)
}
