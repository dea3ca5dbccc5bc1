// Package report renders the cash-book texts delivered to Telegram: the
// current balance and the fixed-width history table. All output is Telegram
// markdown.
package report

import (
	"fmt"
	"strings"

	"kasbot/internal/core"
)

const historyTitle = "📒 *BUKU KAS UMUM*"

// Balance renders the channel-facing balance report.
func Balance(amount int64) string {
	return fmt.Sprintf("💰 *SALDO KAS*\n\nRp %s", core.FormatRupiah(amount))
}

// BalanceReply renders the reply sent back to the requesting admin, with
// the note that the report was mirrored to the channel.
func BalanceReply(amount int64) string {
	return fmt.Sprintf("💰 *SALDO SAAT INI*\nRp %s\n\n📢 Dikirim ke channel", core.FormatRupiah(amount))
}

// History renders the monospaced cash-book table, one row per transaction
// in id order with a running balance per row. Notes are truncated to 14
// runes for display; the stored note is untouched.
func History(txs []core.Transaction) string {
	if len(txs) == 0 {
		return historyTitle + "\n\n_Belum ada transaksi_"
	}

	var b strings.Builder
	b.WriteString(historyTitle + "\n\n```\n")
	b.WriteString("No Tgl        Ket            Debet            Kredit           Saldo\n")
	b.WriteString(strings.Repeat("-", 68) + "\n")

	var saldo int64
	for i, tx := range txs {
		saldo += tx.Signed()

		debet, kredit := "-", "-"
		if tx.Kind == core.Inflow {
			debet = "🟢" + core.FormatRupiah(tx.Amount)
		} else {
			kredit = "🔴" + core.FormatRupiah(tx.Amount)
		}

		fmt.Fprintf(&b, "%-3d%-11s%-14s%-16s%-16s%s\n",
			i+1,
			tx.Date,
			truncate(tx.Note, 14),
			debet,
			kredit,
			core.FormatRupiah(saldo))
	}

	b.WriteString("```")
	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
