// Package core provides the cash-book domain types and the parsing of
// "amount note" entries typed by the administrator.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseEntry splits a raw "jumlah keterangan" message into an amount and a
// note. The amount must be a positive base-10 integer in the smallest
// currency unit; the note is everything after the first space and must not
// be blank.
//
// Examples:
//
//	ParseEntry("50000 iuran anggota") -> 50000, "iuran anggota", nil
//	ParseEntry("abc dues")            -> ErrInvalidAmount
//	ParseEntry("50000")               -> ErrEmptyNote
func ParseEntry(s string) (int64, string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, "", ErrInvalidAmount
	}

	raw, note, found := strings.Cut(s, " ")
	if !found {
		return 0, "", ErrEmptyNote
	}

	for _, r := range raw {
		if !unicode.IsDigit(r) {
			return 0, "", ErrInvalidAmount
		}
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount <= 0 {
		return 0, "", ErrInvalidAmount
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return 0, "", ErrEmptyNote
	}

	return amount, note, nil
}
