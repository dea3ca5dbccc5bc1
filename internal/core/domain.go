package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Inflow  Kind = "MASUK"
	Outflow Kind = "KELUAR"
)

// DateLayout is the calendar-day format stored with every transaction.
const DateLayout = "02-01-2006"

type (
	Kind string

	// Transaction is a single cash movement. Immutable once recorded.
	Transaction struct {
		ID     int64
		Date   string // DateLayout, local time at creation
		Kind   Kind
		Amount int64 // smallest currency unit, always positive
		Note   string
	}
)

var (
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyNote     = errors.New("empty note")
)

func (k Kind) Validate() error {
	switch k {
	case Inflow, Outflow:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Sign returns +1 for an inflow and -1 for an outflow.
func (k Kind) Sign() int64 {
	if k == Inflow {
		return 1
	}
	return -1
}

func (t Transaction) Validate() error {
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(t.Note) == "" {
		return ErrEmptyNote
	}
	return nil
}

// Signed returns the amount with the kind's sign applied, the contribution
// of this transaction to the running balance.
func (t Transaction) Signed() int64 {
	return t.Amount * t.Kind.Sign()
}

// Today returns the current local day in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
