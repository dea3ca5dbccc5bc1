package bot

import (
	"fmt"

	"kasbot/internal/core"
)

// MenuAction is the closed set of inline-keyboard callback actions. Every
// callback payload must parse into one of these; anything else is rejected
// instead of silently dispatched.
type MenuAction string

const (
	ActionInflow  MenuAction = "MASUK"
	ActionOutflow MenuAction = "KELUAR"
	ActionBalance MenuAction = "SALDO"
	ActionHistory MenuAction = "RIWAYAT"
	ActionMenu    MenuAction = "MENU"
)

// ParseMenuAction maps raw callback data onto the action set.
func ParseMenuAction(data string) (MenuAction, error) {
	switch a := MenuAction(data); a {
	case ActionInflow, ActionOutflow, ActionBalance, ActionHistory, ActionMenu:
		return a, nil
	default:
		return "", fmt.Errorf("unknown menu action %q", data)
	}
}

// Kind returns the transaction kind selected by a record action.
func (a MenuAction) Kind() (core.Kind, bool) {
	switch a {
	case ActionInflow:
		return core.Inflow, true
	case ActionOutflow:
		return core.Outflow, true
	default:
		return "", false
	}
}
