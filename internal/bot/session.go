package bot

import (
	"sync"

	"kasbot/internal/core"
)

// sessions holds the per-admin pending transaction kind: set when a record
// button is pressed, consumed when a well-formed entry arrives, kept when
// the entry is malformed so the admin can retry the same kind. Never
// persisted; a restart starts everyone at the main menu.
type sessions struct {
	mu      sync.Mutex
	pending map[int64]core.Kind
}

func newSessions() *sessions {
	return &sessions{pending: make(map[int64]core.Kind)}
}

// Set stores the pending kind for a user, replacing any earlier selection.
func (s *sessions) Set(userID int64, kind core.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[userID] = kind
}

// Get peeks at the pending kind without consuming it.
func (s *sessions) Get(userID int64) (core.Kind, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kind, ok := s.pending[userID]
	return kind, ok
}

// Clear drops the pending kind for a user.
func (s *sessions) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, userID)
}

func (s *sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
