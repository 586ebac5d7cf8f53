// Package transcript holds the ordered conversation log shared between
// the streaming client and the UI.
package transcript

import "sync"

// Store manages the ordered list of turns in the current chat session.
// The stream goroutine writes while the UI reads, so access is guarded.
// Operations never reorder or delete existing turns except Reset.
type Store struct {
	mu    sync.RWMutex
	turns []Turn
}

// NewStore creates an empty transcript store.
func NewStore() *Store {
	return &Store{
		turns: make([]Turn, 0),
	}
}

// AppendUserTurn appends a user turn followed by an empty model turn
// that will receive the streamed response. It returns the index of the
// model turn.
func (s *Store) AppendUserTurn(text string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, Turn{Role: RoleUser, Text: text})
	s.turns = append(s.turns, Turn{Role: RoleModel})
	return len(s.turns) - 1
}

// SetModelTurnText sets the text of the model turn at index to the full
// accumulated response so far. It is an idempotent set, not an append:
// callers pass the cumulative text on every delta. The call is a silent
// no-op when index is stale (out of range after a Reset) or does not
// point at a model turn.
func (s *Store) SetModelTurnText(index int, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.turns) {
		return
	}
	if s.turns[index].Role != RoleModel {
		return
	}
	s.turns[index].Text = text
}

// Reset clears the transcript for a new chat.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = s.turns[:0]
}

// Turns returns a snapshot copy of the transcript in insertion order.
func (s *Store) Turns() []Turn {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns in the transcript.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.turns)
}

// LastModelText returns the text of the most recent model turn, or ""
// when the transcript has none.
func (s *Store) LastModelText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.turns) - 1; i >= 0; i-- {
		if s.turns[i].Role == RoleModel {
			return s.turns[i].Text
		}
	}
	return ""
}
