// Package history keeps per-(service, user) conversation turns in process
// memory. Nothing is persisted; restarting the process discards all
// histories.
package history

import (
	"sync"

	"github.com/lawmate-ai/backend/models"
)

// Store maps (service category, user ID) to an ordered turn sequence.
// Histories are created lazily on first append and never removed. With
// maxTurns of 0 they grow unbounded for the process lifetime; a positive
// maxTurns keeps only the most recent turns per key.
type Store struct {
	mu       sync.RWMutex
	keys     map[storeKey]*entry
	maxTurns int
}

type storeKey struct {
	service string
	userID  string
}

// entry guards one history so concurrent appends for the same key cannot
// interleave, while appends for different keys do not contend.
type entry struct {
	mu    sync.Mutex
	turns []models.ConversationTurn
}

// NewStore creates a Store. maxTurns bounds retention per key; 0 disables
// the bound.
func NewStore(maxTurns int) *Store {
	return &Store{
		keys:     make(map[storeKey]*entry),
		maxTurns: maxTurns,
	}
}

// Append adds turns to the history for (service, userID), in request order.
func (s *Store) Append(service, userID string, turns ...models.ConversationTurn) {
	e := s.entryFor(service, userID)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.turns = append(e.turns, turns...)
	if s.maxTurns > 0 && len(e.turns) > s.maxTurns {
		trimmed := make([]models.ConversationTurn, s.maxTurns)
		copy(trimmed, e.turns[len(e.turns)-s.maxTurns:])
		e.turns = trimmed
	}
}

// Get returns a copy of the history for (service, userID). Unknown keys
// yield an empty, non-nil slice.
func (s *Store) Get(service, userID string) []models.ConversationTurn {
	s.mu.RLock()
	e, ok := s.keys[storeKey{service: service, userID: userID}]
	s.mu.RUnlock()

	if !ok {
		return []models.ConversationTurn{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.ConversationTurn, len(e.turns))
	copy(out, e.turns)
	return out
}

// Len reports the number of turns stored for (service, userID).
func (s *Store) Len(service, userID string) int {
	s.mu.RLock()
	e, ok := s.keys[storeKey{service: service, userID: userID}]
	s.mu.RUnlock()

	if !ok {
		return 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.turns)
}

func (s *Store) entryFor(service, userID string) *entry {
	key := storeKey{service: service, userID: userID}

	s.mu.RLock()
	e, ok := s.keys[key]
	s.mu.RUnlock()
	if ok {
		return e
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.keys[key]; ok {
		return e
	}
	e = &entry{}
	s.keys[key] = e
	return e
}
