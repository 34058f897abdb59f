package store

import (
	"context"
	"sync"

	"github.com/kaiyuanli/playroom/backend/internal/model/session"
)

// pairKey identifies a (player, game) pair in the active index.
type pairKey struct {
	playerID string
	gameID   string
}

// MemoryStore implements Store with two maps behind a single mutex:
// sessions keyed by id, and an advisory index from (player, game) to
// the id of the currently active session. Holding one lock across both
// maps makes Create a true test-and-set over the pair of structures,
// so a racing creation can never observe the session map and the index
// in disagreement.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
	active   map[pairKey]string
}

// NewMemoryStore bootstraps the in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]session.Session),
		active:   make(map[pairKey]string),
	}
}

// Create inserts the session by id and claims the active-index slot for
// its pair if no earlier session holds it. When the slot is already
// held the session is still stored by id but stays unindexed; the index
// keeps pointing at the first winner. The caller's session remains
// valid and readable either way.
func (m *MemoryStore) Create(_ context.Context, sess session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[sess.ID]; ok {
		return ErrSessionExists
	}
	m.sessions[sess.ID] = sess

	key := pairKey{playerID: sess.PlayerID, gameID: sess.GameID}
	if _, claimed := m.active[key]; !claimed {
		m.active[key] = sess.ID
	}
	return nil
}

// GetByID looks up a session by identifier.
func (m *MemoryStore) GetByID(_ context.Context, id string) (session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

// HasActive reports whether the pair has a confirmed Active session.
// Stale index entries are discarded on the way.
func (m *MemoryStore) HasActive(_ context.Context, playerID, gameID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.lookupActiveLocked(playerID, gameID)
	return ok
}

// GetActive returns the live Active session for the pair. Same
// validation and lazy cleanup as HasActive.
func (m *MemoryStore) GetActive(_ context.Context, playerID, gameID string) (session.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.lookupActiveLocked(playerID, gameID)
}

// lookupActiveLocked validates the index entry for the pair against the
// session map and removes it when the referenced session is missing or
// no longer Active. Caller must hold m.mu.
func (m *MemoryStore) lookupActiveLocked(playerID, gameID string) (session.Session, bool) {
	key := pairKey{playerID: playerID, gameID: gameID}
	id, ok := m.active[key]
	if !ok {
		return session.Session{}, false
	}

	sess, ok := m.sessions[id]
	if !ok || sess.Status != session.StatusActive {
		// The entry is advisory; drop it once it stops pointing at a
		// live Active session.
		delete(m.active, key)
		return session.Session{}, false
	}
	return sess, true
}
