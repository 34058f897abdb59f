package store

import (
	"context"
	"errors"

	"github.com/kaiyuanli/playroom/backend/internal/model/session"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

// Store owns every session for the process lifetime and is the only
// place sessions are inserted or read by identifier. Implementations
// must be safe under unbounded concurrent callers with no external
// locking. Methods take a context so a durable backend can be swapped
// in without changing callers; the in-memory implementation ignores it.
type Store interface {
	// Create inserts the session by id and, in the same atomic step,
	// claims the (playerID, gameID) active-index slot when it is free.
	Create(ctx context.Context, sess session.Session) error

	// GetByID returns the session stored under id, or ErrSessionNotFound.
	GetByID(ctx context.Context, id string) (session.Session, error)

	// HasActive reports whether a live Active session exists for the pair.
	HasActive(ctx context.Context, playerID, gameID string) bool

	// GetActive returns the live Active session for the pair, if any.
	GetActive(ctx context.Context, playerID, gameID string) (session.Session, bool)
}
