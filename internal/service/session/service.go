package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kaiyuanli/playroom/backend/internal/cache"
	"github.com/kaiyuanli/playroom/backend/internal/events"
	"github.com/kaiyuanli/playroom/backend/internal/metrics"
	"github.com/kaiyuanli/playroom/backend/internal/model/session"
	"github.com/kaiyuanli/playroom/backend/internal/store"
)

var (
	ErrPlayerRequired = errors.New("player id is required")
	ErrGameRequired   = errors.New("game id is required")

	// ErrSessionNotFound is surfaced unchanged from the store.
	ErrSessionNotFound = store.ErrSessionNotFound
)

// Service orchestrates idempotent session creation and read-through
// cached lookups. It is the sole caller of the store; the hub and
// metrics are optional observability side channels.
type Service struct {
	store   store.Store
	cache   *cache.Cache
	hub     *events.Hub
	metrics *metrics.Metrics

	// createMu serializes every creation attempt regardless of pair.
	// Simple and provably correct; creation is rare next to lookups.
	createMu sync.Mutex

	now   func() time.Time
	newID func() string
}

// NewService wires the session manager. hub and m may be nil.
func NewService(st store.Store, c *cache.Cache, hub *events.Hub, m *metrics.Metrics) *Service {
	return &Service{
		store:   st,
		cache:   c,
		hub:     hub,
		metrics: m,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Create opens a session for a (player, game) pair, or returns the one
// already active for it. Every caller racing on the same pair receives
// the same session id.
//
// The protocol is check / lock / double-check / insert: a lock-free
// fast path serves the common repeat-request case, and the re-check
// under createMu catches a racer that finished between the fast path
// and lock acquisition. The double check is what the guarantee rests
// on; the fast path is only an optimization.
func (s *Service) Create(ctx context.Context, req session.CreateRequest) (session.Response, error) {
	if req.PlayerID == "" {
		return session.Response{}, ErrPlayerRequired
	}
	if req.GameID == "" {
		return session.Response{}, ErrGameRequired
	}

	if existing, ok := s.store.GetActive(ctx, req.PlayerID, req.GameID); ok {
		return toResponse(existing), nil
	}

	s.createMu.Lock()
	if existing, ok := s.store.GetActive(ctx, req.PlayerID, req.GameID); ok {
		s.createMu.Unlock()
		return toResponse(existing), nil
	}

	sess := session.Session{
		ID:        s.newID(),
		PlayerID:  req.PlayerID,
		GameID:    req.GameID,
		StartedAt: s.now().UTC(),
		Status:    session.StatusActive,
	}
	err := s.store.Create(ctx, sess)
	s.createMu.Unlock()
	if err != nil {
		// No retries here; the caller decides what a failed insert means.
		return session.Response{}, err
	}

	s.metrics.RecordSessionCreated()
	s.hub.Publish(events.Event{
		Type:      events.EventSessionCreated,
		SessionID: sess.ID,
		PlayerID:  sess.PlayerID,
		GameID:    sess.GameID,
		StartedAt: sess.StartedAt,
		Status:    string(sess.Status),
	})

	return toResponse(sess), nil
}

// Get resolves a session id to its response snapshot. The bool reports
// whether the cache served the result. Unknown ids return
// ErrSessionNotFound and leave no cache entry behind.
//
// The miss path is deliberately lock-free: concurrent misses for one id
// each read the store and each write the cache, which is benign because
// sessions are immutable after creation and the writes are value-equal.
func (s *Service) Get(ctx context.Context, id string) (session.Response, bool, error) {
	if resp, ok := s.cache.Get(id); ok {
		s.metrics.RecordCacheHit()
		return resp, true, nil
	}
	s.metrics.RecordCacheMiss()

	sess, err := s.store.GetByID(ctx, id)
	if err != nil {
		return session.Response{}, false, err
	}

	resp := toResponse(sess)
	s.cache.Set(id, resp)
	return resp, false, nil
}

func toResponse(sess session.Session) session.Response {
	return session.Response{
		SessionID: sess.ID,
		StartedAt: sess.StartedAt,
		Status:    string(sess.Status),
	}
}
