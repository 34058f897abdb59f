package session

import "time"

// Status describes the lifecycle state of a game session.
type Status string

const (
	StatusActive    Status = "Active"
	StatusPaused    Status = "Paused"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

// Session binds a player to a game for one play period. A session is
// created with StatusActive and is never mutated in place afterwards;
// status transitions belong to collaborators outside this service.
type Session struct {
	ID        string    `json:"id"`
	PlayerID  string    `json:"playerId"`
	GameID    string    `json:"gameId"`
	StartedAt time.Time `json:"startedAt"`
	Status    Status    `json:"status"`
}

// CreateRequest carries the identifiers a caller supplies to open a session.
type CreateRequest struct {
	PlayerID string `json:"playerId"`
	GameID   string `json:"gameId"`
}

// Response is the snapshot shape returned to callers and held in the
// lookup cache.
type Response struct {
	SessionID string    `json:"sessionId"`
	StartedAt time.Time `json:"startedAt"`
	Status    string    `json:"status"`
}
