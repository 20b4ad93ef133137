package store

import (
	"context"
	"time"

	"github.com/laya-karavadi/connect-four/internal/domain"
)

// SessionState is the snapshot of one live game. Snapshots exist so a
// session can be resurrected after a server restart; finished games get
// deleted, never archived.
type SessionState struct {
	GameID    string            `json:"gameId"`
	Board     domain.Board      `json:"board"` // row 0 is the bottom row
	Turn      domain.PlayerID   `json:"turn"`
	Status    domain.GameStatus `json:"status"`
	Winner    domain.PlayerID   `json:"winner"`
	MoveCount int               `json:"moveCount"`
	Depth     int               `json:"depth"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// ErrNotFound is returned when no snapshot exists for a game ID.
const ErrNotFound = domain.Error("session state not found")

// Store keeps live-game snapshots with a TTL.
type Store interface {
	Save(ctx context.Context, state SessionState) error
	Load(ctx context.Context, gameID string) (SessionState, error)
	Delete(ctx context.Context, gameID string) error
}
