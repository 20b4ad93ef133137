package server

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/laya-karavadi/connect-four/internal/domain"
	"github.com/laya-karavadi/connect-four/internal/engine"
	"github.com/laya-karavadi/connect-four/internal/game"
	"github.com/laya-karavadi/connect-four/internal/store"
)

// GameSession pairs one human (always Player1) with one search engine
// (always Player2). The engine answers synchronously inside the same
// HandleMove call, so the session never has a pending turn of its own.
type GameSession struct {
	GameID    string
	CreatedAt time.Time

	game         *game.Game
	engine       *engine.Engine
	depth        int
	store        store.Store
	finishedAt   time.Time
	lastActivity time.Time
	mu           sync.Mutex
}

// MoveResult reports where the human piece landed and what the engine
// answered, for callers that respond over plain HTTP instead of
// listening on the websocket.
type MoveResult struct {
	Row          int
	EngineColumn int
	EngineRow    int
	EngineMoved  bool
}

func NewGameSession(gameID string, depth int, st store.Store) *GameSession {
	now := time.Now()
	return &GameSession{
		GameID:       gameID,
		CreatedAt:    now,
		game:         game.New(),
		engine:       engine.New(domain.Player2, engine.WithDepth(depth)),
		depth:        depth,
		store:        st,
		lastActivity: now,
	}
}

// HandleMove plays the human move in column, then lets the engine reply
// if the game is still open. Progress is pushed to conn and the final
// outcome is also returned for HTTP callers.
func (gs *GameSession) HandleMove(ctx context.Context, column int, conn Sender) (MoveResult, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	row, err := gs.game.MakeMove(domain.Player1, column)
	if err != nil {
		return MoveResult{}, err
	}
	gs.lastActivity = time.Now()
	result := MoveResult{Row: row}

	if gs.game.IsFinished() {
		gs.finishedAt = time.Now()
		gs.snapshot(ctx)
		conn.SendMessage(gs.GameID, gs.gameOverMessageLocked())
		return result, nil
	}

	humanMove := ServerMessage{
		Type:     "move_made",
		Column:   &column,
		Row:      &row,
		Player:   int(domain.Player1),
		Board:    BoardPayload(gs.game.Board),
		NextTurn: int(gs.game.CurrentTurn),
	}
	conn.SendMessage(gs.GameID, humanMove)

	engineColumn, _ := gs.engine.BestMove(gs.game.Board)
	engineRow, err := gs.game.MakeMove(domain.Player2, engineColumn)
	if err != nil {
		gs.snapshot(ctx)
		return result, err
	}
	result.EngineColumn = engineColumn
	result.EngineRow = engineRow
	result.EngineMoved = true

	if gs.game.IsFinished() {
		gs.finishedAt = time.Now()
		gs.snapshot(ctx)
		conn.SendMessage(gs.GameID, gs.gameOverMessageLocked())
		return result, nil
	}

	engineMove := ServerMessage{
		Type:     "move_made",
		Column:   &engineColumn,
		Row:      &engineRow,
		Player:   int(domain.Player2),
		Board:    BoardPayload(gs.game.Board),
		NextTurn: int(gs.game.CurrentTurn),
	}
	conn.SendMessage(gs.GameID, engineMove)

	gs.snapshot(ctx)
	return result, nil
}

// Restart clears the board for another round against the same engine.
func (gs *GameSession) Restart(ctx context.Context, conn Sender) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.game.Restart()
	gs.finishedAt = time.Time{}
	gs.lastActivity = time.Now()
	gs.snapshot(ctx)
	conn.SendMessage(gs.GameID, gs.stateMessageLocked())
}

// State returns a point-in-time snapshot of the session.
func (gs *GameSession) State() store.SessionState {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateLocked()
}

// StateMessage builds the full game_state push used on connect and on
// explicit state requests.
func (gs *GameSession) StateMessage() ServerMessage {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.stateMessageLocked()
}

// IsFinished reports whether the game has been won or drawn.
func (gs *GameSession) IsFinished() bool {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.game.IsFinished()
}

// LastActivity is the time of the most recent move or restart.
func (gs *GameSession) LastActivity() time.Time {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.lastActivity
}

func (gs *GameSession) stateLocked() store.SessionState {
	return store.SessionState{
		GameID:    gs.GameID,
		Board:     gs.game.Board,
		Turn:      gs.game.CurrentTurn,
		Status:    gs.game.Status,
		Winner:    gs.game.Winner,
		MoveCount: gs.game.MoveCount,
		Depth:     gs.depth,
		UpdatedAt: time.Now().UTC(),
	}
}

func (gs *GameSession) stateMessageLocked() ServerMessage {
	return ServerMessage{
		Type:        "game_state",
		GameID:      gs.GameID,
		YourPlayer:  int(domain.Player1),
		CurrentTurn: int(gs.game.CurrentTurn),
		Board:       BoardPayload(gs.game.Board),
		Status:      string(gs.game.Status),
		Winner:      int(gs.game.Winner),
		Depth:       gs.depth,
	}
}

func (gs *GameSession) gameOverMessageLocked() ServerMessage {
	reason := "draw"
	if gs.game.Status == domain.StatusWon {
		reason = "connect_four"
	}
	return ServerMessage{
		Type:   "game_over",
		GameID: gs.GameID,
		Winner: int(gs.game.Winner),
		Reason: reason,
		Board:  BoardPayload(gs.game.Board),
	}
}

func (gs *GameSession) snapshot(ctx context.Context) {
	if err := gs.store.Save(ctx, gs.stateLocked()); err != nil {
		log.Warn().Err(err).Str("game_id", gs.GameID).Msg("failed to persist session snapshot")
	}
}
