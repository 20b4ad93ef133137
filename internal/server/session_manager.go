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
	"github.com/laya-karavadi/connect-four/pkg/uid"
)

// SessionManager owns the live sessions. Sessions evicted here can
// still be resurrected from the store as long as a snapshot exists.
type SessionManager struct {
	mu           sync.Mutex
	sessions     map[string]*GameSession
	store        store.Store
	defaultDepth int
	maxDepth     int
}

func NewSessionManager(st store.Store, defaultDepth, maxDepth int) *SessionManager {
	return &SessionManager{
		sessions:     make(map[string]*GameSession),
		store:        st,
		defaultDepth: defaultDepth,
		maxDepth:     maxDepth,
	}
}

// Create starts a new game at the requested search depth. Zero or
// negative means the configured default; anything above the configured
// maximum is clamped down to it.
func (sm *SessionManager) Create(ctx context.Context, depth int) *GameSession {
	if depth <= 0 {
		depth = sm.defaultDepth
	}
	if depth > sm.maxDepth {
		depth = sm.maxDepth
	}

	session := NewGameSession(uid.GenerateGameID(), depth, sm.store)

	sm.mu.Lock()
	sm.sessions[session.GameID] = session
	sm.mu.Unlock()

	if err := sm.store.Save(ctx, session.State()); err != nil {
		log.Warn().Err(err).Str("game_id", session.GameID).Msg("failed to persist new session")
	}

	log.Info().Str("game_id", session.GameID).Int("depth", depth).Msg("created game session")
	return session
}

// Get returns the live session for gameID, resurrecting it from the
// store when the process has restarted or the session was pruned.
func (sm *SessionManager) Get(ctx context.Context, gameID string) (*GameSession, bool) {
	sm.mu.Lock()
	if session, ok := sm.sessions[gameID]; ok {
		sm.mu.Unlock()
		return session, true
	}
	sm.mu.Unlock()

	state, err := sm.store.Load(ctx, gameID)
	if err != nil {
		return nil, false
	}
	session := restoreSession(state, sm.store)

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if existing, ok := sm.sessions[gameID]; ok {
		// Someone else resurrected it while we were loading.
		return existing, true
	}
	sm.sessions[gameID] = session
	log.Info().Str("game_id", gameID).Msg("restored game session from store")
	return session, true
}

// Remove drops the session and its snapshot.
func (sm *SessionManager) Remove(ctx context.Context, gameID string) {
	sm.mu.Lock()
	delete(sm.sessions, gameID)
	sm.mu.Unlock()

	if err := sm.store.Delete(ctx, gameID); err != nil {
		log.Warn().Err(err).Str("game_id", gameID).Msg("failed to delete session snapshot")
	}
}

// Count returns the number of sessions currently held in memory.
func (sm *SessionManager) Count() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}

// PruneIdle evicts sessions with no activity since maxIdle ago and
// returns how many were dropped. Finished games lose their snapshot
// too; unfinished ones keep it so a returning client can resume.
func (sm *SessionManager) PruneIdle(ctx context.Context, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	sm.mu.Lock()
	var evicted []*GameSession
	for gameID, session := range sm.sessions {
		if session.LastActivity().Before(cutoff) {
			evicted = append(evicted, session)
			delete(sm.sessions, gameID)
		}
	}
	sm.mu.Unlock()

	for _, session := range evicted {
		if !session.IsFinished() {
			continue
		}
		if err := sm.store.Delete(ctx, session.GameID); err != nil {
			log.Warn().Err(err).Str("game_id", session.GameID).Msg("failed to delete session snapshot")
		}
	}
	return len(evicted)
}

func restoreSession(state store.SessionState, st store.Store) *GameSession {
	depth := state.Depth
	if depth <= 0 {
		depth = engine.DEFAULT_DEPTH
	}
	restored := &game.Game{
		Board:       state.Board,
		CurrentTurn: state.Turn,
		Status:      state.Status,
		Winner:      state.Winner,
		MoveCount:   state.MoveCount,
	}
	return &GameSession{
		GameID:       state.GameID,
		CreatedAt:    state.UpdatedAt,
		game:         restored,
		engine:       engine.New(domain.Player2, engine.WithDepth(depth)),
		depth:        depth,
		store:        st,
		lastActivity: time.Now(),
	}
}
