package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/laya-karavadi/connect-four/internal/server"
	"github.com/laya-karavadi/connect-four/pkg/auth"
	"github.com/laya-karavadi/connect-four/pkg/httputil"
	"github.com/laya-karavadi/connect-four/pkg/useragent"
)

// Handler upgrades authenticated requests and routes game messages for
// the lifetime of the connection.
type Handler struct {
	manager  *ConnectionManager
	sessions *server.SessionManager
	tokens   *auth.TokenManager
	upgrader websocket.Upgrader
}

func NewHandler(manager *ConnectionManager, sessions *server.SessionManager, tokens *auth.TokenManager, allowedOrigins []string) *Handler {
	return &Handler{
		manager:  manager,
		sessions: sessions,
		tokens:   tokens,
		upgrader: CreateUpgrader(allowedOrigins),
	}
}

// ServeWS handles GET /ws?token=... The token carries the game ID, so
// the connection is bound to exactly one game before the upgrade
// happens.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	tokenString, err := httputil.TokenFromRequest(r)
	if err != nil {
		http.Error(w, "token required", http.StatusUnauthorized)
		return
	}

	claims, err := h.tokens.Validate(tokenString)
	if err != nil {
		http.Error(w, "invalid or expired token", http.StatusUnauthorized)
		return
	}

	session, ok := h.sessions.Get(r.Context(), claims.GameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game_id", session.GameID).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	tracked := h.manager.Add(session.GameID, conn)
	defer h.manager.Remove(session.GameID, conn)
	log.Info().
		Str("game_id", session.GameID).
		Str("device", useragent.Describe(r)).
		Str("ip", useragent.RemoteIP(r)).
		Msg("websocket connected")

	// Detect stale connections with a read deadline that pongs extend.
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			// WriteControl is safe alongside the mutex-held data writes.
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}()

	// Push the full state right away so a reconnecting client can
	// redraw the board without asking.
	h.manager.SendMessage(session.GameID, session.StateMessage())

	for {
		var message server.ClientMessage
		if err := conn.ReadJSON(&message); err != nil {
			log.Info().Err(err).Str("game_id", session.GameID).Msg("websocket closed")
			return
		}
		h.route(message, tracked, session)
	}
}

func (h *Handler) route(message server.ClientMessage, conn *Connection, session *server.GameSession) {
	switch message.Type {
	case "move":
		if message.Column == nil {
			SendErrorMessage(conn, "invalid_move", "column is required")
			return
		}
		if _, err := session.HandleMove(context.Background(), *message.Column, h.manager); err != nil {
			SendErrorMessage(conn, "invalid_move", err.Error())
		}
	case "restart":
		session.Restart(context.Background(), h.manager)
	case "state":
		h.manager.SendMessage(session.GameID, session.StateMessage())
	default:
		SendErrorMessage(conn, "unknown_message_type", "Unknown message type")
	}
}

// SendErrorMessage sends a typed error to a single connection. Replies
// go to the connection that sent the offending frame, which after a
// displacement is not the one attached to the game.
func SendErrorMessage(conn *Connection, errorType, message string) {
	conn.Send(server.ServerMessage{
		Type:    errorType,
		Message: message,
	})
}

// CreateUpgrader builds an upgrader that accepts the configured
// origins. An empty list allows everything, which is the development
// setup.
func CreateUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if origin == allowed {
					return true
				}
			}
			return false
		},
	}
}
