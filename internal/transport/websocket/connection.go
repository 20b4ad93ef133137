package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/laya-karavadi/connect-four/internal/server"
)

// Connection holds one websocket connection together with its write
// mutex. gorilla/websocket allows only one concurrent writer, so every
// data write goes through Send.
type Connection struct {
	Conn       *websocket.Conn
	WriteMutex *sync.Mutex
}

// Send writes one message to the connection. The mutex makes it safe to
// call from any goroutine.
func (c *Connection) Send(message server.ServerMessage) error {
	data, err := json.Marshal(message)
	if err != nil {
		return err
	}

	c.WriteMutex.Lock()
	defer c.WriteMutex.Unlock()
	c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.Conn.WriteMessage(websocket.TextMessage, data)
}

// ConnectionManager tracks at most one connection per game. It
// implements server.Sender.
type ConnectionManager struct {
	connections map[string]*Connection // gameID -> connection
	mu          sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*Connection),
	}
}

// Add attaches conn to gameID and returns the tracked connection. An
// existing connection for the same game is told it has been displaced
// and then closed, so opening the game in a second tab moves it there.
func (cm *ConnectionManager) Add(gameID string, conn *websocket.Conn) *Connection {
	connection := &Connection{
		Conn:       conn,
		WriteMutex: &sync.Mutex{},
	}

	cm.mu.Lock()
	old, displaced := cm.connections[gameID]
	cm.connections[gameID] = connection
	cm.mu.Unlock()

	if displaced {
		log.Info().Str("game_id", gameID).Msg("displacing existing websocket connection")
		old.Send(server.ServerMessage{
			Type:    "displaced",
			Message: "Game opened from another tab or device",
		})
		old.Conn.Close()
	}
	return connection
}

// Remove detaches conn from gameID. The conn argument guards against a
// stale reader removing the connection that displaced it.
func (cm *ConnectionManager) Remove(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	current, exists := cm.connections[gameID]
	if exists && current.Conn == conn {
		delete(cm.connections, gameID)
	}
}

// Count returns the number of attached connections.
func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}

// SendMessage pushes a message to the connection attached to gameID.
func (cm *ConnectionManager) SendMessage(gameID string, message server.ServerMessage) error {
	cm.mu.RLock()
	connection, exists := cm.connections[gameID]
	cm.mu.RUnlock()

	if !exists {
		return fmt.Errorf("no connection for game %s", gameID)
	}
	return connection.Send(message)
}
