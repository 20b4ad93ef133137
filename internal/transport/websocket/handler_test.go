package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laya-karavadi/connect-four/internal/domain"
	"github.com/laya-karavadi/connect-four/internal/server"
	"github.com/laya-karavadi/connect-four/internal/store"
	"github.com/laya-karavadi/connect-four/pkg/auth"
)

func newTestServer(t *testing.T) (*httptest.Server, *ConnectionManager, *server.SessionManager, *auth.TokenManager) {
	t.Helper()
	sessions := server.NewSessionManager(store.NewMemoryStore(0), 2, 8)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	manager := NewConnectionManager()
	handler := NewHandler(manager, sessions, tokens, nil)

	ts := httptest.NewServer(http.HandlerFunc(handler.ServeWS))
	t.Cleanup(ts.Close)
	return ts, manager, sessions, tokens
}

func wsURL(ts *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "?token=" + token
}

func dial(t *testing.T, ts *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, token), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) server.ServerMessage {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg server.ServerMessage
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func sendMove(t *testing.T, conn *websocket.Conn, column int) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(server.ClientMessage{Type: "move", Column: &column}))
}

func TestServeWSRejectsBadToken(t *testing.T) {
	ts, _, _, _ := newTestServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, "garbage"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServeWSRejectsUnknownGame(t *testing.T) {
	ts, _, _, tokens := newTestServer(t)

	token, err := tokens.Issue("no-such-game")
	require.NoError(t, err)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(ts, token), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServeWSPushesInitialState(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)

	msg := readMessage(t, conn)
	assert.Equal(t, "game_state", msg.Type)
	assert.Equal(t, session.GameID, msg.GameID)
	assert.Equal(t, int(domain.Player1), msg.YourPlayer)
	assert.Equal(t, int(domain.Player1), msg.CurrentTurn)
	require.Len(t, msg.Board, domain.Rows)
}

func TestServeWSMoveFlow(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)
	readMessage(t, conn) // initial game_state

	sendMove(t, conn, 3)

	human := readMessage(t, conn)
	assert.Equal(t, "move_made", human.Type)
	assert.Equal(t, int(domain.Player1), human.Player)
	require.NotNil(t, human.Column)
	assert.Equal(t, 3, *human.Column)

	engine := readMessage(t, conn)
	assert.Equal(t, "move_made", engine.Type)
	assert.Equal(t, int(domain.Player2), engine.Player)
	assert.Equal(t, int(domain.Player1), engine.NextTurn)

	state := session.State()
	assert.Equal(t, 2, state.MoveCount)
}

func TestServeWSRejectsInvalidMove(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)
	readMessage(t, conn)

	sendMove(t, conn, 99)
	msg := readMessage(t, conn)
	assert.Equal(t, "invalid_move", msg.Type)
	assert.Equal(t, 0, session.State().MoveCount)
}

func TestServeWSRestart(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)
	readMessage(t, conn)

	sendMove(t, conn, 3)
	readMessage(t, conn)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(server.ClientMessage{Type: "restart"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "game_state", msg.Type)
	for _, row := range msg.Board {
		for _, cell := range row {
			assert.Equal(t, 0, cell)
		}
	}
	assert.Equal(t, 0, session.State().MoveCount)
}

func TestServeWSUnknownMessageType(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(server.ClientMessage{Type: "bogus"}))
	msg := readMessage(t, conn)
	assert.Equal(t, "unknown_message_type", msg.Type)
}

func TestServeWSDisplacesOlderConnection(t *testing.T) {
	ts, _, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	first := dial(t, ts, token)
	readMessage(t, first)

	second := dial(t, ts, token)
	readMessage(t, second)

	msg := readMessage(t, first)
	assert.Equal(t, "displaced", msg.Type)

	// The newer connection keeps working.
	sendMove(t, second, 0)
	moved := readMessage(t, second)
	assert.Equal(t, "move_made", moved.Type)
}

func TestServeWSSerializesConcurrentWrites(t *testing.T) {
	ts, manager, sessions, tokens := newTestServer(t)
	session := sessions.Create(context.Background(), 2)
	token, err := tokens.Issue(session.GameID)
	require.NoError(t, err)

	conn := dial(t, ts, token)
	readMessage(t, conn)

	// State pushes from another goroutine overlap the read loop's error
	// replies, the same way a REST move fans out mid-connection. Every
	// frame must arrive whole.
	const rounds = 50
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < rounds; i++ {
			manager.SendMessage(session.GameID, session.StateMessage())
		}
	}()

	for i := 0; i < rounds; i++ {
		require.NoError(t, conn.WriteJSON(server.ClientMessage{Type: "move"}))
	}

	counts := map[string]int{}
	for i := 0; i < 2*rounds; i++ {
		counts[readMessage(t, conn).Type]++
	}
	wg.Wait()

	assert.Equal(t, rounds, counts["invalid_move"])
	assert.Equal(t, rounds, counts["game_state"])
}
