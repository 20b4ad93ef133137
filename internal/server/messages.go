package server

import "github.com/laya-karavadi/connect-four/internal/domain"

// ClientMessage is what the browser sends over the websocket.
type ClientMessage struct {
	Type   string `json:"type"`
	Column *int   `json:"column,omitempty"`
}

// ServerMessage is the single envelope for everything pushed to the
// client. Column and Row are pointers because 0 is a legal value for
// both and omitempty would swallow it.
type ServerMessage struct {
	Type        string  `json:"type"`
	Message     string  `json:"message,omitempty"`
	GameID      string  `json:"gameId,omitempty"`
	YourPlayer  int     `json:"yourPlayer,omitempty"`
	CurrentTurn int     `json:"currentTurn,omitempty"`
	Column      *int    `json:"column,omitempty"`
	Row         *int    `json:"row,omitempty"`
	Player      int     `json:"player,omitempty"`
	Board       [][]int `json:"board,omitempty"`
	NextTurn    int     `json:"nextTurn,omitempty"`
	Winner      int     `json:"winner,omitempty"`
	Reason      string  `json:"reason,omitempty"`
	Status      string  `json:"status,omitempty"`
	Depth       int     `json:"depth,omitempty"`
}

// Sender delivers a message to whichever connection is attached to a
// game. Implementations may report an error when nobody is listening;
// callers that only push best-effort updates ignore it.
type Sender interface {
	SendMessage(gameID string, message ServerMessage) error
}

// BoardPayload converts a board into the nested-slice shape the client
// renders, bottom row first.
func BoardPayload(b domain.Board) [][]int {
	out := make([][]int, domain.Rows)
	for r := 0; r < domain.Rows; r++ {
		row := make([]int, domain.Columns)
		for c := 0; c < domain.Columns; c++ {
			row[c] = int(b[r][c])
		}
		out[r] = row
	}
	return out
}
