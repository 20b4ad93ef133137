package domain

// PlayerID marks who owns a cell.
type PlayerID int

const (
	Empty   PlayerID = 0
	Player1 PlayerID = 1
	Player2 PlayerID = 2
)

// Board geometry.
const (
	Rows    = 6
	Columns = 7
	ToWin   = 4
)

// CenterColumn is the middle column of the grid.
const CenterColumn = Columns / 2

// Opponent returns the other side.
func (p PlayerID) Opponent() PlayerID {
	if p == Player1 {
		return Player2
	}
	return Player1
}

// to represent the game status
type GameStatus string

const (
	StatusActive GameStatus = "active"
	StatusWon    GameStatus = "won"
	StatusDraw   GameStatus = "draw"
)

// Error is a constant string error.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	ErrInvalidMove Error = "invalid move"
	ErrColumnFull  Error = "column is full"
	ErrGameOver    Error = "game is already over"
	ErrNotYourTurn Error = "not your turn"
)
