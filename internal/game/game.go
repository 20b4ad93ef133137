package game

import (
	"github.com/laya-karavadi/connect-four/internal/domain"
)

// Game is the turn bookkeeping around one board: whose move it is,
// whether the game is still running, and who won. The human always
// plays Player1 and moves first; the engine replies as Player2.
type Game struct {
	Board       domain.Board
	CurrentTurn domain.PlayerID
	Status      domain.GameStatus
	Winner      domain.PlayerID
	MoveCount   int
}

func New() *Game {
	return &Game{
		Board:       domain.NewBoard(),
		CurrentTurn: domain.Player1,
		Status:      domain.StatusActive,
		Winner:      domain.Empty,
	}
}

// MakeMove drops a piece for side into column, re-evaluates the outcome
// and flips the turn. It returns the row the piece landed in.
func (g *Game) MakeMove(side domain.PlayerID, column int) (int, error) {
	if g.Status != domain.StatusActive {
		return 0, domain.ErrGameOver
	}
	if g.CurrentTurn != side {
		return 0, domain.ErrNotYourTurn
	}

	board, err := g.Board.ApplyMove(column, side)
	if err != nil {
		return 0, err
	}
	row, _ := g.Board.NextOpenRow(column)
	g.Board = board
	g.MoveCount++

	if domain.HasFourInARow(g.Board, side) {
		g.Status = domain.StatusWon
		g.Winner = side
		return row, nil
	}

	if len(g.Board.ValidColumns()) == 0 {
		g.Status = domain.StatusDraw
		return row, nil
	}

	g.CurrentTurn = side.Opponent()
	return row, nil
}

// IsFinished reports whether the game has been won or drawn.
func (g *Game) IsFinished() bool {
	return g.Status != domain.StatusActive
}

// Restart clears the board for another round. Player1 moves first again.
func (g *Game) Restart() {
	g.Board = domain.NewBoard()
	g.CurrentTurn = domain.Player1
	g.Status = domain.StatusActive
	g.Winner = domain.Empty
	g.MoveCount = 0
}
