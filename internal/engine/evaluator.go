package engine

import (
	"github.com/laya-karavadi/connect-four/internal/domain"
)

const (
	// Window pattern weights (from strongest to weakest)
	SCORE_FOUR      = 100000 // four connected pieces
	SCORE_THREE     = 50     // three pieces plus one open cell
	SCORE_TWO       = 5      // two pieces plus two open cells
	SCORE_OPP_THREE = -4000  // opponent is one open cell from four
	CENTER_WEIGHT   = 3      // per piece held in the center column
)

// Window is the atomic unit of evaluation: four collinear cells.
type Window [domain.ToWin]domain.PlayerID

// ScoreWindow weighs a single window for side. The own-pattern rules are
// mutually exclusive; the opponent-threat penalty is applied on top.
func ScoreWindow(w Window, side domain.PlayerID) int {
	opponent := side.Opponent()

	var own, theirs, open int
	for _, cell := range w {
		switch cell {
		case side:
			own++
		case opponent:
			theirs++
		default:
			open++
		}
	}

	score := 0
	switch {
	case own == 4:
		score += SCORE_FOUR
	case own == 3 && open == 1:
		score += SCORE_THREE
	case own == 2 && open == 2:
		score += SCORE_TWO
	}
	if theirs == 3 && open == 1 {
		score += SCORE_OPP_THREE
	}

	return score
}

// ScorePosition calculates the heuristic value of the board for side:
// center-column control plus every four-cell window in all four directions.
func ScorePosition(b domain.Board, side domain.PlayerID) int {
	score := 0

	// Center column preference
	for r := 0; r < domain.Rows; r++ {
		if b[r][domain.CenterColumn] == side {
			score += CENTER_WEIGHT
		}
	}

	// Horizontal windows
	for r := 0; r < domain.Rows; r++ {
		for c := 0; c+domain.ToWin <= domain.Columns; c++ {
			score += ScoreWindow(Window{b[r][c], b[r][c+1], b[r][c+2], b[r][c+3]}, side)
		}
	}

	// Vertical windows
	for c := 0; c < domain.Columns; c++ {
		for r := 0; r+domain.ToWin <= domain.Rows; r++ {
			score += ScoreWindow(Window{b[r][c], b[r+1][c], b[r+2][c], b[r+3][c]}, side)
		}
	}

	// Rising diagonal windows
	for r := 0; r+domain.ToWin <= domain.Rows; r++ {
		for c := 0; c+domain.ToWin <= domain.Columns; c++ {
			score += ScoreWindow(Window{b[r][c], b[r+1][c+1], b[r+2][c+2], b[r+3][c+3]}, side)
		}
	}

	// Falling diagonal windows
	for r := 0; r+domain.ToWin <= domain.Rows; r++ {
		for c := 0; c+domain.ToWin <= domain.Columns; c++ {
			score += ScoreWindow(Window{b[r+3][c], b[r+2][c+1], b[r+1][c+2], b[r][c+3]}, side)
		}
	}

	return score
}
