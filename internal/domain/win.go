package domain

// HasFourInARow reports whether side holds four connected pieces in any
// of the four directions: horizontal, vertical, or either diagonal.
func HasFourInARow(b Board, side PlayerID) bool {
	// Horizontal windows.
	for r := 0; r < Rows; r++ {
		for c := 0; c+ToWin <= Columns; c++ {
			if b[r][c] == side && b[r][c+1] == side && b[r][c+2] == side && b[r][c+3] == side {
				return true
			}
		}
	}

	// Vertical windows.
	for c := 0; c < Columns; c++ {
		for r := 0; r+ToWin <= Rows; r++ {
			if b[r][c] == side && b[r+1][c] == side && b[r+2][c] == side && b[r+3][c] == side {
				return true
			}
		}
	}

	// Positively sloped diagonals (rising to the right).
	for r := 0; r+ToWin <= Rows; r++ {
		for c := 0; c+ToWin <= Columns; c++ {
			if b[r][c] == side && b[r+1][c+1] == side && b[r+2][c+2] == side && b[r+3][c+3] == side {
				return true
			}
		}
	}

	// Negatively sloped diagonals (falling to the right).
	for r := ToWin - 1; r < Rows; r++ {
		for c := 0; c+ToWin <= Columns; c++ {
			if b[r][c] == side && b[r-1][c+1] == side && b[r-2][c+2] == side && b[r-3][c+3] == side {
				return true
			}
		}
	}

	return false
}

// Winner returns the side holding a four-in-a-row, if there is one.
func Winner(b Board) (PlayerID, bool) {
	if HasFourInARow(b, Player1) {
		return Player1, true
	}
	if HasFourInARow(b, Player2) {
		return Player2, true
	}
	return Empty, false
}

// IsTerminal reports whether the game is over on this board: either side
// connected four, or no column can take another piece.
func IsTerminal(b Board) bool {
	if _, won := Winner(b); won {
		return true
	}
	return len(b.ValidColumns()) == 0
}
