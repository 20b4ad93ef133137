package domain

// Board is the 6x7 grid. Row 0 is the bottom row, so gravity fills
// ascending row indexes. Board is a plain value: passing or assigning
// one copies the whole grid, which is what keeps sibling search branches
// independent of each other.
type Board [Rows][Columns]PlayerID

// NewBoard returns an empty board.
func NewBoard() Board {
	return Board{}
}

// IsDroppable reports whether column can take another piece. Columns
// outside the grid are never droppable.
func (b Board) IsDroppable(col int) bool {
	if col < 0 || col >= Columns {
		return false
	}
	return b[Rows-1][col] == Empty
}

// NextOpenRow finds the lowest empty row in column, scanning bottom-up.
// ok is false when the column is full or out of range.
func (b Board) NextOpenRow(col int) (row int, ok bool) {
	if col < 0 || col >= Columns {
		return 0, false
	}
	for r := 0; r < Rows; r++ {
		if b[r][col] == Empty {
			return r, true
		}
	}
	return 0, false
}

// ValidColumns lists every droppable column in ascending order. Search
// scans columns in this order, so the ordering is part of the contract:
// it decides which of several equally scored moves gets picked.
func (b Board) ValidColumns() []int {
	cols := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b.IsDroppable(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// ApplyMove drops a piece for side into column and returns the resulting
// board. The receiver is never modified. ErrInvalidMove is returned for
// a column outside the grid, ErrColumnFull for a full one.
func (b Board) ApplyMove(col int, side PlayerID) (Board, error) {
	if col < 0 || col >= Columns {
		return b, ErrInvalidMove
	}
	row, ok := b.NextOpenRow(col)
	if !ok {
		return b, ErrColumnFull
	}
	b[row][col] = side
	return b, nil
}

// Count returns how many cells on the board hold side.
func (b Board) Count(side PlayerID) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] == side {
				n++
			}
		}
	}
	return n
}
