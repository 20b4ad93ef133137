package engine

import (
	"math"
	"math/rand"

	"github.com/laya-karavadi/connect-four/internal/domain"
)

const (
	WIN_SCORE     = 100000000000000 // engine connected four
	LOSS_SCORE    = -WIN_SCORE      // opponent connected four
	DRAW_SCORE    = 0               // board full, nobody connected
	DEFAULT_DEPTH = 4
)

// NoMove is the column returned from leaf nodes, where no move is chosen.
const NoMove = -1

// TieBreak selects which column wins when several score equally.
type TieBreak int

const (
	// TieBreakFirst keeps the lowest-indexed column among equal scores.
	TieBreakFirst TieBreak = iota
	// TieBreakRandom picks uniformly among the columns that tie for best.
	// This mode searches without cutoffs: a clamped bound from a cutoff
	// can equal the best score without the column actually tying.
	TieBreakRandom
)

// Engine picks moves for one side by searching the game tree to a fixed depth.
// Engines hold no per-search state, so one instance can be reused across games.
type Engine struct {
	side      domain.PlayerID
	depth     int
	tieBreak  TieBreak
	noPruning bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithDepth sets how many plies the engine looks ahead.
func WithDepth(depth int) Option {
	return func(e *Engine) { e.depth = depth }
}

// WithTieBreak sets the policy for choosing among equally scored columns.
func WithTieBreak(tb TieBreak) Option {
	return func(e *Engine) { e.tieBreak = tb }
}

// WithoutPruning disables alpha-beta cutoffs so every node is visited.
// Scores are unchanged; only the amount of work grows.
func WithoutPruning() Option {
	return func(e *Engine) { e.noPruning = true }
}

// New builds an engine that plays side.
func New(side domain.PlayerID, opts ...Option) *Engine {
	e := &Engine{
		side:     side,
		depth:    DEFAULT_DEPTH,
		tieBreak: TieBreakFirst,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Side returns which side the engine plays.
func (e *Engine) Side() domain.PlayerID {
	return e.side
}

// Depth returns how many plies the engine looks ahead.
func (e *Engine) Depth() int {
	return e.depth
}

// BestMove searches from board with a full alpha-beta window and returns
// the chosen column together with its minimax score.
func (e *Engine) BestMove(b domain.Board) (int, int) {
	return e.Search(b, e.depth, math.MinInt, math.MaxInt, true)
}

// cutoffs reports whether alpha-beta cutoffs are active. Random tie-break
// needs the exact score of every column, so it never cuts off.
func (e *Engine) cutoffs() bool {
	return !e.noPruning && e.tieBreak != TieBreakRandom
}

// Search implements minimax with alpha-beta pruning. maximizing is true when
// the engine's own side is to move. Leaf nodes (terminal boards and depth
// exhaustion) return NoMove for the column.
func (e *Engine) Search(b domain.Board, depth, alpha, beta int, maximizing bool) (int, int) {
	valid := b.ValidColumns()

	if domain.IsTerminal(b) {
		switch {
		case domain.HasFourInARow(b, e.side):
			return NoMove, WIN_SCORE
		case domain.HasFourInARow(b, e.side.Opponent()):
			return NoMove, LOSS_SCORE
		default:
			return NoMove, DRAW_SCORE
		}
	}

	if depth == 0 {
		return NoMove, ScorePosition(b, e.side)
	}

	// Terminal detection already covers the full board, but seeding a best
	// column from an empty set must stay impossible in its own right.
	if len(valid) == 0 {
		return NoMove, DRAW_SCORE
	}

	if maximizing {
		bestCol := valid[0]
		bestScore := math.MinInt
		ties := 1
		for _, col := range valid {
			child, _ := b.ApplyMove(col, e.side)
			_, score := e.Search(child, depth-1, alpha, beta, false)

			switch {
			case score > bestScore:
				bestScore = score
				bestCol = col
				ties = 1
			case score == bestScore && e.tieBreak == TieBreakRandom:
				ties++
				if rand.Intn(ties) == 0 {
					bestCol = col
				}
			}

			alpha = max(alpha, bestScore)
			if alpha >= beta && e.cutoffs() {
				break
			}
		}
		return bestCol, bestScore
	}

	opponent := e.side.Opponent()
	bestCol := valid[0]
	bestScore := math.MaxInt
	ties := 1
	for _, col := range valid {
		child, _ := b.ApplyMove(col, opponent)
		_, score := e.Search(child, depth-1, alpha, beta, true)

		switch {
		case score < bestScore:
			bestScore = score
			bestCol = col
			ties = 1
		case score == bestScore && e.tieBreak == TieBreakRandom:
			ties++
			if rand.Intn(ties) == 0 {
				bestCol = col
			}
		}

		beta = min(beta, bestScore)
		if alpha >= beta && e.cutoffs() {
			break
		}
	}
	return bestCol, bestScore
}
