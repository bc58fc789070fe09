package searcher

import (
	"chessbot/game"

	"github.com/samber/lo"
)

type EvaluatorOption func(e *Evaluator)

// Evaluator scores positions by material, piece placement and terminal state
type Evaluator struct {
	values  [game.NumPieceTypes]float64
	tables  *Tables
	penalty float64
	mode    Mode
}

// WithTables sets the positional bonus tables. Nil tables score material only.
func WithTables(tables *Tables) EvaluatorOption {
	return func(e *Evaluator) {
		e.tables = tables
	}
}

// WithPieceValues overrides the base value of each piece type, indexed by game.PieceType
func WithPieceValues(values [game.NumPieceTypes]float64) EvaluatorOption {
	return func(e *Evaluator) {
		e.values = values
	}
}

func WithTempoPenalty(penalty float64) EvaluatorOption {
	return func(e *Evaluator) {
		if penalty >= 0 {
			e.penalty = penalty
		}
	}
}

func WithTerminalMode(mode Mode) EvaluatorOption {
	return func(e *Evaluator) {
		e.mode = mode
	}
}

func NewEvaluator(options ...EvaluatorOption) *Evaluator {
	e := &Evaluator{ // Default values
		values:  [game.NumPieceTypes]float64{game.Pawn: 100, game.Knight: 300, game.Bishop: 400, game.Rook: 500, game.Queen: 1000, game.King: 0},
		tables:  DefaultTables(),
		penalty: TempoPenalty,
		mode:    Literal,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Evaluate scores pos from White's perspective. Any null move probed along the way is reverted
// before returning.
func (e *Evaluator) Evaluate(pos game.Position, last game.Move) float64 {
	inventory := pos.PieceInventory()
	score := lo.SumBy(inventory[:], e.material)

	switch e.mode {
	case Symmetric:
		if pos.IsDrawn() {
			return DrawScore
		}
		if pos.IsInCheckmate() {
			if pos.SideToMove() == game.White {
				score -= MateScore
			} else {
				score += MateScore
			}
		}
	default:
		if pos.SideToMove() == game.White {
			if pos.IsDrawn() {
				return DrawScore
			}
			if pos.IsInCheckmate() {
				score -= MateScore
			}
		} else if pos.TryNullMove() {
			if pos.IsInCheckmate() {
				score += MateScore
			}
			pos.RevertNullMove()
		}
	}

	if isNoisy(last) {
		score -= e.penalty
	}
	return score
}

// material is the signed value of every piece in a category
func (e *Evaluator) material(pl game.PieceList) float64 {
	sum := lo.SumBy(pl.Squares, func(sq game.Square) float64 {
		return e.values[pl.Type] + e.tables.Bonus(pl.Type, pl.Color, sq)
	})
	if pl.Color == game.Black {
		return -sum
	}
	return sum
}

func isNoisy(m game.Move) bool {
	return m != nil && (m.IsCapture() || m.IsCastle() || m.IsPromotion())
}
