package searcher

import "chessbot/game"

// Tables holds a positional bonus per piece type, indexed [piece][rank][file] with rank 0 being the
// back rank of the piece's own side. Black pieces read the table with their rank mirrored.
type Tables [game.NumPieceTypes][8][8]float64

// Bonus returns the positional bonus of a piece on sq
func (t *Tables) Bonus(pt game.PieceType, c game.Color, sq game.Square) float64 {
	if t == nil {
		return 0
	}
	rank := sq.Rank
	if c == game.Black {
		rank = 7 - rank
	}
	return t[pt][rank][sq.File]
}

// DefaultTables returns the standard simplified piece-square tables
func DefaultTables() *Tables {
	return &Tables{
		game.Pawn: {
			{0, 0, 0, 0, 0, 0, 0, 0},
			{5, 10, 10, -20, -20, 10, 10, 5},
			{5, -5, -10, 0, 0, -10, -5, 5},
			{0, 0, 0, 20, 20, 0, 0, 0},
			{5, 5, 10, 25, 25, 10, 5, 5},
			{10, 10, 20, 30, 30, 20, 10, 10},
			{50, 50, 50, 50, 50, 50, 50, 50},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		game.Knight: {
			{-50, -40, -30, -30, -30, -30, -40, -50},
			{-40, -20, 0, 5, 5, 0, -20, -40},
			{-30, 5, 10, 15, 15, 10, 5, -30},
			{-30, 0, 15, 20, 20, 15, 0, -30},
			{-30, 5, 15, 20, 20, 15, 5, -30},
			{-30, 0, 10, 15, 15, 10, 0, -30},
			{-40, -20, 0, 0, 0, 0, -20, -40},
			{-50, -40, -30, -30, -30, -30, -40, -50},
		},
		game.Bishop: {
			{-20, -10, -10, -10, -10, -10, -10, -20},
			{-10, 5, 0, 0, 0, 0, 5, -10},
			{-10, 10, 10, 10, 10, 10, 10, -10},
			{-10, 0, 10, 10, 10, 10, 0, -10},
			{-10, 5, 5, 10, 10, 5, 5, -10},
			{-10, 0, 5, 10, 10, 5, 0, -10},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-20, -10, -10, -10, -10, -10, -10, -20},
		},
		game.Rook: {
			{0, 0, 0, 5, 5, 0, 0, 0},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{-5, 0, 0, 0, 0, 0, 0, -5},
			{5, 10, 10, 10, 10, 10, 10, 5},
			{0, 0, 0, 0, 0, 0, 0, 0},
		},
		game.Queen: {
			{-20, -10, -10, -5, -5, -10, -10, -20},
			{-10, 0, 5, 0, 0, 0, 0, -10},
			{-10, 5, 5, 5, 5, 5, 0, -10},
			{0, 0, 5, 5, 5, 5, 0, -5},
			{-5, 0, 5, 5, 5, 5, 0, -5},
			{-10, 0, 5, 5, 5, 5, 0, -10},
			{-10, 0, 0, 0, 0, 0, 0, -10},
			{-20, -10, -10, -5, -5, -10, -10, -20},
		},
		game.King: {
			{20, 30, 10, 0, 0, 10, 30, 20},
			{20, 20, 0, 0, 0, 0, 20, 20},
			{-10, -20, -20, -20, -20, -20, -20, -10},
			{-20, -30, -30, -40, -40, -30, -30, -20},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
			{-30, -40, -40, -50, -50, -40, -40, -30},
		},
	}
}
