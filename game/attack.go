package game

import "github.com/notnil/chess"

var (
	knightOffsets   = [][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets     = [][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straightOffsets = [][2]int{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	diagonalOffsets = [][2]int{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

func pieceAt(board *chess.Board, file, rank int) chess.Piece {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return chess.NoPiece
	}
	return board.Piece(chess.Square(rank*8 + file))
}

func kingSquare(board *chess.Board, c chess.Color) (chess.Square, bool) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := board.Piece(sq); p.Type() == chess.King && p.Color() == c {
			return sq, true
		}
	}
	return chess.NoSquare, false
}

// attacked reports whether any piece of color by attacks sq
func attacked(board *chess.Board, sq chess.Square, by chess.Color) bool {
	file, rank := int(sq)%8, int(sq)/8

	is := func(p chess.Piece, types ...chess.PieceType) bool {
		if p == chess.NoPiece || p.Color() != by {
			return false
		}
		for _, pt := range types {
			if p.Type() == pt {
				return true
			}
		}
		return false
	}

	// A pawn attacks diagonally forward, so look one rank behind sq from the attacker's side
	pawnRank := rank - 1
	if by == chess.Black {
		pawnRank = rank + 1
	}
	if is(pieceAt(board, file-1, pawnRank), chess.Pawn) || is(pieceAt(board, file+1, pawnRank), chess.Pawn) {
		return true
	}

	for _, o := range knightOffsets {
		if is(pieceAt(board, file+o[0], rank+o[1]), chess.Knight) {
			return true
		}
	}
	for _, o := range kingOffsets {
		if is(pieceAt(board, file+o[0], rank+o[1]), chess.King) {
			return true
		}
	}

	slides := func(offsets [][2]int, types ...chess.PieceType) bool {
		for _, o := range offsets {
			for f, r := file+o[0], rank+o[1]; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+o[0], r+o[1] {
				p := pieceAt(board, f, r)
				if p == chess.NoPiece {
					continue
				}
				if is(p, types...) {
					return true
				}
				break // Blocked
			}
		}
		return false
	}
	return slides(straightOffsets, chess.Rook, chess.Queen) || slides(diagonalOffsets, chess.Bishop, chess.Queen)
}
