package game

import "github.com/notnil/chess"

// ChessMove is a Move generated by a Board
type ChessMove struct {
	move *chess.Move
}

func (cm ChessMove) IsCapture() bool {
	return cm.move.HasTag(chess.Capture) || cm.move.HasTag(chess.EnPassant)
}

func (cm ChessMove) IsCastle() bool {
	return cm.move.HasTag(chess.KingSideCastle) || cm.move.HasTag(chess.QueenSideCastle)
}

func (cm ChessMove) IsPromotion() bool {
	return cm.move.Promo() != chess.NoPieceType
}

// String returns the move in UCI notation (e.g. e2e4, e7e8q)
func (cm ChessMove) String() string {
	return cm.move.String()
}

func compareMoves(a, b Move) int {
	ma, mb := a.(ChessMove).move, b.(ChessMove).move
	if ma.S1() != mb.S1() {
		return int(ma.S1()) - int(mb.S1())
	}
	if ma.S2() != mb.S2() {
		return int(ma.S2()) - int(mb.S2())
	}
	return int(ma.Promo()) - int(mb.Promo())
}
