package game

// Position and Move are the only things the searcher knows about a game. Any rules engine that can
// answer these queries can be searched; Board is the chess implementation.

type Color int

const (
	White Color = iota
	Black
)

func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type PieceType int

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

const NumPieceTypes = 6

func (pt PieceType) String() string {
	return [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}[pt]
}

// Square is a board coordinate, both components in [0, 8). Rank 0 is White's back rank.
type Square struct {
	File int
	Rank int
}

// PieceList holds every square occupied by one piece category
type PieceList struct {
	Type    PieceType
	Color   Color
	Squares []Square
}

func (pl PieceList) Count() int {
	return len(pl.Squares)
}

// PieceInventory is indexed by Category: White pawn..king, then Black pawn..king
type PieceInventory [2 * NumPieceTypes]PieceList

// Category returns the inventory index of a piece type and color
func Category(pt PieceType, c Color) int {
	return int(c)*NumPieceTypes + int(pt)
}

// Move is a legal transition from the position that generated it
type Move interface {
	IsCapture() bool
	IsCastle() bool
	IsPromotion() bool
	String() string
}

// Position is a mutable game state. ApplyMove/RevertLastMove and TryNullMove/RevertNullMove must be
// strictly nested: a revert always undoes the most recent unreverted mutation.
type Position interface {
	SideToMove() Color
	LegalMoves() []Move
	ApplyMove(Move)
	RevertLastMove()
	TryNullMove() bool
	RevertNullMove()
	IsDrawn() bool
	IsInCheckmate() bool
	PieceInventory() PieceInventory
}
