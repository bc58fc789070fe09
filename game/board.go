package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/notnil/chess"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var ErrIllegalMove = errors.New("illegal move")

type snapshot struct {
	pos  *chess.Position
	key  string // Placement, side to move, castling rights and en passant square
	null bool
}

// Board is a Position backed by notnil/chess. Positions are immutable in notnil/chess, so the board
// keeps a stack of snapshots: applying pushes, reverting pops, and a revert restores the exact
// previous snapshot.
type Board struct {
	history []snapshot
}

// NewBoard returns a board set up from a FEN string
func NewBoard(fen string) (*Board, error) {
	pos, err := decodeFEN(fen)
	if err != nil {
		return nil, fmt.Errorf("failed to parse FEN %q: %w", fen, err)
	}
	return newBoard(pos), nil
}

func NewStartingBoard() *Board {
	return newBoard(chess.StartingPosition())
}

func newBoard(pos *chess.Position) *Board {
	return &Board{history: []snapshot{newSnapshot(pos, false)}}
}

func newSnapshot(pos *chess.Position, null bool) snapshot {
	fields := strings.Fields(pos.String())
	return snapshot{pos: pos, key: strings.Join(fields[:4], " "), null: null}
}

func decodeFEN(fen string) (*chess.Position, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, err
	}
	return chess.NewGame(opt).Position(), nil
}

func (b *Board) current() *chess.Position {
	return b.history[len(b.history)-1].pos
}

// FEN returns the current position in Forsyth-Edwards notation
func (b *Board) FEN() string {
	return b.current().String()
}

// Ply returns the number of unreverted moves (null moves included) applied since construction
func (b *Board) Ply() int {
	return len(b.history) - 1
}

func (b *Board) SideToMove() Color {
	return fromChessColor(b.current().Turn())
}

// LegalMoves returns the legal moves ordered by origin square, destination square, then promotion
func (b *Board) LegalMoves() []Move {
	moves := lo.Map(b.current().ValidMoves(), func(m *chess.Move, _ int) Move {
		return ChessMove{move: m}
	})
	slices.SortFunc(moves, compareMoves)
	return moves
}

// Decode finds the legal move written in UCI notation
func (b *Board) Decode(uci string) (Move, error) {
	move, ok := lo.Find(b.LegalMoves(), func(m Move) bool {
		return m.String() == uci
	})
	if !ok {
		return nil, fmt.Errorf("%w: %s in %s", ErrIllegalMove, uci, b.FEN())
	}
	return move, nil
}

func (b *Board) ApplyMove(m Move) {
	cm, ok := m.(ChessMove)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", m))
	}
	next := b.current().Update(cm.move)
	b.history = append(b.history, newSnapshot(next, false))
}

func (b *Board) RevertLastMove() {
	b.pop(false)
}

// TryNullMove passes the turn to the opponent. It fails, leaving the board untouched, when the side
// to move is in check.
func (b *Board) TryNullMove() bool {
	if b.inCheck() {
		return false
	}

	fields := strings.Fields(b.FEN())
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	fields[3] = "-" // En passant is forfeited by passing
	pos, err := decodeFEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}

	b.history = append(b.history, newSnapshot(pos, true))
	return true
}

func (b *Board) RevertNullMove() {
	b.pop(true)
}

func (b *Board) pop(null bool) {
	if len(b.history) == 1 {
		panic("no move to revert")
	}
	if top := b.history[len(b.history)-1]; top.null != null {
		panic(fmt.Sprintf("revert out of order: top of history null=%t, got revert for null=%t", top.null, null))
	}
	b.history = b.history[:len(b.history)-1]
}

func (b *Board) IsInCheckmate() bool {
	return b.current().Status() == chess.Checkmate
}

// IsDrawn reports stalemate, insufficient material, the fifty-move rule and threefold repetition
func (b *Board) IsDrawn() bool {
	if b.current().Status() == chess.Stalemate || b.insufficientMaterial() {
		return true
	}
	return b.halfMoveClock() >= 100 || b.repetitions() >= 3
}

// insufficientMaterial asks notnil/chess, which only judges material when it sets up a game
func (b *Board) insufficientMaterial() bool {
	opt, err := chess.FEN(b.FEN())
	if err != nil {
		return false
	}
	return chess.NewGame(opt).Method() == chess.InsufficientMaterial
}

// inCheck backs TryNullMove: notnil/chess only reports check through move tags and Status
func (b *Board) inCheck() bool {
	pos := b.current()
	king, ok := kingSquare(pos.Board(), pos.Turn())
	if !ok {
		return false
	}
	return attacked(pos.Board(), king, pos.Turn().Other())
}

func (b *Board) halfMoveClock() int {
	fields := strings.Fields(b.FEN())
	if len(fields) < 5 {
		return 0
	}
	clock, err := strconv.Atoi(fields[4])
	if err != nil {
		return 0
	}
	return clock
}

// repetitions counts how often the current position occurred along the history of real moves
func (b *Board) repetitions() int {
	key := b.history[len(b.history)-1].key
	return lo.CountBy(b.history, func(s snapshot) bool {
		return !s.null && s.key == key
	})
}

func (b *Board) PieceInventory() PieceInventory {
	var inventory PieceInventory
	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			inventory[Category(pt, c)] = PieceList{Type: pt, Color: c}
		}
	}

	board := b.current().Board()
	for i := 0; i < 64; i++ {
		p := board.Piece(chess.Square(i))
		if p == chess.NoPiece {
			continue
		}
		category := Category(fromChessType(p.Type()), fromChessColor(p.Color()))
		inventory[category].Squares = append(inventory[category].Squares, Square{File: i % 8, Rank: i / 8})
	}
	return inventory
}

func fromChessColor(c chess.Color) Color {
	if c == chess.Black {
		return Black
	}
	return White
}

func fromChessType(pt chess.PieceType) PieceType {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	default:
		panic(fmt.Sprintf("unexpected piece type %v", pt))
	}
}
