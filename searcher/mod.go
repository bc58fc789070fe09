package searcher

import (
	"chessbot/game"
	"errors"
	"fmt"
)

// Scores are from White's perspective: positive favors White
const MateScore = 999999.0
const DrawScore = 0.0

// Subtracted after captures, castles and promotions
const TempoPenalty = 50.0

const DefaultDepth = 3

var ErrNoLegalMove = errors.New("no legal move available")

// Evaluate scores a position reached by playing last
type Evaluate func(pos game.Position, last game.Move) float64

// Mode selects how terminal positions are scored and searched
type Mode int

const (
	// Literal zeroes draws only with White to move, probes Black's turn with a null move, and lets
	// mate or stalemate inside the tree return the untouched window sentinel.
	Literal Mode = iota
	// Symmetric scores draws and mates the same way for both sides, and evaluates terminal nodes
	// inside the tree.
	Symmetric
)

func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Symmetric:
		return "symmetric"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch s {
	case "literal":
		return Literal, nil
	case "symmetric":
		return Symmetric, nil
	default:
		return Literal, fmt.Errorf("unknown mode %q: want literal or symmetric", s)
	}
}
