package searcher

import (
	"chessbot/game"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

type mockMove struct {
	id        int
	capture   bool
	castle    bool
	promotion bool
}

func (m mockMove) IsCapture() bool   { return m.capture }
func (m mockMove) IsCastle() bool    { return m.castle }
func (m mockMove) IsPromotion() bool { return m.promotion }
func (m mockMove) String() string    { return fmt.Sprintf("m%d", m.id) }

// mockNode is a game tree node; its score is what leafScore returns there
type mockNode struct {
	score    float64
	children []*mockNode
}

func leaf(score float64) *mockNode {
	return &mockNode{score: score}
}

func node(children ...*mockNode) *mockNode {
	return &mockNode{children: children}
}

// mockPosition walks a mockNode tree; sides alternate with depth
type mockPosition struct {
	root        *mockNode
	path        []*mockNode
	rootSide    game.Color
	evaluations int
	maxPly      int
}

func newMockPosition(root *mockNode, side game.Color) *mockPosition {
	return &mockPosition{root: root, path: []*mockNode{root}, rootSide: side}
}

func (m *mockPosition) top() *mockNode {
	return m.path[len(m.path)-1]
}

func (m *mockPosition) ply() int {
	return len(m.path) - 1
}

func (m *mockPosition) SideToMove() game.Color {
	if m.ply()%2 == 0 {
		return m.rootSide
	}
	return m.rootSide.Other()
}

func (m *mockPosition) LegalMoves() []game.Move {
	moves := make([]game.Move, len(m.top().children))
	for i := range moves {
		moves[i] = mockMove{id: i}
	}
	return moves
}

func (m *mockPosition) ApplyMove(move game.Move) {
	m.path = append(m.path, m.top().children[move.(mockMove).id])
	m.maxPly = max(m.maxPly, m.ply())
}

func (m *mockPosition) RevertLastMove() {
	if m.ply() == 0 {
		panic("no move to revert")
	}
	m.path = m.path[:len(m.path)-1]
}

func (m *mockPosition) TryNullMove() bool                   { return false }
func (m *mockPosition) RevertNullMove()                     { panic("no null move to revert") }
func (m *mockPosition) IsDrawn() bool                       { return false }
func (m *mockPosition) IsInCheckmate() bool                 { return false }
func (m *mockPosition) PieceInventory() game.PieceInventory { return game.PieceInventory{} }

// leafScore evaluates a mockPosition by the score of its current node
func leafScore(pos game.Position, _ game.Move) float64 {
	m := pos.(*mockPosition)
	m.evaluations++
	return m.top().score
}

// randomTree builds a tree of the given height with up to maxBranching children per inner node.
// Inner nodes may have no children when deadEnds is set. Every node carries a score.
func randomTree(r *rand.Rand, height, maxBranching int, deadEnds bool) *mockNode {
	n := leaf(float64(r.Intn(201) - 100))
	if height == 0 {
		return n
	}
	count := 1 + r.Intn(maxBranching)
	if deadEnds {
		count = r.Intn(maxBranching + 1)
	}
	n.children = make([]*mockNode, count)
	for i := range n.children {
		n.children[i] = randomTree(r, height-1, maxBranching, deadEnds)
	}
	return n
}

// minimax is the exhaustive reference for alphaBeta. Nodes without moves return the sentinel in
// Literal mode and their score in Symmetric mode.
func minimax(pos *mockPosition, depth int, maximizing bool, mode Mode) float64 {
	if depth == 0 || (mode == Symmetric && len(pos.LegalMoves()) == 0) {
		return leafScore(pos, nil)
	}
	best := math.Inf(1)
	if maximizing {
		best = math.Inf(-1)
	}
	for _, move := range pos.LegalMoves() {
		pos.ApplyMove(move)
		score := minimax(pos, depth-1, !maximizing, mode)
		pos.RevertLastMove()
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}

// exhaustiveBestMove picks the root move by plain minimax
func exhaustiveBestMove(pos *mockPosition, depth int, mode Mode) (int, float64) {
	maximize := pos.SideToMove() == game.White
	bestIndex, bestScore := 0, 0.0
	for i, move := range pos.LegalMoves() {
		pos.ApplyMove(move)
		maximizing := false
		if mode == Symmetric {
			maximizing = pos.SideToMove() == game.White
		}
		score := minimax(pos, depth, maximizing, mode)
		pos.RevertLastMove()
		if i == 0 || (maximize && score > bestScore) || (!maximize && score < bestScore) {
			bestIndex, bestScore = i, score
		}
	}
	return bestIndex, bestScore
}
