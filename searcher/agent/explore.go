package agent

import (
	"chessbot/game"
	"chessbot/searcher"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type exploringAgent struct {
	ab      *searcher.AlphaBeta
	epsilon float64

	mu sync.Mutex // Guards r
	r  *rand.Rand
}

// NewExploringAgent returns an agent for self-play that plays a uniformly random legal move with
// probability epsilon and the searched move otherwise. Games between deterministic searchers
// repeat, so experiments use this agent to diversify them. epsilon is clamped to [0, 1].
func NewExploringAgent(ab *searcher.AlphaBeta, epsilon float64, seed uint64) Agent {
	return &exploringAgent{
		ab:      ab,
		epsilon: min(max(epsilon, 0), 1),
		r:       rand.New(rand.NewSource(seed)),
	}
}

func (a *exploringAgent) FindMove(pos game.Position, budget time.Duration) (game.Move, searcher.SearchMetric, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil, searcher.SearchMetric{}, searcher.ErrNoLegalMove
	}

	if move, ok := a.explore(moves); ok {
		log.Debug().Str("move", move.String()).Msg("explored random move")
		return move, searcher.SearchMetric{Mode: a.ab.Mode(), Budget: budget}, nil
	}
	return a.ab.SelectBestMove(pos, budget)
}

func (a *exploringAgent) explore(moves []game.Move) (game.Move, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.r.Float64() >= a.epsilon {
		return nil, false
	}
	return moves[a.r.Intn(len(moves))], true
}
