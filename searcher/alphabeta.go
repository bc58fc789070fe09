package searcher

import (
	"chessbot/game"
	"math"
	"time"

	"github.com/rs/zerolog/log"
)

type Option func(ab *AlphaBeta)

// AlphaBeta selects moves with a fixed-depth alpha-beta minimax. It holds configuration only, so
// successive and concurrent searches on distinct positions are independent.
type AlphaBeta struct {
	depth      int
	mode       Mode
	evaluate   Evaluate
	newMetrics func() MetricsCollector
}

// WithDepth sets the depth searched below each root move
func WithDepth(depth int) Option {
	return func(ab *AlphaBeta) {
		if depth >= 0 {
			ab.depth = depth
		}
	}
}

func WithMode(mode Mode) Option {
	return func(ab *AlphaBeta) {
		ab.mode = mode
	}
}

// WithEvaluationFn replaces the default evaluator. Without it, an Evaluator with default tables and
// the search mode is used.
func WithEvaluationFn(evaluate Evaluate) Option {
	return func(ab *AlphaBeta) {
		if evaluate != nil {
			ab.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(ab *AlphaBeta) {
		ab.newMetrics = NewMetricsCollector
	}
}

func NewAlphaBeta(options ...Option) *AlphaBeta {
	ab := &AlphaBeta{ // Default values
		depth:      DefaultDepth,
		mode:       Literal,
		newMetrics: NewNoMetricsCollector,
	}
	for _, option := range options {
		option(ab)
	}
	if ab.evaluate == nil {
		ab.evaluate = NewEvaluator(WithTerminalMode(ab.mode)).Evaluate
	}
	return ab
}

func (ab *AlphaBeta) Depth() int {
	return ab.depth
}

func (ab *AlphaBeta) Mode() Mode {
	return ab.mode
}

// SelectBestMove returns the root move with the best score for the side to move: the maximum for
// White, the minimum for Black, the earliest move on ties. The budget is not enforced; it is only
// recorded and reported when exceeded. pos is restored before returning.
func (ab *AlphaBeta) SelectBestMove(pos game.Position, budget time.Duration) (game.Move, SearchMetric, error) {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return nil, SearchMetric{}, ErrNoLegalMove
	}

	s := &search{AlphaBeta: ab, metrics: ab.newMetrics()}
	s.metrics.Start(ab.depth, ab.mode, budget)

	maximize := pos.SideToMove() == game.White
	bestMove := moves[0]
	bestScore := 0.0
	for i, move := range moves {
		score := s.root(pos, move)
		log.Debug().Str("move", move.String()).Float64("score", score).Msg("scored root move")

		if i == 0 || (maximize && score > bestScore) || (!maximize && score < bestScore) {
			bestMove, bestScore = move, score
		}
	}

	metric := s.metrics.Complete(bestScore)
	if metric.OverBudget() {
		log.Warn().Msgf("search took %s, over the %s budget", metric.Duration, metric.Budget)
	}
	log.Info().Str("move", bestMove.String()).Float64("score", bestScore).Int("nodes", metric.Nodes).Msgf("selected move among %d", len(moves))

	return bestMove, metric, nil
}

// search carries the state of one SelectBestMove call
type search struct {
	*AlphaBeta
	metrics MetricsCollector
}

// play applies move and returns the matching revert, so that `defer play(pos, move)()` restores
// pos on every exit path
func play(pos game.Position, move game.Move) (revert func()) {
	pos.ApplyMove(move)
	return pos.RevertLastMove
}

func (s *search) root(pos game.Position, move game.Move) float64 {
	defer play(pos, move)()

	maximizing := false
	if s.mode == Symmetric {
		maximizing = pos.SideToMove() == game.White
	}
	return s.alphaBeta(pos, move, s.depth, math.Inf(-1), math.Inf(1), maximizing)
}

func (s *search) child(pos game.Position, move game.Move, depth int, alpha, beta float64, maximizing bool) float64 {
	defer play(pos, move)()

	return s.alphaBeta(pos, move, depth, alpha, beta, maximizing)
}

func (s *search) alphaBeta(pos game.Position, last game.Move, depth int, alpha, beta float64, maximizing bool) float64 {
	s.metrics.AddNode()
	if depth == 0 {
		s.metrics.AddLeaf()
		return s.evaluate(pos, last)
	}

	moves := pos.LegalMoves()
	if len(moves) == 0 && s.mode == Symmetric { // Mate or stalemate before the horizon
		s.metrics.AddLeaf()
		return s.evaluate(pos, last)
	}

	if maximizing {
		best := math.Inf(-1)
		for _, move := range moves {
			score := s.child(pos, move, depth-1, alpha, beta, false)
			best = max(best, score)
			alpha = max(alpha, score)
			if beta <= alpha {
				s.metrics.AddCutoff()
				break
			}
		}
		return best
	}

	best := math.Inf(1)
	for _, move := range moves {
		score := s.child(pos, move, depth-1, alpha, beta, true)
		best = min(best, score)
		beta = min(beta, score)
		if beta <= alpha {
			s.metrics.AddCutoff()
			break
		}
	}
	return best
}
