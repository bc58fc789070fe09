package agent

import (
	"chessbot/game"
	"chessbot/searcher"
	"time"
)

type evaluationAgent struct {
	ab *searcher.AlphaBeta
}

// NewEvaluationAgent returns an agent that always plays the move chosen by the search
func NewEvaluationAgent(ab *searcher.AlphaBeta) Agent {
	return evaluationAgent{ab: ab}
}

func (a evaluationAgent) FindMove(pos game.Position, budget time.Duration) (game.Move, searcher.SearchMetric, error) {
	return a.ab.SelectBestMove(pos, budget)
}
