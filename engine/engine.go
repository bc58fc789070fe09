package engine

import "chessbot/experiments/metrics"

type Outcome int

const (
	Unfinished Outcome = iota // Turn limit reached
	WhiteWins
	BlackWins
	Draw
)

func (o Outcome) String() string {
	switch o {
	case WhiteWins:
		return "white wins"
	case BlackWins:
		return "black wins"
	case Draw:
		return "draw"
	default:
		return "unfinished"
	}
}

type Result struct {
	Outcome Outcome
	Game    metrics.GameMetric
	Moves   []metrics.MoveMetric
}

var _ Engine = (*Local)(nil)

type Engine interface {
	// Run plays a game till it ends or a max number of turns is reached
	Run() (Result, error)
}
