package metrics

import (
	"chessbot/searcher"
	"time"
)

// AgentConfig describes one side of a match up
type AgentConfig struct {
	ID           int
	Depth        int
	Mode         searcher.Mode
	MaterialOnly bool    // Score material without piece-square tables
	Epsilon      float64 // Probability of a random move, 0 for pure search
	Budget       time.Duration
}

type MoveMetric struct {
	Ply   int
	Color string // Side that moved
	Move  string // UCI
	searcher.SearchMetric
}

type GameMetric struct {
	Outcome    string
	StartFEN   string
	FinalFEN   string
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}
