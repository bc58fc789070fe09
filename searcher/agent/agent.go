package agent

import (
	"chessbot/game"
	"chessbot/searcher"
	"time"
)

type Agent interface {
	// FindMove returns the move to play in pos and the metrics of the search that chose it. pos is
	// left as it was passed in. The budget is informational.
	FindMove(pos game.Position, budget time.Duration) (game.Move, searcher.SearchMetric, error)
}
