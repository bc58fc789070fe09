package engine

import (
	"chessbot/experiments/metrics"
	"chessbot/game"
	"chessbot/meta"
	"chessbot/searcher/agent"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

type Option func(e *Local)

// Local plays both sides of a game in process, asking the agent of the side to move for each move
type Local struct {
	board    *game.Board
	agents   [2]agent.Agent // Indexed by game.Color
	maxTurns int
	budget   time.Duration
}

// WithMaxTurns caps the number of plies played
func WithMaxTurns(maxTurns int) Option {
	return func(e *Local) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
	}
}

// WithBudget sets the time budget passed to the agents for each move
func WithBudget(budget time.Duration) Option {
	return func(e *Local) {
		if budget >= 0 {
			e.budget = budget
		}
	}
}

func LocalEngine(board *game.Board, agents [2]agent.Agent, options ...Option) *Local {
	if agents[game.White] == nil || agents[game.Black] == nil {
		panic("need an agent for each side")
	}

	e := &Local{ // Default values
		board:    board,
		agents:   agents,
		maxTurns: meta.MAX_TURNS,
		budget:   meta.TIME_BUDGET,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run plays from the current board position. The board is left at the final position.
func (e *Local) Run() (Result, error) {
	gameMetric := metrics.GameMetric{StartFEN: e.board.FEN(), StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	log.Info().Msgf("%s is starting from %s", e.board.SideToMove(), gameMetric.StartFEN)

	outcome := Unfinished
	for turn := 1; turn <= e.maxTurns; turn++ {
		if o, over := e.outcome(); over {
			outcome = o
			break
		}

		side := e.board.SideToMove()
		legal := e.board.LegalMoves()
		ply := e.board.Ply()

		candidate, searchMetric, err := e.agents[side].FindMove(e.board, e.budget)
		if err != nil {
			return Result{}, fmt.Errorf("%s agent failed at ply %d: %w", side, turn, err)
		}
		if e.board.Ply() != ply {
			return Result{}, fmt.Errorf("%s agent left the board modified at ply %d", side, turn)
		}
		move, ok := lo.Find(legal, func(m game.Move) bool {
			return candidate != nil && m.String() == candidate.String()
		})
		if !ok {
			return Result{}, fmt.Errorf("%w: %s agent returned %v at ply %d", game.ErrIllegalMove, side, candidate, turn)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Ply:          turn,
			Color:        side.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("ply", turn).Str("color", side.String()).Str("move", move.String()).Float64("score", searchMetric.Score).Msg("played move")

		e.board.ApplyMove(move)
	}
	if outcome == Unfinished {
		// The last move may have ended the game
		outcome, _ = e.outcome()
	}

	gameMetric.Outcome = outcome.String()
	gameMetric.FinalFEN = e.board.FEN()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)

	if outcome == Unfinished {
		log.Info().Msgf("stopped after %d turns (no result yet)", e.maxTurns)
	} else {
		log.Info().Msgf("game over after %d turns: %s", len(moveMetrics), outcome)
	}

	return Result{Outcome: outcome, Game: gameMetric, Moves: moveMetrics}, nil
}

func (e *Local) outcome() (Outcome, bool) {
	if e.board.IsInCheckmate() {
		if e.board.SideToMove() == game.White {
			return BlackWins, true
		}
		return WhiteWins, true
	}
	if e.board.IsDrawn() {
		return Draw, true
	}
	return Unfinished, false
}
