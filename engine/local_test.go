package engine

import (
	"chessbot/game"
	"chessbot/searcher"
	"chessbot/searcher/agent"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubMove string

func (m stubMove) IsCapture() bool   { return false }
func (m stubMove) IsCastle() bool    { return false }
func (m stubMove) IsPromotion() bool { return false }
func (m stubMove) String() string    { return string(m) }

// stubAgent returns a fixed move or error, optionally playing a move on the board it is given
type stubAgent struct {
	move   game.Move
	err    error
	tamper bool
}

func (a stubAgent) FindMove(pos game.Position, _ time.Duration) (game.Move, searcher.SearchMetric, error) {
	if a.tamper {
		pos.ApplyMove(pos.LegalMoves()[0])
	}
	return a.move, searcher.SearchMetric{}, a.err
}

func mustBoard(t *testing.T, fen string) *game.Board {
	t.Helper()
	b, err := game.NewBoard(fen)
	require.NoError(t, err)
	return b
}

func searchAgents(depth int) [2]agent.Agent {
	a := agent.NewEvaluationAgent(searcher.NewAlphaBeta(searcher.WithDepth(depth), searcher.WithMetrics()))
	return [2]agent.Agent{a, a}
}

func TestLocalEngine(t *testing.T) {
	t.Run("white mates on the first move", func(t *testing.T) {
		b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
		result, err := LocalEngine(b, searchAgents(1)).Run()

		require.NoError(t, err)
		require.Equal(t, WhiteWins, result.Outcome)
		require.Len(t, result.Moves, 1)
		require.Equal(t, "a1a8", result.Moves[0].Move)
		require.Equal(t, "white", result.Moves[0].Color)
		require.Equal(t, 1, result.Moves[0].Depth)
		require.Equal(t, "white wins", result.Game.Outcome)
		require.Equal(t, 1, result.Game.TotalMoves)
		require.Equal(t, b.FEN(), result.Game.FinalFEN)
		require.True(t, b.IsInCheckmate())
	})

	t.Run("capture into bare kings is a draw", func(t *testing.T) {
		b := mustBoard(t, "4k3/8/8/8/8/8/3r4/4K3 w - - 0 1")
		result, err := LocalEngine(b, searchAgents(1)).Run()

		require.NoError(t, err)
		require.Equal(t, Draw, result.Outcome)
		require.Equal(t, "e1d2", result.Moves[0].Move)
	})

	t.Run("terminal start position plays no move", func(t *testing.T) {
		b := mustBoard(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
		result, err := LocalEngine(b, searchAgents(1)).Run()

		require.NoError(t, err)
		require.Equal(t, Draw, result.Outcome)
		require.Empty(t, result.Moves)
	})

	t.Run("stops at the turn limit", func(t *testing.T) {
		b := game.NewStartingBoard()
		result, err := LocalEngine(b, searchAgents(0), WithMaxTurns(4), WithBudget(time.Millisecond)).Run()

		require.NoError(t, err)
		require.Equal(t, Unfinished, result.Outcome)
		require.Len(t, result.Moves, 4)
		require.Equal(t, 4, b.Ply())
		require.Equal(t, []string{"white", "black", "white", "black"}, []string{
			result.Moves[0].Color, result.Moves[1].Color, result.Moves[2].Color, result.Moves[3].Color,
		})
		require.Equal(t, time.Millisecond, result.Moves[0].Budget)
	})

	t.Run("invalid options are ignored", func(t *testing.T) {
		e := LocalEngine(game.NewStartingBoard(), searchAgents(0), WithMaxTurns(0), WithBudget(-time.Second))

		require.Equal(t, 300, e.maxTurns)
		require.Equal(t, time.Second, e.budget)
	})
}

func TestLocalEngineAgentErrors(t *testing.T) {
	legal := searchAgents(0)[0]

	t.Run("illegal move", func(t *testing.T) {
		agents := [2]agent.Agent{stubAgent{move: stubMove("e7e5")}, legal}
		_, err := LocalEngine(game.NewStartingBoard(), agents).Run()

		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("nil move", func(t *testing.T) {
		agents := [2]agent.Agent{legal, stubAgent{}}
		_, err := LocalEngine(game.NewStartingBoard(), agents).Run()

		require.ErrorIs(t, err, game.ErrIllegalMove)
	})

	t.Run("agent error", func(t *testing.T) {
		failure := errors.New("out of time")
		agents := [2]agent.Agent{stubAgent{err: failure}, legal}
		_, err := LocalEngine(game.NewStartingBoard(), agents).Run()

		require.ErrorIs(t, err, failure)
	})

	t.Run("agent modifies the board", func(t *testing.T) {
		agents := [2]agent.Agent{stubAgent{move: stubMove("e2e4"), tamper: true}, legal}
		_, err := LocalEngine(game.NewStartingBoard(), agents).Run()

		require.Error(t, err)
	})

	t.Run("missing agent", func(t *testing.T) {
		require.Panics(t, func() {
			LocalEngine(game.NewStartingBoard(), [2]agent.Agent{legal, nil})
		})
	})
}
