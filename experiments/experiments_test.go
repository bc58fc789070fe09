package experiments

import (
	"chessbot/engine"
	"chessbot/experiments/metrics"
	"chessbot/game"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func countRows(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return len(rows)
}

func TestExperimentRun(t *testing.T) {
	baseline := metrics.AgentConfig{ID: 0, Depth: 0}
	x := newExperiment("tiny", baseline, []metrics.AgentConfig{
		{ID: 1, Depth: 0, MaterialOnly: true},
		{ID: 2, Depth: 0, Epsilon: 0.5},
	})
	x.NumGames = 2
	x.MaxTurns = 4

	root := t.TempDir()
	summaries, dir, err := x.Run(root)
	require.NoError(t, err)

	require.Len(t, summaries, 2)
	for _, s := range summaries {
		require.Equal(t, 2, s.Played())
	}
	require.Equal(t, filepath.Join(root, "tiny"), filepath.Dir(dir))
	require.Equal(t, 1+3, countRows(t, filepath.Join(dir, "agent_configs.csv")))
	require.Equal(t, 1+4, countRows(t, filepath.Join(dir, "game_records.csv")))
	require.Equal(t, 1+4*4, countRows(t, filepath.Join(dir, "move_records.csv")))
}

func TestByName(t *testing.T) {
	for _, name := range []string{"depth", "mode", "evaluation"} {
		x, err := ByName(name)
		require.NoError(t, err)
		require.Equal(t, name, x.Name)
		require.Len(t, x.MatchUps, len(x.Configs)-1, "Every challenger should face the baseline")
		for _, matchUp := range x.MatchUps {
			require.Equal(t, x.Configs[0], matchUp[0])
		}
	}

	_, err := ByName("parallelization")
	require.Error(t, err)
}

func TestCreateAgent(t *testing.T) {
	t.Run("material only agent ignores piece placement", func(t *testing.T) {
		a := CreateAgent(metrics.AgentConfig{Depth: 0, MaterialOnly: true}, 1)
		_, metric, err := a.FindMove(game.NewStartingBoard(), 0)

		require.NoError(t, err)
		require.Equal(t, 0.0, metric.Score, "No first move changes material")
	})

	t.Run("positional agent develops a knight", func(t *testing.T) {
		// b1c3 and g1f3 both gain 50, the earlier move wins the tie
		a := CreateAgent(metrics.AgentConfig{Depth: 0}, 1)
		move, metric, err := a.FindMove(game.NewStartingBoard(), 0)

		require.NoError(t, err)
		require.Equal(t, 50.0, metric.Score)
		require.Equal(t, "b1c3", move.String())
	})
}

func TestSummary(t *testing.T) {
	var s Summary
	s.add(engine.WhiteWins, false)
	s.add(engine.WhiteWins, true)
	s.add(engine.BlackWins, true)
	s.add(engine.Draw, false)
	s.add(engine.Unfinished, true)

	require.Equal(t, Summary{Wins: 2, Losses: 1, Draws: 1, Unfinished: 1}, s)
	require.Equal(t, 5, s.Played())
}
