package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsDrawn(t *testing.T) {
	testCases := []struct {
		name     string
		fen      string
		expected bool
	}{
		{"bare kings", "8/8/8/4k3/8/8/8/4K3 w - - 0 1", true},
		{"king and knight against king", "8/8/8/4k3/8/8/8/4KN2 b - - 0 1", true},
		{"king and bishop against king", "8/8/8/4k3/8/8/8/2B1K3 w - - 0 1", true},
		{"bishops on same colored squares", "8/8/8/2b1k3/8/8/8/2B1K3 w - - 0 1", true},
		{"bishops on opposite colored squares", "8/8/8/4k3/8/3b4/8/2B1K3 w - - 0 1", false},
		{"two knights are counted as sufficient", "8/8/8/4k3/8/8/8/1N2KN2 w - - 0 1", false},
		{"a single pawn is sufficient", "8/8/8/4k3/8/8/4P3/4K3 w - - 0 1", false},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", true},
		{"fifty-move rule", "8/8/8/4k3/8/8/4P3/4K3 w - - 100 80", true},
		{"forty-nine moves", "8/8/8/4k3/8/8/4P3/4K3 w - - 99 80", false},
		{"starting position", startFEN, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.fen)

			require.Equal(t, tc.expected, b.IsDrawn())
		})
	}

	t.Run("threefold repetition", func(t *testing.T) {
		b := NewStartingBoard()
		shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}

		for round := 0; round < 2; round++ {
			for _, uci := range shuffle {
				require.False(t, b.IsDrawn(), "Position should not be drawn before the third occurrence")
				move, err := b.Decode(uci)
				require.NoError(t, err)
				b.ApplyMove(move)
			}
		}

		require.True(t, b.IsDrawn(), "Starting position occurred three times")

		b.RevertLastMove()
		require.False(t, b.IsDrawn(), "Reverting should forget the repetition")
	})

	t.Run("null moves do not count towards repetition", func(t *testing.T) {
		b := NewStartingBoard()
		require.True(t, b.TryNullMove())
		require.True(t, b.TryNullMove())
		require.True(t, b.TryNullMove())
		require.True(t, b.TryNullMove())

		require.False(t, b.IsDrawn())
	})
}
