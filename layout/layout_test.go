package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"reversi/game"
)

func TestClassic(t *testing.T) {
	b := Classic()

	require.Equal(t, 8, b.Size())
	require.Equal(t, 2, b.StoneCount())
	require.Equal(t, game.Stone(2), b.At(game.Position{X: 3, Y: 3}))
	require.Equal(t, game.Stone(1), b.At(game.Position{X: 4, Y: 3}))
	require.Equal(t, game.Stone(1), b.At(game.Position{X: 3, Y: 4}))
	require.Equal(t, game.Stone(2), b.At(game.Position{X: 4, Y: 4}))
	require.Equal(t, 60, b.Count(game.Empty))
}

func TestCentered(t *testing.T) {
	t.Run("small board", func(t *testing.T) {
		b := Centered(4)
		require.Equal(t, "0000\n0210\n0120\n0000\n", b.String())
	})

	t.Run("panics on odd size", func(t *testing.T) {
		require.Panics(t, func() { Centered(5) })
	})
}

func TestFourPlayer(t *testing.T) {
	b := FourPlayer()

	require.Equal(t, 4, b.StoneCount())
	require.Equal(t, []int{9, 2, 2, 1, 2}, b.CountAll())
}

func TestInfer(t *testing.T) {
	t.Run("highest stone present", func(t *testing.T) {
		b, err := Infer([][]game.Stone{{0, 3}, {1, 0}})

		require.NoError(t, err)
		require.Equal(t, 3, b.StoneCount())
	})

	t.Run("missing highest player is silently dropped", func(t *testing.T) {
		grid := [][]game.Stone{{0, 1}, {2, 0}}

		require.Equal(t, 2, InferStoneCount(grid), "A third player without stones cannot be inferred")
	})

	t.Run("empty grid has no players", func(t *testing.T) {
		_, err := Infer([][]game.Stone{{0, 0}, {0, 0}})

		require.ErrorIs(t, err, game.ErrInvalidStone)
	})
}

func TestParse(t *testing.T) {
	t.Run("digit rows", func(t *testing.T) {
		b, err := Parse("\n 021\n 120\n 000\n", 0)

		require.NoError(t, err)
		require.Equal(t, [][]game.Stone{{0, 2, 1}, {1, 2, 0}, {0, 0, 0}}, b.Grid())
		require.Equal(t, 2, b.StoneCount())
	})

	t.Run("explicit stone count", func(t *testing.T) {
		b, err := Parse("01\n00", 3)

		require.NoError(t, err)
		require.Equal(t, 3, b.StoneCount())
	})

	t.Run("rejecting non-digits", func(t *testing.T) {
		_, err := Parse("0x\n00", 2)
		require.Error(t, err)
	})

	t.Run("rejecting non-square", func(t *testing.T) {
		_, err := Parse("000\n000", 2)
		require.ErrorIs(t, err, game.ErrInvalidShape)
	})

	t.Run("must parse panics", func(t *testing.T) {
		require.Panics(t, func() { MustParse("00\n0", 2) })
	})
}

func TestEmpty(t *testing.T) {
	b, err := Empty(3, 2)

	require.NoError(t, err)
	require.Equal(t, 9, b.Count(game.Empty))
}
