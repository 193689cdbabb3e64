package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// parseBoard builds a board from rows of digits.
func parseBoard(t *testing.T, stoneCount int, rows ...string) *Board {
	t.Helper()
	grid := make([][]Stone, len(rows))
	for y, row := range rows {
		for _, c := range strings.TrimSpace(row) {
			grid[y] = append(grid[y], Stone(c-'0'))
		}
	}
	b, err := NewBoard(grid, stoneCount)
	require.NoError(t, err)
	return b
}

func classicBoard(t *testing.T) *Board {
	return parseBoard(t, 2,
		"00000000",
		"00000000",
		"00000000",
		"00021000",
		"00012000",
		"00000000",
		"00000000",
		"00000000",
	)
}

func TestNewBoard(t *testing.T) {
	t.Run("rejecting empty grid", func(t *testing.T) {
		_, err := NewBoard(nil, 2)
		require.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("rejecting non-square grid", func(t *testing.T) {
		_, err := NewBoard([][]Stone{{0, 0, 0}, {0, 0, 0}}, 2)
		require.ErrorIs(t, err, ErrInvalidShape, "2 rows of 3 cells is not square")
	})

	t.Run("rejecting ragged grid", func(t *testing.T) {
		_, err := NewBoard([][]Stone{{0, 0}, {0}}, 2)
		require.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("rejecting stone above stone count", func(t *testing.T) {
		_, err := NewBoard([][]Stone{{0, 3}, {1, 2}}, 2)
		require.ErrorIs(t, err, ErrInvalidStone)
	})

	t.Run("rejecting zero stone count", func(t *testing.T) {
		_, err := NewBoard([][]Stone{{0}}, 0)
		require.ErrorIs(t, err, ErrInvalidStone)
	})

	t.Run("rejecting stone count beyond the stone type", func(t *testing.T) {
		_, err := NewBoard([][]Stone{{1, 2}, {2, 1}}, MaxStoneCount+3)
		require.ErrorIs(t, err, ErrInvalidStone)

		b, err := NewBoard([][]Stone{{1, 2}, {2, 1}}, MaxStoneCount)
		require.NoError(t, err)
		require.Equal(t, MaxStoneCount, b.StoneCount())
	})

	t.Run("keeping explicit stone count above highest stone", func(t *testing.T) {
		b, err := NewBoard([][]Stone{{0, 1}, {2, 0}}, 4)
		require.NoError(t, err)
		require.Equal(t, 4, b.StoneCount())
		require.Equal(t, 2, b.Size())
	})

	t.Run("not aliasing the input grid", func(t *testing.T) {
		grid := [][]Stone{{0, 1}, {2, 0}}
		b, err := NewBoard(grid, 2)
		require.NoError(t, err)
		grid[0][0] = 2
		require.Equal(t, Empty, b.At(Position{0, 0}), "Board should own a copy of the grid")
	})
}

func TestBoardLegalPlacements(t *testing.T) {
	t.Run("classic start", func(t *testing.T) {
		b := classicBoard(t)

		got := b.LegalPlacements(1)

		require.Equal(t, []Position{{3, 2}, {2, 3}, {5, 4}, {4, 5}}, got,
			"Player 1 should have exactly the 4 classic opening moves in row-major order")
	})

	t.Run("empty stone has no placements", func(t *testing.T) {
		require.Empty(t, classicBoard(t).LegalPlacements(Empty))
	})

	t.Run("capture symmetry", func(t *testing.T) {
		boards := []*Board{
			classicBoard(t),
			parseBoard(t, 4, "3000", "0210", "0120", "4004"),
			parseBoard(t, 3, "02310", "32120", "01300", "00000", "21003"),
		}
		for _, b := range boards {
			for stone := Stone(1); int(stone) <= b.StoneCount(); stone++ {
				legal := map[Position]bool{}
				for _, pos := range b.LegalPlacements(stone) {
					legal[pos] = true
				}
				for y := 0; y < b.Size(); y++ {
					for x := 0; x < b.Size(); x++ {
						pos := Position{x, y}
						require.Equal(t, legal[pos], b.CaptureVector(stone, pos).Captures(),
							"capture vector of stone %d at %s should agree with legal placements", stone, pos)
					}
				}
			}
		}
	})
}

func TestBoardCaptureVector(t *testing.T) {
	t.Run("classic single direction", func(t *testing.T) {
		got := classicBoard(t).CaptureVector(1, Position{2, 3})

		require.Equal(t, CaptureVector{E: 2}, got, "Only E should capture, over one stone")
		require.Equal(t, 1, got.Total())
	})

	t.Run("occupied cell", func(t *testing.T) {
		got := classicBoard(t).CaptureVector(1, Position{3, 3})

		require.Equal(t, CaptureVector{}, got)
		require.False(t, got.Captures())
	})

	t.Run("off-board cell", func(t *testing.T) {
		require.False(t, classicBoard(t).CaptureVector(1, Position{8, 0}).Captures())
		require.False(t, classicBoard(t).CaptureVector(1, Position{-1, 3}).Captures())
	})

	t.Run("capturing across mixed opponents", func(t *testing.T) {
		b := parseBoard(t, 3, "0231", "0000", "0000", "0000")

		got := b.CaptureVector(1, Position{0, 0})

		require.Equal(t, CaptureVector{E: 3}, got, "Run of 2 and 3 closed by 1 should capture")
	})

	t.Run("adjacent opponent against the edge", func(t *testing.T) {
		b := parseBoard(t, 2, "0012", "0000", "0002", "0000")

		require.Equal(t, CaptureVector{}, b.CaptureVector(1, Position{2, 2}),
			"Neighbour with the edge right behind should never capture")
	})

	t.Run("run ending on empty cell", func(t *testing.T) {
		b := parseBoard(t, 2, "02201", "00000", "00000", "00000", "00000")

		require.Equal(t, 0, b.CaptureVector(1, Position{0, 0})[E])
	})

	t.Run("run running off the board", func(t *testing.T) {
		b := parseBoard(t, 2, "0222", "0000", "0000", "0000")

		require.Equal(t, 0, b.CaptureVector(1, Position{0, 0})[E])
	})

	t.Run("neighbour of own stone", func(t *testing.T) {
		b := parseBoard(t, 2, "0112", "0000", "0000", "0000")

		require.Equal(t, 0, b.CaptureVector(1, Position{0, 0})[E])
	})

	t.Run("every direction at once", func(t *testing.T) {
		b := parseBoard(t, 2,
			"10101",
			"02220",
			"12021",
			"02220",
			"10101",
		)

		got := b.CaptureVector(1, Position{2, 2})

		require.Equal(t, CaptureVector{2, 2, 2, 2, 2, 2, 2, 2}, got)
		require.Equal(t, 8, got.Total())
	})
}

func TestBoardApply(t *testing.T) {
	t.Run("flipping captured runs", func(t *testing.T) {
		b := parseBoard(t, 3, "02231", "20000", "30000", "10000", "00000")

		got, err := b.Apply(1, Position{0, 0})

		require.NoError(t, err)
		require.Equal(t, [][]Stone{
			{1, 1, 1, 1, 1},
			{1, 0, 0, 0, 0},
			{1, 0, 0, 0, 0},
			{1, 0, 0, 0, 0},
			{0, 0, 0, 0, 0},
		}, got.Grid())
	})

	t.Run("not mutating the receiver", func(t *testing.T) {
		b := classicBoard(t)
		before := b.Grid()

		_, err := b.Apply(1, Position{2, 3})

		require.NoError(t, err)
		require.Equal(t, before, b.Grid())
	})

	t.Run("rejecting a non-capturing placement", func(t *testing.T) {
		_, err := classicBoard(t).Apply(1, Position{0, 0})

		require.ErrorIs(t, err, ErrIllegalMove)
	})

	t.Run("grid conservation", func(t *testing.T) {
		b := parseBoard(t, 3, "02310", "32120", "01300", "00000", "21003")
		for stone := Stone(1); stone <= 3; stone++ {
			for _, pos := range b.LegalPlacements(stone) {
				v := b.CaptureVector(stone, pos)
				next, err := b.Apply(stone, pos)
				require.NoError(t, err)

				total := 0
				for _, n := range next.CountAll() {
					total += n
				}
				require.Equal(t, b.Size()*b.Size(), total)

				changed := map[Position]bool{pos: true}
				for _, d := range Directions {
					dx, dy := d.Step()
					for k := 1; k < v[d]; k++ {
						changed[Position{pos.X + k*dx, pos.Y + k*dy}] = true
					}
				}
				for y := 0; y < b.Size(); y++ {
					for x := 0; x < b.Size(); x++ {
						p := Position{x, y}
						if changed[p] {
							require.Equal(t, stone, next.At(p))
						} else {
							require.Equal(t, b.At(p), next.At(p), "cell %s outside capture runs changed", p)
						}
					}
				}
				require.Equal(t, b.Count(stone)+1+v.Total(), next.Count(stone))
			}
		}
	})
}

func TestBoardAccessors(t *testing.T) {
	b := classicBoard(t)

	require.Equal(t, 2, b.Count(1))
	require.Equal(t, 60, b.Count(Empty))
	require.Equal(t, []int{60, 2, 2}, b.CountAll())
	require.Equal(t, []Position{{4, 3}, {3, 4}}, b.PositionsOf(1))

	grid := b.Grid()
	grid[0][0] = 2
	require.Equal(t, Empty, b.At(Position{0, 0}), "Grid should return a copy")

	require.True(t, b.Equal(classicBoard(t)))
	require.Equal(t, b.Hash(), classicBoard(t).Hash())

	next, err := b.Apply(1, Position{2, 3})
	require.NoError(t, err)
	require.False(t, b.Equal(next))
	require.NotEqual(t, b.Hash(), next.Hash())

	require.True(t, strings.HasPrefix(b.String(), "00000000\n"))
}

func TestBoardString(t *testing.T) {
	b, err := NewBoard([][]Stone{{0, 9}, {35, 36}}, MaxStoneCount)
	require.NoError(t, err)

	require.Equal(t, "09\nz*\n", b.String(), "Stones past 'z' should not print as other characters")
}
