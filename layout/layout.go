// Package layout builds starting boards. The helpers here sit outside the game core:
// the core always takes an explicit stone count.
package layout

import (
	"strings"

	"github.com/pkg/errors"

	"reversi/game"
)

// Classic returns the 8x8 two-player start with the four centre stones.
func Classic() *game.Board {
	return Centered(8)
}

// Centered returns a two-player start of the given even size (at least 4) with the four
// centre stones placed as in the classic opening.
func Centered(size int) *game.Board {
	if size < 4 || size%2 != 0 {
		panic("centered board size must be even and at least 4")
	}
	grid := emptyGrid(size)
	mid := size / 2
	grid[mid-1][mid-1] = 2
	grid[mid-1][mid] = 1
	grid[mid][mid-1] = 1
	grid[mid][mid] = 2
	return mustBoard(grid, 2)
}

// FourPlayer returns a 4x4 start for four players: two diagonal pairs in the centre and
// single stones of players 3 and 4 in the corners.
func FourPlayer() *game.Board {
	return mustBoard([][]game.Stone{
		{3, 0, 0, 0},
		{0, 2, 1, 0},
		{0, 1, 2, 0},
		{4, 0, 0, 4},
	}, 4)
}

// Empty returns a board of the given size without stones.
func Empty(size, stoneCount int) (*game.Board, error) {
	return game.NewBoard(emptyGrid(size), stoneCount)
}

// InferStoneCount returns the highest stone present in grid.
// A grid missing the highest player's stones yields a smaller count than intended.
func InferStoneCount(grid [][]game.Stone) int {
	highest := 0
	for _, row := range grid {
		for _, s := range row {
			if int(s) > highest {
				highest = int(s)
			}
		}
	}
	return highest
}

// Infer builds a board with the stone count inferred from the grid.
func Infer(grid [][]game.Stone) (*game.Board, error) {
	return game.NewBoard(grid, InferStoneCount(grid))
}

// Parse reads one row per line of digits, e.g. "0210\n1200\n...". Blank lines and surrounding
// spaces are ignored. A stoneCount of 0 infers it from the grid.
func Parse(text string, stoneCount int) (*game.Board, error) {
	var grid [][]game.Stone
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		row := make([]game.Stone, 0, len(line))
		for _, c := range line {
			if c < '0' || c > '9' {
				return nil, errors.Errorf("line %d: unexpected character %q", i+1, c)
			}
			row = append(row, game.Stone(c-'0'))
		}
		grid = append(grid, row)
	}
	if stoneCount == 0 {
		return Infer(grid)
	}
	return game.NewBoard(grid, stoneCount)
}

// MustParse is like Parse but panics on error. Meant for fixtures.
func MustParse(text string, stoneCount int) *game.Board {
	b, err := Parse(text, stoneCount)
	if err != nil {
		panic(err)
	}
	return b
}

func emptyGrid(size int) [][]game.Stone {
	grid := make([][]game.Stone, size)
	for y := range grid {
		grid[y] = make([]game.Stone, size)
	}
	return grid
}

func mustBoard(grid [][]game.Stone, stoneCount int) *game.Board {
	b, err := game.NewBoard(grid, stoneCount)
	if err != nil {
		panic(err)
	}
	return b
}
