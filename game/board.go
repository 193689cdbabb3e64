package game

import (
	"encoding/binary"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Board is an immutable square grid snapshot. Placing a stone produces a new Board.
type Board struct {
	size       int
	stoneCount int
	cells      []Stone // row-major, cells[y*size+x]
}

// NewBoard builds a board from a square grid. stoneCount is the number of players and
// must cover every stone present in the grid.
func NewBoard(grid [][]Stone, stoneCount int) (*Board, error) {
	size := len(grid)
	if size == 0 {
		return nil, errors.Wrap(ErrInvalidShape, "grid has no rows")
	}
	if stoneCount < 1 || stoneCount > MaxStoneCount {
		return nil, errors.Wrapf(ErrInvalidStone, "stone count %d outside 1..%d", stoneCount, MaxStoneCount)
	}

	cells := make([]Stone, 0, size*size)
	for y, row := range grid {
		if len(row) != size {
			return nil, errors.Wrapf(ErrInvalidShape, "row %d has %d cells, want %d", y, len(row), size)
		}
		for x, s := range row {
			if s < Empty || int(s) > stoneCount {
				return nil, errors.Wrapf(ErrInvalidStone, "cell (%d, %d) holds %d with %d stones", x, y, s, stoneCount)
			}
		}
		cells = append(cells, row...)
	}

	return &Board{size: size, stoneCount: stoneCount, cells: cells}, nil
}

// Size returns the side length of the grid.
func (b *Board) Size() int {
	return b.size
}

// StoneCount returns the number of distinct player stones.
func (b *Board) StoneCount() int {
	return b.stoneCount
}

func (b *Board) inBounds(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

func (b *Board) at(x, y int) Stone {
	return b.cells[y*b.size+x]
}

// At returns the stone at pos, or Empty when pos is off the board.
func (b *Board) At(pos Position) Stone {
	if !b.inBounds(pos.X, pos.Y) {
		return Empty
	}
	return b.at(pos.X, pos.Y)
}

// Grid returns a copy of the grid indexed [y][x].
func (b *Board) Grid() [][]Stone {
	grid := make([][]Stone, b.size)
	for y := range grid {
		grid[y] = make([]Stone, b.size)
		copy(grid[y], b.cells[y*b.size:(y+1)*b.size])
	}
	return grid
}

// Count returns the number of cells holding stone.
func (b *Board) Count(stone Stone) int {
	n := 0
	for _, s := range b.cells {
		if s == stone {
			n++
		}
	}
	return n
}

// CountAll returns the cell count for every stone, indexed by stone (0 is empty).
func (b *Board) CountAll() []int {
	counts := make([]int, b.stoneCount+1)
	for _, s := range b.cells {
		counts[s]++
	}
	return counts
}

// PositionsOf returns the cells holding stone in row-major order.
func (b *Board) PositionsOf(stone Stone) []Position {
	var positions []Position
	for i, s := range b.cells {
		if s == stone {
			positions = append(positions, Position{X: i % b.size, Y: i / b.size})
		}
	}
	return positions
}

// LegalPlacements returns every empty cell where stone captures in at least one direction,
// in row-major order.
func (b *Board) LegalPlacements(stone Stone) []Position {
	if stone == Empty {
		return nil
	}
	var positions []Position
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			if b.at(x, y) != Empty {
				continue
			}
			for _, d := range Directions {
				if b.captureLength(stone, x, y, d) > 0 {
					positions = append(positions, Position{X: x, Y: y})
					break
				}
			}
		}
	}
	return positions
}

// CaptureVector evaluates every direction for a hypothetical placement of stone at pos.
// Occupied and off-board cells yield an all-zero vector.
func (b *Board) CaptureVector(stone Stone, pos Position) CaptureVector {
	var v CaptureVector
	if stone == Empty || !b.inBounds(pos.X, pos.Y) || b.at(pos.X, pos.Y) != Empty {
		return v
	}
	for _, d := range Directions {
		v[d] = b.captureLength(stone, pos.X, pos.Y, d)
	}
	return v
}

// captureLength walks from (x, y) along d over any stones other than stone and returns the
// distance to the bounding stone, or 0 when the run is not closed by stone.
func (b *Board) captureLength(stone Stone, x, y int, d Direction) int {
	dx, dy := d.Step()
	// A capture needs the neighbour plus at least one further cell.
	if !b.inBounds(x+2*dx, y+2*dy) {
		return 0
	}
	if n := b.at(x+dx, y+dy); n == Empty || n == stone {
		return 0
	}

	i, j := x+2*dx, y+2*dy
	for b.inBounds(i, j) {
		s := b.at(i, j)
		if s == Empty {
			return 0
		}
		if s == stone {
			if dx != 0 {
				return abs(i - x)
			}
			return abs(j - y)
		}
		i, j = i+dx, j+dy
	}
	return 0
}

// Apply places stone at pos and flips every captured run, returning a new Board.
// The receiver is left untouched.
func (b *Board) Apply(stone Stone, pos Position) (*Board, error) {
	v := b.CaptureVector(stone, pos)
	if !v.Captures() {
		return nil, errors.Wrapf(ErrIllegalMove, "stone %d at %s captures nothing", stone, pos)
	}

	cells := make([]Stone, len(b.cells))
	copy(cells, b.cells)
	cells[pos.Y*b.size+pos.X] = stone
	for _, d := range Directions {
		dx, dy := d.Step()
		for k := 1; k < v[d]; k++ {
			cells[(pos.Y+k*dy)*b.size+pos.X+k*dx] = stone
		}
	}

	return &Board{size: b.size, stoneCount: b.stoneCount, cells: cells}, nil
}

// Equal reports whether both boards hold the same grid and stone count.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size || b.stoneCount != other.stoneCount {
		return false
	}
	for i, s := range b.cells {
		if other.cells[i] != s {
			return false
		}
	}
	return true
}

func (b *Board) Hash() BoardHash {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(b.size))
	binary.Write(hasher, binary.LittleEndian, int64(b.stoneCount))
	for _, s := range b.cells {
		binary.Write(hasher, binary.LittleEndian, int8(s))
	}
	return BoardHash(hasher.Sum64())
}

// String renders one row per line, each cell as its base-36 stone digit.
// Stones above 35 have no single digit and show as '*'.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < b.size; y++ {
		for x := 0; x < b.size; x++ {
			s := b.at(x, y)
			if s < 36 {
				sb.WriteString(strconv.FormatInt(int64(s), 36))
			} else {
				sb.WriteByte('*')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
