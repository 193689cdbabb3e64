package game

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Stone identifies a player's tile type. Empty marks a vacant cell.
type Stone int8

const Empty Stone = 0

// MaxStoneCount is the highest stone count a Board accepts.
const MaxStoneCount = math.MaxInt8

var (
	ErrInvalidShape = errors.New("grid is not a non-empty square")
	ErrInvalidStone = errors.New("stone outside of board's stone range")
	ErrIllegalMove  = errors.New("illegal move")
)

// Position is a cell coordinate with origin at the top-left corner.
type Position struct {
	X int
	Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

type BoardHash uint64

// Rand is the random source used by rollouts. *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}
