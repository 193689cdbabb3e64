package game

// Direction is one of the 8 compass directions, in a fixed order.
type Direction int

const (
	N Direction = iota
	NE
	E
	SE
	S
	SW
	W
	NW
)

var Directions = [8]Direction{N, NE, E, SE, S, SW, W, NW}

var steps = [8]struct{ dx, dy int }{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// Step returns the unit offset of the direction.
func (d Direction) Step() (dx, dy int) {
	s := steps[d]
	return s.dx, s.dy
}

func (d Direction) String() string {
	return directionNames[d]
}

// CaptureVector holds, per direction, the distance from the origin to the bounding own stone.
// Zero means no capture in that direction.
type CaptureVector [8]int

// Captures reports whether at least one direction captures.
func (v CaptureVector) Captures() bool {
	for _, n := range v {
		if n > 0 {
			return true
		}
	}
	return false
}

// Total returns the number of opposing stones flipped, the origin excluded.
func (v CaptureVector) Total() int {
	total := 0
	for _, n := range v {
		if n > 0 {
			total += n - 1
		}
	}
	return total
}
