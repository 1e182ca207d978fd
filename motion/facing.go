package motion

import "math"

// Facing is the direction an agent's sprite looks.
type Facing int

const (
	Front Facing = iota // toward +Y
	Back
	Left
	Right
)

func (f Facing) String() string {
	switch f {
	case Back:
		return "back"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "front"
	}
}

// FacingToward picks the facing for a move by (dx, dy). The dominant axis
// wins and exact diagonals count as vertical. A zero move keeps current.
func FacingToward(dx, dy float64, current Facing) Facing {
	if dx == 0 && dy == 0 {
		return current
	}
	if math.Abs(dx) > math.Abs(dy) {
		if dx > 0 {
			return Right
		}
		return Left
	}
	if dy > 0 {
		return Front
	}
	return Back
}
