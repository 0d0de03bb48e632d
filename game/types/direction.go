package types

// Direction is a cardinal heading
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// ToPoint converts a Direction into a unit displacement
func (d Direction) ToPoint() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the heading rotated by 180 degrees
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	case Left:
		return Right
	default:
		return d
	}
}

// Turn returns the heading after trying to steer towards to.
// A reversal is rejected and d is kept.
func (d Direction) Turn(to Direction) Direction {
	if to == d.Opposite() {
		return d
	}
	return to
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "none"
	}
}

// DirectionBetween returns the heading that moves from onto to.
// ok is false unless the cells are grid-adjacent.
func DirectionBetween(from, to Point) (d Direction, ok bool) {
	dx, dy := to.X-from.X, to.Y-from.Y
	switch {
	case dx == -1 && dy == 0:
		return Left, true
	case dx == 1 && dy == 0:
		return Right, true
	case dx == 0 && dy == -1:
		return Up, true
	case dx == 0 && dy == 1:
		return Down, true
	}
	return 0, false
}
