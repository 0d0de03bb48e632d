package types

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned for grids with non-positive dimensions
var ErrInvalidGrid = errors.New("invalid grid dimensions")

// Point is a cell on the grid
type Point struct {
	X, Y int
}

// Add returns the point translated by d
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the taxicab distance between p and q
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Path is an ordered list of cells, start excluded, goal included
type Path []Point

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Validate rejects grids that cannot hold a single cell
func (g Grid) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGrid, g.Width, g.Height)
	}
	return nil
}

// Cells returns the number of cells on the grid
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// InBounds reports whether p lies on the grid
func (g Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// neighborOffsets is the fixed scan order: left, right, up, down.
// Search tie-breaks depend on it.
var neighborOffsets = [4]Point{
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: 0, Y: 1},
}

// Neighbors returns the four cardinal neighbours of p, including off-grid ones
func (g Grid) Neighbors(p Point) [4]Point {
	var out [4]Point
	for i, d := range neighborOffsets {
		out[i] = p.Add(d)
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
