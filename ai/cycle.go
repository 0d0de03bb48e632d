package ai

import (
	"errors"
	"fmt"

	"snake-autopilot/game/types"
)

// ErrNoClosedTour is returned for grids that have no Hamiltonian cycle:
// a single row or column, or an odd number of cells.
var ErrNoClosedTour = errors.New("grid has no closed tour")

// Cycle is a closed tour visiting every cell once. Consecutive cells,
// including last to first, are grid-adjacent.
type Cycle struct {
	cells []types.Point
	index map[types.Point]int
}

// NewCycle builds the tour as a boustrophedon sweep with a return lane.
// With an even height, row 0 runs left to right, the remaining rows zigzag
// over columns 1..W-1 and column 0 leads back up to the start. With an odd
// height the same sweep runs over columns instead, which needs an even width.
func NewCycle(grid types.Grid) (*Cycle, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	if grid.Width < 2 || grid.Height < 2 || grid.Cells()%2 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrNoClosedTour, grid.Width, grid.Height)
	}

	var cells []types.Point
	if grid.Height%2 == 0 {
		cells = sweep(grid.Width, grid.Height)
	} else {
		cells = sweep(grid.Height, grid.Width)
		for i, p := range cells {
			cells[i] = types.Point{X: p.Y, Y: p.X}
		}
	}

	c := &Cycle{cells: cells, index: make(map[types.Point]int, len(cells))}
	for i, p := range cells {
		c.index[p] = i
	}
	return c, nil
}

// sweep requires an even height
func sweep(width, height int) []types.Point {
	cells := make([]types.Point, 0, width*height)
	for x := 0; x < width; x++ {
		cells = append(cells, types.Point{X: x, Y: 0})
	}
	for y := 1; y < height; y++ {
		if y%2 == 1 {
			for x := width - 1; x >= 1; x-- {
				cells = append(cells, types.Point{X: x, Y: y})
			}
		} else {
			for x := 1; x < width; x++ {
				cells = append(cells, types.Point{X: x, Y: y})
			}
		}
	}
	for y := height - 1; y >= 1; y-- {
		cells = append(cells, types.Point{X: 0, Y: y})
	}
	return cells
}

func (c *Cycle) Len() int {
	return len(c.cells)
}

// At returns the cell at position i modulo the tour length
func (c *Cycle) At(i int) types.Point {
	n := len(c.cells)
	return c.cells[((i%n)+n)%n]
}

// Index returns the tour position of p
func (c *Cycle) Index(p types.Point) (int, bool) {
	i, ok := c.index[p]
	return i, ok
}

// Cells returns a copy of the tour
func (c *Cycle) Cells() []types.Point {
	out := make([]types.Point, len(c.cells))
	copy(out, c.cells)
	return out
}
