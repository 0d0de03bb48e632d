package ai

import (
	"errors"
	"fmt"

	"snake-autopilot/game/types"
)

// ErrFallbackExhausted means a full pass over the cycle found no free cell.
// With a valid cycle and body this cannot happen, so callers treat it as fatal.
var ErrFallbackExhausted = errors.New("fallback cycle has no free cell")

// Situation is what the navigator sees at the start of a tick
type Situation struct {
	Body    []types.Point // head first
	Heading types.Direction
	Target  types.Point
	Growing bool
}

// Decision is the navigator's answer for one tick
type Decision struct {
	Step     types.Point     // commanded cell
	Heading  types.Direction // heading after the reversal guard
	Fallback bool            // Step came from the cycle, not a search
}

// Navigator picks the next move: the first step of a shortest path to the
// target when one exists, otherwise the next free cell of the fallback cycle.
type Navigator struct {
	grid     types.Grid
	cycle    *Cycle
	index    int
	kind     Kind
	strategy Strategy
	// following is set while the previous decision came from the cycle
	following bool
}

func NewNavigator(grid types.Grid, kind Kind) (*Navigator, error) {
	cycle, err := NewCycle(grid)
	if err != nil {
		return nil, err
	}
	n := &Navigator{grid: grid, cycle: cycle}
	if err := n.SetKind(kind); err != nil {
		return nil, err
	}
	return n, nil
}

func (n *Navigator) Kind() Kind {
	return n.kind
}

// SetKind switches the active search strategy
func (n *Navigator) SetKind(kind Kind) error {
	s, err := NewStrategy(kind)
	if err != nil {
		return err
	}
	n.kind = kind
	n.strategy = s
	return nil
}

// Cycle returns the fallback tour
func (n *Navigator) Cycle() *Cycle {
	return n.cycle
}

// Index is the next cycle position the fallback will consider
func (n *Navigator) Index() int {
	return n.index
}

// Reset rewinds the fallback to the start of the cycle
func (n *Navigator) Reset() {
	n.index = 0
	n.following = false
}

func (n *Navigator) Decide(s Situation) (Decision, error) {
	if len(s.Body) == 0 {
		return Decision{}, fmt.Errorf("decide: empty body")
	}
	head := s.Body[0]

	q := Query{
		Start:       head,
		Goal:        s.Target,
		Body:        s.Body,
		TailVacates: !s.Growing,
		// the cell behind the head is a reversal the heading guard would
		// refuse; a lone head has no neck there and a two-cell body's neck
		// is the exempt tail
		Blocked: []types.Point{head.Add(s.Heading.Opposite().ToPoint())},
	}

	d := Decision{Heading: s.Heading}
	path := n.strategy.FindPath(n.grid, q)
	if len(path) > 0 {
		d.Step = path[0]
		n.following = false
	} else {
		if !n.following {
			// join the cycle right after the head
			if i, ok := n.cycle.Index(head); ok {
				n.index = (i + 1) % n.cycle.Len()
			}
			n.following = true
		}
		step, err := n.fallback(s.Body)
		if err != nil {
			return Decision{}, err
		}
		d.Step = step
		d.Fallback = true
	}

	if to, ok := types.DirectionBetween(head, d.Step); ok {
		d.Heading = s.Heading.Turn(to)
	}
	return d, nil
}

// fallback advances the cycle index past occupied cells, taking at most one
// full lap, and returns the first free cell
func (n *Navigator) fallback(body []types.Point) (types.Point, error) {
	occupied := occupiedSet(body)
	for scanned := 0; scanned < n.cycle.Len(); scanned++ {
		cell := n.cycle.At(n.index)
		n.index = (n.index + 1) % n.cycle.Len()
		if !occupied.Has(cell) {
			return cell, nil
		}
	}
	return types.Point{}, ErrFallbackExhausted
}
