package entity

import (
	"snake-autopilot/game/types"
)

// Snake is the agent: an ordered body, head first, with a heading and a
// target length the body grows towards.
type Snake struct {
	Body      []types.Point
	Direction types.Direction
	Length    int
}

func NewSnake(start types.Point, heading types.Direction) *Snake {
	s := &Snake{}
	s.Reset(start, heading)
	return s
}

// Reset puts the snake back to a single cell at start
func (s *Snake) Reset(start types.Point, heading types.Direction) {
	s.Body = []types.Point{start}
	s.Direction = heading
	s.Length = 1
}

func (s *Snake) Head() types.Point {
	return s.Body[0]
}

func (s *Snake) Tail() types.Point {
	return s.Body[len(s.Body)-1]
}

func (s *Snake) Len() int {
	return len(s.Body)
}

// Growing reports whether the tail will stay put on the next Advance
func (s *Snake) Growing() bool {
	return len(s.Body) < s.Length
}

// NextHead is the cell the head moves into under the current heading
func (s *Snake) NextHead() types.Point {
	return s.Head().Add(s.Direction.ToPoint())
}

// Advance makes next the new head and drops the tail unless growing
func (s *Snake) Advance(next types.Point) {
	s.Body = append(s.Body, types.Point{})
	copy(s.Body[1:], s.Body)
	s.Body[0] = next
	if len(s.Body) > s.Length {
		s.Body = s.Body[:len(s.Body)-1]
	}
}

// Grow lengthens the snake by one; the extra cell appears on the next Advance
func (s *Snake) Grow() {
	s.Length++
}

// SetDirection steers the snake, refusing 180-degree turns.
// Returns false when the turn was rejected.
func (s *Snake) SetDirection(dir types.Direction) bool {
	next := s.Direction.Turn(dir)
	s.Direction = next
	return next == dir
}

// SelfCollision reports whether the head overlaps any other body cell
func (s *Snake) SelfCollision() bool {
	head := s.Head()
	for _, part := range s.Body[1:] {
		if part == head {
			return true
		}
	}
	return false
}

// OutOfBounds reports whether the head left the grid
func (s *Snake) OutOfBounds(grid types.Grid) bool {
	return !grid.InBounds(s.Head())
}

// Contains reports whether p is covered by the body
func (s *Snake) Contains(p types.Point) bool {
	for _, part := range s.Body {
		if part == p {
			return true
		}
	}
	return false
}
